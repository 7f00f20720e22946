package extract

import (
	"strings"

	"github.com/revelaction/childes/transcript"
)

// Token is one extracted item. Rel is empty unless dependency
// extraction attached an "index|head|relation" descriptor to it.
type Token struct {
	Text string `json:"text"`
	Rel  string `json:"rel,omitempty"`
}

// Options select the annotation layers composed into tokens.
type Options struct {
	// Speaker restricts extraction to one participant code.
	// transcript.SpeakerAll (the default) matches everyone.
	Speaker string

	// Stem substitutes the morphological stem for the surface form.
	Stem bool

	// Pos appends "/<category>" to each token.
	Pos bool

	// Relation attaches dependency descriptors. Relation extraction
	// implies the morphological lookup of Stem and always produces
	// grouped output.
	Relation bool

	// Replace substitutes the corrected form for the surface form.
	Replace bool

	// StripSpace trims surrounding whitespace from the surface form.
	StripSpace bool
}

// Extractor resolves the words of a transcript into tokens.
type Extractor struct {
	Options
}

func New(opts Options) *Extractor {
	if opts.Speaker == "" {
		opts.Speaker = transcript.SpeakerAll
	}

	return &Extractor{Options: opts}
}

// Result is the output of one extraction: a flat token sequence, or one
// token group per matching utterance.
type Result struct {
	Grouped bool

	// Tokens is set when Grouped is false.
	Tokens []Token

	// Groups is set when Grouped is true. Utterances of other speakers
	// contribute no group.
	Groups [][]Token
}

// Extract resolves every utterance of the transcript that matches the
// configured speaker, in transcript order. Grouping is forced when
// dependency extraction is on, regardless of the grouped argument.
func (e *Extractor) Extract(t *transcript.Transcript, grouped bool) Result {
	if e.Relation {
		grouped = true
	}

	res := Result{Grouped: grouped}
	for _, u := range t.Utterances {
		if !u.By(e.Speaker) {
			continue
		}

		tokens := e.Utterance(u)
		if grouped {
			res.Groups = append(res.Groups, tokens)
		} else {
			res.Tokens = append(res.Tokens, tokens...)
		}
	}

	return res
}

// Utterance resolves all words of one utterance, in word order. The
// speaker filter does not apply here.
func (e *Extractor) Utterance(u transcript.Utterance) []Token {
	var tokens []Token
	for _, w := range u.Words {
		tokens = append(tokens, e.resolve(w)...)
	}

	return tokens
}

// suffix is the pending suffix-token slot of one word. In stem or
// relation mode the slot is present even when the word has no suffix
// stem; an empty present slot takes no category and is only emitted
// when a dependency descriptor promotes it.
type suffix struct {
	present bool
	text    string
	rel     string
}

// resolve composes the optional annotation layers of one word into one
// or two tokens.
func (e *Extractor) resolve(w transcript.Word) []Token {
	text := w.Text

	// corrected form wins over the surface form; a direct replacement
	// wins over a word-keyed one
	if e.Replace && w.Replacement != nil {
		switch {
		case w.Replacement.Direct != nil:
			text = *w.Replacement.Direct
		case w.Replacement.Keyed != nil:
			text = *w.Replacement.Keyed
		}
	}

	if e.StripSpace {
		text = strings.TrimSpace(text)
	}

	var suf suffix
	if e.Stem || e.Relation {
		if w.Mor != nil && w.Mor.Stem != nil {
			text = *w.Mor.Stem
		}
		if w.Mor != nil && w.Mor.Infl != nil {
			text += "-" + *w.Mor.Infl
		}

		suf.present = true
		if w.Mor != nil && w.Mor.Post != nil && w.Mor.Post.Stem != nil {
			suf.text = *w.Mor.Post.Stem
		}
	}

	if e.Pos {
		if len(w.Cats) > 0 {
			text += "/" + w.Cats[0]
		} else {
			text += "/None"
		}

		if suf.text != "" {
			if len(w.Cats) >= 2 {
				suf.text += "/" + w.Cats[1]
			} else {
				suf.text += "/None"
			}
		}
	}

	word := Token{}
	if e.Relation && w.Mor != nil {
		// ordinary and gold-standard descriptors are scanned alike and
		// both overwrite: the last one in document order wins
		for _, rel := range w.Mor.Rels {
			word.Rel = relString(rel)
		}

		if w.Mor.Post != nil && w.Mor.Post.Rel != nil {
			suf.rel = relString(*w.Mor.Post.Rel)
		}
	}
	word.Text = text

	out := []Token{word}
	if suf.present && (suf.text != "" || suf.rel != "") {
		out = append(out, Token{Text: suf.text, Rel: suf.rel})
	}

	return out
}

func relString(r transcript.Rel) string {
	return r.Index + "|" + r.Head + "|" + r.Relation
}

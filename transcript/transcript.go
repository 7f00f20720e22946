package transcript

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// NS is the TalkBank annotation namespace. Every element of a CHAT
// document lives in it.
const NS = "http://www.talkbank.org/ns/talkbank"

const (
	// SpeakerAll matches every speaker.
	SpeakerAll = "ALL"

	// SpeakerChild is the target-child participant code.
	SpeakerChild = "CHI"
)

// Transcript is one parsed CHAT document.
type Transcript struct {
	// Name is the file id the transcript was read from.
	Name string

	// Attrs is a flat copy of the root element attributes (Corpus, Id,
	// Lang, ...).
	Attrs map[string]string

	Participants Participants

	// Utterances in transcript order.
	Utterances []Utterance
}

// Participants maps a participant code ("CHI", "MOT", ...) to its
// attribute key/value pairs.
type Participants map[string]map[string]string

// set inserts the maps for missing keys on the way down.
func (p Participants) set(id, key, value string) {
	if _, ok := p[id]; !ok {
		p[id] = map[string]string{}
	}
	p[id][key] = value
}

// Get returns one attribute of one participant.
func (p Participants) Get(id, key string) (string, bool) {
	attrs, ok := p[id]
	if !ok {
		return "", false
	}
	v, ok := attrs[key]
	return v, ok
}

// Utterance is an ordered sequence of words produced by one speaker.
type Utterance struct {
	Speaker string
	Words   []Word
}

// By reports whether the utterance was produced by the given speaker.
// SpeakerAll matches every utterance.
func (u Utterance) By(speaker string) bool {
	return speaker == SpeakerAll || u.Speaker == speaker
}

// Word is the atomic annotation unit. All annotation layers are
// optional; absent layers are nil.
type Word struct {
	// Text is the surface form, possibly empty and possibly carrying
	// surrounding whitespace.
	Text string

	Replacement *Replacement
	Mor         *Mor

	// Cats are the part-of-speech category entries of the whole word in
	// document order. The first applies to the main word, a possible
	// second to the suffix stem.
	Cats []string
}

// Replacement is a corrected form for a word. A transcript may carry a
// direct replacement word, a word-keyed one, or both.
type Replacement struct {
	Direct *string
	Keyed  *string
}

// Mor is the morphological annotation of a word.
type Mor struct {
	Stem *string

	// Infl is the inflectional marker text, when present.
	Infl *string

	// Rels are the dependency descriptors in document order, ordinary
	// and gold-standard alike.
	Rels []Rel

	// Post is the compound suffix annotation.
	Post *MorPost
}

// MorPost carries the suffix stem and its own dependency descriptor.
type MorPost struct {
	Stem *string
	Rel  *Rel
}

// Rel is one dependency-relation descriptor.
type Rel struct {
	Index    string
	Head     string
	Relation string

	// Trn marks the gold-standard variant.
	Trn bool
}

// Parse decodes one CHAT document.
func Parse(r io.Reader) (*Transcript, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("transcript: decode: %w", err)
	}

	return NewNavigator(NS).Build(&root), nil
}

// ParseFile decodes the CHAT document at the given path.
func ParseFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("transcript: %s: %w", path, err)
	}

	return t, nil
}

// Build converts a raw annotation tree into the typed document model.
func (nv *Navigator) Build(root *node) *Transcript {
	t := &Transcript{
		Attrs:        map[string]string{},
		Participants: Participants{},
	}

	for _, a := range root.Attrs {
		// namespace declarations are not corpus metadata
		if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
			continue
		}
		t.Attrs[a.Name.Local] = a.Value
	}

	for _, block := range nv.collect(root, "Participants") {
		for _, p := range nv.collect(block, "participant") {
			id := p.attr("id")
			for _, a := range p.Attrs {
				t.Participants.set(id, a.Name.Local, a.Value)
			}
		}
	}

	for _, u := range nv.collect(root, "u") {
		utt := Utterance{Speaker: u.attr("who")}
		// words may be nested in grouping elements; words inside a
		// replacement belong to their carrier word, not the utterance
		for _, w := range nv.collect(u, "w", "replacement", "wk") {
			utt.Words = append(utt.Words, nv.buildWord(w))
		}

		t.Utterances = append(t.Utterances, utt)
	}

	return t
}

func (nv *Navigator) buildWord(n *node) Word {
	w := Word{Text: n.Text}

	if rep := nv.first(n, "replacement"); rep != nil {
		w.Replacement = &Replacement{}
		if rw := nv.child(rep, "w"); rw != nil {
			w.Replacement.Direct = &rw.Text
		}
	}
	if wk := nv.first(n, "wk", "replacement"); wk != nil {
		if w.Replacement == nil {
			w.Replacement = &Replacement{}
		}
		w.Replacement.Keyed = &wk.Text
	}

	mors := nv.collect(n, "mor", "replacement", "wk")
	if len(mors) > 0 {
		mor := &Mor{}

		if stem := nv.first(n, "stem", "replacement", "wk", "mor-post"); stem != nil {
			mor.Stem = &stem.Text
		}
		if mk := nv.first(n, "mk", "replacement", "wk", "mor-post"); mk != nil {
			mor.Infl = &mk.Text
		}

		for _, m := range mors {
			for i := range m.Children {
				c := &m.Children[i]
				if !nv.is(c, "gra") {
					continue
				}
				mor.Rels = append(mor.Rels, buildRel(c))
			}
		}

		if post := nv.first(n, "mor-post", "replacement", "wk"); post != nil {
			mor.Post = &MorPost{}
			if stem := nv.first(post, "stem"); stem != nil {
				mor.Post.Stem = &stem.Text
			}
			if gra := nv.first(post, "gra"); gra != nil {
				rel := buildRel(gra)
				mor.Post.Rel = &rel
			}
		}

		w.Mor = mor
	}

	for _, c := range nv.collect(n, "c", "replacement", "wk") {
		w.Cats = append(w.Cats, c.Text)
	}

	return w
}

func buildRel(n *node) Rel {
	return Rel{
		Index:    n.attr("index"),
		Head:     n.attr("head"),
		Relation: n.attr("relation"),
		Trn:      n.attr("type") == "trn",
	}
}

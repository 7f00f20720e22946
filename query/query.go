package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/revelaction/childes/corpus"
	"github.com/revelaction/childes/extract"
	"github.com/revelaction/childes/render"
	"github.com/revelaction/childes/transcript"

	"github.com/c-bata/go-prompt"
)

// Handler is the interactive corpus browser. An input line is
//
//	<fileid> [speaker]
//
// and prints the utterances of that document, optionally restricted to
// one participant code.
type Handler struct {
	Corpus   *corpus.Reader
	Renderer *render.TextRenderer
}

func NewHandler(c *corpus.Reader, r *render.TextRenderer) *Handler {
	return &Handler{
		Corpus:   c,
		Renderer: r,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 <fileid> [speaker], Ctrl+X: Toggle prefix, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("childes query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasPrefix = !h.Renderer.HasPrefix
					fmt.Println("Prefix set to " + fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}

		if strings.TrimSpace(in) == "" {
			continue
		}

		history = append(history, in)

		fileid, speaker := parse(in)
		t, err := h.Corpus.Transcript(fileid)
		if err != nil {
			fmt.Printf("✍  %v\n", err)
			continue
		}

		ex := extract.New(extract.Options{Speaker: speaker, StripSpace: true})
		h.Renderer.Render(ex.Extract(t, true))
	}
}

func parse(in string) (fileid, speaker string) {
	fields := strings.Fields(in)
	fileid = fields[0]
	speaker = transcript.SpeakerAll
	if len(fields) > 1 {
		speaker = fields[1]
	}

	return fileid, speaker
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		// Only one character in line
		if "" == befCursor {
			return s
		}

		tokens := strings.Split(befCursor, " ")

		if len(tokens) == 1 {
			for _, id := range h.Corpus.FileIDs() {
				s = append(s, prompt.Suggest{Text: id})
			}

			return prompt.FilterHasPrefix(s, in.GetWordBeforeCursor(), true)
		}

		// len > 1: complete the speaker from the participants of the
		// already typed document
		t, err := h.Corpus.Transcript(tokens[0])
		if err != nil {
			return s
		}

		codes := make([]string, 0, len(t.Participants))
		for code := range t.Participants {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		s = append(s, prompt.Suggest{Text: transcript.SpeakerAll})
		for _, code := range codes {
			role, _ := t.Participants.Get(code, "role")
			s = append(s, prompt.Suggest{Text: code, Description: role})
		}

		return prompt.FilterHasPrefix(s, in.GetWordBeforeCursor(), true)
	}
}

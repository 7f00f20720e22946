package stat

import (
	"slices"
	"strings"

	"github.com/revelaction/childes/extract"
	"github.com/revelaction/childes/transcript"
)

// skipPos are the categories whose single-token utterances are excluded
// from MLU: communicators, onomatopoeia, unknowns, unintelligible
// material and untagged tokens.
var skipPos = map[string]bool{
	"co":   true,
	"on":   true,
	"unk":  true,
	"vvv":  true,
	"None": true,
}

// MLU computes the mean length of utterance of the target child, in
// tokens per retained utterance.
func MLU(t *transcript.Transcript) float64 {
	ex := extract.New(extract.Options{
		Speaker:    transcript.SpeakerChild,
		Stem:       true,
		Pos:        true,
		StripSpace: true,
		Replace:    true,
	})

	return FromGroups(ex.Extract(t, true).Groups)
}

// FromGroups filters the utterance token groups and computes the mean
// length of the retained ones. Excluded are: single-token utterances
// whose category is in the skip set, empty utterances, and utterances
// identical to the immediately preceding one. The repeat comparison is
// always against the previous group in order, retained or not. With no
// retained utterances the result is 0.
func FromGroups(groups [][]extract.Token) float64 {
	var retained, tokens int
	var last []extract.Token

	for _, g := range groups {
		switch {
		case len(g) == 1 && skipPos[category(g[0])]:
		case len(g) == 0:
		case slices.Equal(g, last):
		default:
			retained++
			tokens += len(g)
		}

		last = g
	}

	if retained == 0 {
		return 0
	}

	return float64(tokens) / float64(retained)
}

// category returns the tag after the first "/" separator of a tagged
// token, or "" for an untagged one.
func category(t extract.Token) string {
	parts := strings.Split(t.Text, "/")
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

type Handler struct {
	stats Stats
}

type Stats struct {
	NumUtterances          int
	NumTokens              int
	TokensPerUtteranceMean float64
	TokensPerUtteranceDis  map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerUtteranceDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the utterance token groups of one transcript to the
// running statistics.
func (h *Handler) Aggregate(groups [][]extract.Token) {
	h.stats.NumUtterances += len(groups)

	for _, g := range groups {
		h.stats.NumTokens += len(g)
		h.stats.TokensPerUtteranceDis[len(g)]++
	}

	if h.stats.NumUtterances > 0 {
		h.stats.TokensPerUtteranceMean = float64(h.stats.NumTokens) / float64(h.stats.NumUtterances)
	}
}

package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/revelaction/childes/transcript"
)

// parse wraps utterance markup into a minimal document.
func parse(t *testing.T, body string) *transcript.Transcript {
	t.Helper()

	doc := `<CHAT xmlns="http://www.talkbank.org/ns/talkbank">` + body + `</CHAT>`
	tr, err := transcript.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	return tr
}

func texts(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}

	return out
}

func TestPlainWord(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>mouse </w></u>`)

	res := New(Options{StripSpace: true}).Extract(tr, false)
	if want := []string{"mouse"}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}

	res = New(Options{}).Extract(tr, false)
	if want := []string{"mouse "}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}
}

func TestEmptyWordText(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w/></u>`)

	res := New(Options{StripSpace: true}).Extract(tr, false)
	if len(res.Tokens) != 1 || res.Tokens[0].Text != "" {
		t.Errorf("expected one empty token, got %v", res.Tokens)
	}
}

func TestReplacePriority(t *testing.T) {
	// a direct replacement wins over a word-keyed one
	tr := parse(t, `<u who="CHI"><w>wat<replacement><w>watch</w></replacement><wk>watch it</wk></w></u>`)

	res := New(Options{Replace: true, StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "watch" {
		t.Errorf("expected 'watch', got %q", res.Tokens[0].Text)
	}
}

func TestReplaceKeyedFallback(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>gonna<wk>going to</wk></w></u>`)

	res := New(Options{Replace: true, StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "going to" {
		t.Errorf("expected 'going to', got %q", res.Tokens[0].Text)
	}
}

func TestReplaceOff(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>wat<replacement><w>watch</w></replacement></w></u>`)

	res := New(Options{StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "wat" {
		t.Errorf("expected 'wat', got %q", res.Tokens[0].Text)
	}
}

func TestStemWithInflection(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>goed <mor type="mor"><mw><pos><c>v</c></pos><stem>go</stem><mk type="sfx">PAST</mk></mw></mor></w></u>`)

	res := New(Options{Stem: true, StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "go-PAST" {
		t.Errorf("expected 'go-PAST', got %q", res.Tokens[0].Text)
	}
}

func TestStemAbsentKeepsText(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>mouse </w></u>`)

	res := New(Options{Stem: true, StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "mouse" {
		t.Errorf("expected 'mouse', got %q", res.Tokens[0].Text)
	}
}

const suffixWord = `<w>doggy's <mor type="mor"><mw><pos><c>n</c></pos><stem>doggy</stem></mw><mor-post><mw><pos><c>poss</c></pos><stem>s</stem></mw><gra index="2" head="1" relation="MOD"/></mor-post><gra index="1" head="0" relation="SUBJ"/></mor></w>`

func TestSuffixStemYieldsTwoTokens(t *testing.T) {
	tr := parse(t, `<u who="CHI">`+suffixWord+`</u>`)

	res := New(Options{Stem: true, StripSpace: true}).Extract(tr, false)
	if want := []string{"doggy", "s"}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}
}

func TestSuffixStemTakesSecondCategory(t *testing.T) {
	tr := parse(t, `<u who="CHI">`+suffixWord+`</u>`)

	res := New(Options{Stem: true, Pos: true, StripSpace: true}).Extract(tr, false)
	if want := []string{"doggy/n", "s/poss"}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}
}

func TestSuffixStemWithoutSecondCategory(t *testing.T) {
	word := `<w>doggy's <mor type="mor"><mw><pos><c>n</c></pos><stem>doggy</stem></mw><mor-post><mw><stem>s</stem></mw></mor-post></mor></w>`
	tr := parse(t, `<u who="CHI">`+word+`</u>`)

	res := New(Options{Stem: true, Pos: true, StripSpace: true}).Extract(tr, false)
	if want := []string{"doggy/n", "s/None"}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}
}

func TestPosWithoutCategory(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>hm </w></u>`)

	res := New(Options{Pos: true, StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "hm/None" {
		t.Errorf("expected 'hm/None', got %q", res.Tokens[0].Text)
	}
}

func TestPosWithoutStemFlag(t *testing.T) {
	// a word may have a category but keep its surface form
	tr := parse(t, `<u who="CHI"><w>mouse <mor type="mor"><mw><pos><c>n</c></pos><stem>mousie</stem></mw></mor></w></u>`)

	res := New(Options{Pos: true, StripSpace: true}).Extract(tr, false)
	if res.Tokens[0].Text != "mouse/n" {
		t.Errorf("expected 'mouse/n', got %q", res.Tokens[0].Text)
	}
}

func TestRelationLastDescriptorWins(t *testing.T) {
	// ordinary and gold-standard descriptors overwrite in document order
	word := `<w>go <mor type="mor"><mw><pos><c>v</c></pos><stem>go</stem></mw><gra index="1" head="0" relation="ROOT"/></mor><mor type="trn"><gra type="trn" index="1" head="2" relation="CJCT"/></mor></w>`
	tr := parse(t, `<u who="CHI">`+word+`</u>`)

	res := New(Options{Relation: true, StripSpace: true}).Extract(tr, false)
	if !res.Grouped {
		t.Fatal("expected grouped output")
	}

	tok := res.Groups[0][0]
	if tok.Rel != "1|2|CJCT" {
		t.Errorf("expected last descriptor '1|2|CJCT', got %q", tok.Rel)
	}
}

func TestRelationForcesGrouping(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>mouse </w></u><u who="CHI"><w>run </w></u>`)

	res := New(Options{Relation: true}).Extract(tr, false)
	if !res.Grouped {
		t.Fatal("expected grouped output")
	}
	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(res.Groups))
	}
	if res.Tokens != nil {
		t.Error("expected no flat tokens")
	}
}

func TestRelationBareTokenWithoutDescriptor(t *testing.T) {
	tr := parse(t, `<u who="CHI"><w>mouse </w></u>`)

	res := New(Options{Relation: true, StripSpace: true}).Extract(tr, false)
	tok := res.Groups[0][0]
	if tok.Text != "mouse" || tok.Rel != "" {
		t.Errorf("expected bare token 'mouse', got %+v", tok)
	}
}

func TestRelationSuffixDescriptor(t *testing.T) {
	tr := parse(t, `<u who="CHI">`+suffixWord+`</u>`)

	res := New(Options{Relation: true, StripSpace: true}).Extract(tr, false)
	g := res.Groups[0]
	if len(g) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(g))
	}
	if g[0].Rel != "1|0|SUBJ" {
		t.Errorf("expected main descriptor '1|0|SUBJ', got %q", g[0].Rel)
	}
	if g[1].Text != "s" || g[1].Rel != "2|1|MOD" {
		t.Errorf("expected suffix ('s', '2|1|MOD'), got %+v", g[1])
	}
}

func TestRelationPromotesEmptySuffixSlot(t *testing.T) {
	// no suffix stem, but the suffix annotation carries a descriptor
	word := `<w>hers <mor type="mor"><mw><pos><c>pro</c></pos><stem>her</stem></mw><mor-post><gra index="2" head="1" relation="MOD"/></mor-post></mor></w>`
	tr := parse(t, `<u who="CHI">`+word+`</u>`)

	res := New(Options{Relation: true, StripSpace: true}).Extract(tr, false)
	g := res.Groups[0]
	if len(g) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(g))
	}
	if g[1].Text != "" || g[1].Rel != "2|1|MOD" {
		t.Errorf("expected promoted empty suffix, got %+v", g[1])
	}
}

func TestEmptySuffixSlotNotEmitted(t *testing.T) {
	word := `<w>her <mor type="mor"><mw><pos><c>pro</c></pos><stem>her</stem></mw></mor></w>`
	tr := parse(t, `<u who="CHI">`+word+`</u>`)

	res := New(Options{Stem: true, Pos: true, StripSpace: true}).Extract(tr, false)
	if want := []string{"her/pro"}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}
}

const twoSpeakers = `
<u who="CHI"><w>mouse </w></u>
<u who="MOT"><w>yes </w><w>dear </w></u>
<u who="CHI">` + suffixWord + `</u>`

func TestSpeakerFilterFlat(t *testing.T) {
	tr := parse(t, twoSpeakers)

	res := New(Options{Speaker: "CHI", Stem: true, StripSpace: true}).Extract(tr, false)
	// one token for the plain word, two for the suffixed one; the MOT
	// utterance contributes nothing
	if want := []string{"mouse", "doggy", "s"}; !reflect.DeepEqual(texts(res.Tokens), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Tokens))
	}
}

func TestSpeakerFilterGroupedNoPlaceholder(t *testing.T) {
	tr := parse(t, twoSpeakers)

	res := New(Options{Speaker: "MOT", StripSpace: true}).Extract(tr, true)
	if len(res.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(res.Groups))
	}
	if want := []string{"yes", "dear"}; !reflect.DeepEqual(texts(res.Groups[0]), want) {
		t.Errorf("expected %v, got %v", want, texts(res.Groups[0]))
	}
}

func TestSpeakerDefaultIsAll(t *testing.T) {
	tr := parse(t, twoSpeakers)

	res := New(Options{StripSpace: true}).Extract(tr, true)
	if len(res.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(res.Groups))
	}
}

func TestExtractIdempotent(t *testing.T) {
	tr := parse(t, twoSpeakers)

	ex := New(Options{Stem: true, Pos: true, StripSpace: true})
	first := ex.Extract(tr, true)
	second := ex.Extract(tr, true)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output on repeated extraction")
	}
}

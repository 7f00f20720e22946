package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/childes/extract"
)

func TestJSONRendererRenderFlat(t *testing.T) {
	res := extract.Result{
		Tokens: []extract.Token{{Text: "mouse"}, {Text: "run"}},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Render(res)

	var tokens []extract.Token
	if err := json.Unmarshal(buf.Bytes(), &tokens); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}

	if tokens[0].Text != "mouse" {
		t.Errorf("expected text 'mouse', got %q", tokens[0].Text)
	}
}

func TestJSONRendererRenderGrouped(t *testing.T) {
	res := extract.Result{
		Grouped: true,
		Groups: [][]extract.Token{
			{{Text: "mouse/n", Rel: "1|0|SUBJ"}},
			{{Text: "cat/n"}, {Text: "run/v"}},
		},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Render(res)

	var groups [][]extract.Token
	if err := json.Unmarshal(buf.Bytes(), &groups); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0][0].Rel != "1|0|SUBJ" {
		t.Errorf("expected rel '1|0|SUBJ', got %q", groups[0][0].Rel)
	}
}

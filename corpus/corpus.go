package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/revelaction/childes/extract"
	"github.com/revelaction/childes/stat"
	"github.com/revelaction/childes/transcript"
)

// Reader enumerates the CHAT documents of a corpus directory and runs
// the extraction operations over them. Operations take a single file id
// or "" for all resolved documents and return one result per document.
type Reader struct {
	root    string
	pattern string

	ids []string

	// In-memory cache
	docs map[string]*transcript.Transcript
}

// New resolves the corpus root against the file pattern. The pattern
// follows filepath.Match; "" selects all XML files.
func New(root, pattern string) (*Reader, error) {
	if pattern == "" {
		pattern = "*.xml"
	}

	r := &Reader{
		root:    root,
		pattern: pattern,
		docs:    map[string]*transcript.Transcript{},
	}
	if err := r.scan(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reader) scan() error {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return fmt.Errorf("corpus: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ok, err := filepath.Match(r.pattern, e.Name())
		if err != nil {
			return fmt.Errorf("corpus: pattern %q: %w", r.pattern, err)
		}
		if ok {
			r.ids = append(r.ids, e.Name())
		}
	}

	sort.Strings(r.ids)
	return nil
}

// FileIDs returns the resolved file ids in lexical order.
func (r *Reader) FileIDs() []string {
	return r.ids
}

// Load preloads all resolved documents into memory.
// The callback is called for each file loaded (total, current_name).
func (r *Reader) Load(cb func(total int, name string)) error {
	total := len(r.ids)
	for _, id := range r.ids {
		if cb != nil {
			cb(total, id)
		}

		if _, err := r.Transcript(id); err != nil {
			return err
		}
	}

	return nil
}

// Transcript returns the parsed document for one file id, parsing and
// caching it on first access.
func (r *Reader) Transcript(id string) (*transcript.Transcript, error) {
	if t, ok := r.docs[id]; ok {
		return t, nil
	}

	if err := r.known(id); err != nil {
		return nil, err
	}

	t, err := transcript.ParseFile(filepath.Join(r.root, id))
	if err != nil {
		return nil, err
	}
	t.Name = id

	r.docs[id] = t
	return t, nil
}

// resolve expands a file id argument: "" means all resolved documents.
func (r *Reader) resolve(id string) ([]string, error) {
	if id == "" {
		return r.ids, nil
	}

	if err := r.known(id); err != nil {
		return nil, err
	}

	return []string{id}, nil
}

func (r *Reader) known(id string) error {
	for _, known := range r.ids {
		if known == id {
			return nil
		}
	}

	return fmt.Errorf("corpus: unknown file id: %s", id)
}

// Extract runs the extractor over the selected documents, one Result
// per document.
func (r *Reader) Extract(id string, opts extract.Options, grouped bool) ([]extract.Result, error) {
	ids, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	ex := extract.New(opts)
	results := make([]extract.Result, 0, len(ids))
	for _, fid := range ids {
		t, err := r.Transcript(fid)
		if err != nil {
			return nil, err
		}

		results = append(results, ex.Extract(t, grouped))
	}

	return results, nil
}

// Words returns the flat token sequence of the selected documents,
// concatenated in file id order. Dependency extraction is grouped by
// nature; use Sents for it.
func (r *Reader) Words(id string, opts extract.Options) ([]extract.Token, error) {
	if opts.Relation {
		return nil, errors.New("corpus: relation extraction is grouped, use Sents")
	}

	results, err := r.Extract(id, opts, false)
	if err != nil {
		return nil, err
	}

	var tokens []extract.Token
	for _, res := range results {
		tokens = append(tokens, res.Tokens...)
	}

	return tokens, nil
}

// Sents returns one token group per matching utterance of the selected
// documents, concatenated in file id order.
func (r *Reader) Sents(id string, opts extract.Options) ([][]extract.Token, error) {
	results, err := r.Extract(id, opts, true)
	if err != nil {
		return nil, err
	}

	var groups [][]extract.Token
	for _, res := range results {
		groups = append(groups, res.Groups...)
	}

	return groups, nil
}

// MLU returns the mean length of utterance, one value per selected
// document.
func (r *Reader) MLU(id string) ([]float64, error) {
	ids, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(ids))
	for _, fid := range ids {
		t, err := r.Transcript(fid)
		if err != nil {
			return nil, err
		}

		values = append(values, stat.MLU(t))
	}

	return values, nil
}

// Ages returns the raw target-child age string per selected document,
// "" when the document carries none.
func (r *Reader) Ages(id string) ([]string, error) {
	ids, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	ages := make([]string, 0, len(ids))
	for _, fid := range ids {
		t, err := r.Transcript(fid)
		if err != nil {
			return nil, err
		}

		age, _ := t.Age()
		ages = append(ages, age)
	}

	return ages, nil
}

// AgesMonths returns the target-child age in months per selected
// document, nil when absent or unparseable.
func (r *Reader) AgesMonths(id string) ([]*int, error) {
	ids, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	months := make([]*int, 0, len(ids))
	for _, fid := range ids {
		t, err := r.Transcript(fid)
		if err != nil {
			return nil, err
		}

		if m, ok := t.AgeMonths(); ok {
			months = append(months, &m)
		} else {
			months = append(months, nil)
		}
	}

	return months, nil
}

// Participants returns the participant table per selected document.
func (r *Reader) Participants(id string) ([]transcript.Participants, error) {
	ids, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	parts := make([]transcript.Participants, 0, len(ids))
	for _, fid := range ids {
		t, err := r.Transcript(fid)
		if err != nil {
			return nil, err
		}

		parts = append(parts, t.Participants)
	}

	return parts, nil
}

// Info returns the corpus metadata attributes per selected document.
func (r *Reader) Info(id string) ([]map[string]string, error) {
	ids, err := r.resolve(id)
	if err != nil {
		return nil, err
	}

	infos := make([]map[string]string, 0, len(ids))
	for _, fid := range ids {
		t, err := r.Transcript(fid)
		if err != nil {
			return nil, err
		}

		infos = append(infos, t.Attrs)
	}

	return infos, nil
}

// Package corpus loads httpwg-style structured-field conformance fixtures
// and runs them through the package sf parser/serializer, the fixture-loader
// collaborator the core library itself stays free of.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	sf "github.com/localheinz/http-structured-fields"
)

// HeaderType selects which of the three sf parse entry points a Case
// exercises.
type HeaderType string

const (
	Item       HeaderType = "item"
	List       HeaderType = "list"
	Dictionary HeaderType = "dictionary"
)

// Case is one fixture drawn from a testdata/corpus/*.json file.
type Case struct {
	Name       string     `json:"name"`
	Raw        []string   `json:"raw"`
	Canonical  []string   `json:"canonical,omitempty"`
	HeaderType HeaderType `json:"header_type"`
	MustFail   bool       `json:"must_fail,omitempty"`
	CanFail    bool       `json:"can_fail,omitempty"`
}

// File is the top-level shape of a single fixture file.
type File struct {
	Cases []Case `json:"cases"`
}

// Load reads and decodes every *.json fixture file in dir, sorted by file
// name, and returns their concatenated cases.
func Load(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: read dir %s: %w", dir, err)
	}
	var cases []Case
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("corpus: read %s: %w", path, err)
		}
		var f File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("corpus: decode %s: %w", path, err)
		}
		cases = append(cases, f.Cases...)
	}
	return cases, nil
}

// Run parses c.Raw with the entry point selected by c.HeaderType and
// reports whether the result matches the fixture's expectations: a
// successful parse whose canonical form (folded the same way the wire
// field lines would be) equals the expected canonical lines, or, for a
// must_fail fixture, a parse error.
func Run(c Case, opts ...sf.ParseOption) error {
	var canonical string
	var err error

	switch c.HeaderType {
	case Item:
		var it sf.Item
		it, err = sf.ParseItemFields(c.Raw, opts...)
		if err == nil {
			canonical = it.Canonical()
		}
	case List:
		var l sf.OuterList
		l, err = sf.ParseListFields(c.Raw, opts...)
		if err == nil {
			canonical = l.Canonical()
		}
	case Dictionary:
		var d sf.Dictionary
		d, err = sf.ParseDictionaryFields(c.Raw, opts...)
		if err == nil {
			canonical = d.Canonical()
		}
	default:
		return fmt.Errorf("corpus: %s: unknown header_type %q", c.Name, c.HeaderType)
	}

	if c.MustFail {
		if err == nil {
			return fmt.Errorf("corpus: %s: expected parse failure, got canonical %q", c.Name, canonical)
		}
		return nil
	}
	if err != nil {
		if c.CanFail {
			return nil
		}
		return fmt.Errorf("corpus: %s: unexpected parse failure: %w", c.Name, err)
	}

	want := joinCanonical(c.Canonical)
	if want == "" {
		want = joinCanonical(c.Raw)
	}
	if canonical != want {
		return fmt.Errorf("corpus: %s: canonical mismatch (-want +got):\n%s", c.Name, cmp.Diff(want, canonical))
	}
	return nil
}

func joinCanonical(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := lines[0]
	for _, l := range lines[1:] {
		out += ", " + l
	}
	return out
}

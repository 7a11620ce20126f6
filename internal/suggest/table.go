package suggest

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

// SampleSize is the number of suggestions returned for a prompt.
const SampleSize = 5

// Category is a named group of captions picked when the prompt contains one
// of its keywords.
type Category struct {
	Name        string
	Keywords    []string
	Suggestions []string
}

// Table is the local suggestion table. Categories are matched in order.
type Table struct {
	Categories []Category
}

// DefaultTable returns the built-in suggestion table.
func DefaultTable() *Table {
	return &Table{Categories: []Category{
		{
			Name:     "business",
			Keywords: []string{"business", "corporate", "professional"},
			Suggestions: []string{
				"Innovate. Inspire. Impact.",
				"Excellence in Every Detail",
				"Your Vision, Our Expertise",
				"Building Better Solutions",
				"Quality That Speaks",
			},
		},
		{
			Name:     "creative",
			Keywords: []string{"creative", "art", "design"},
			Suggestions: []string{
				"Where Imagination Meets Reality",
				"Colors of Creativity",
				"Design Without Boundaries",
				"Artistic Expression Redefined",
				"Creative Minds, Beautiful Designs",
			},
		},
		{
			Name:     "motivational",
			Keywords: []string{"motivate", "inspire", "success"},
			Suggestions: []string{
				"Dream Big. Achieve More.",
				"Your Journey Starts Here",
				"Empower Your Potential",
				"Success by Design",
				"Be Bold. Be Brilliant.",
			},
		},
		{
			Name:     "simple",
			Keywords: []string{"simple", "minimal", "clean"},
			Suggestions: []string{
				"Clean & Effective",
				"Simple Elegance",
				"Minimal Design, Maximum Impact",
				"Essence of Simplicity",
				"Pure & Purposeful",
			},
		},
	}}
}

// Match returns the first category with a keyword contained in prompt
// (case-insensitive).
func (t *Table) Match(prompt string) (Category, bool) {
	p := strings.ToLower(prompt)
	for _, c := range t.Categories {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(p, strings.ToLower(kw)) {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Lookup returns the matched category's suggestions in table order, or a
// random sample of up to SampleSize entries across all categories.
func (t *Table) Lookup(prompt string, rng *rand.Rand) []string {
	if c, ok := t.Match(prompt); ok {
		return append([]string(nil), c.Suggestions...)
	}

	var all []string
	for _, c := range t.Categories {
		all = append(all, c.Suggestions...)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:min(SampleSize, len(all))]
}

// LoadTable reads a suggestion table from a CSV file with the header
// "category,keywords,text". Keywords are separated by "/" and only need to
// appear on one row of a category. Categories keep first-seen order.
func LoadTable(path string) (*Table, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "text"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv %s: missing %q column", path, required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	t := &Table{}
	index := map[string]int{}
	for _, row := range rows[1:] {
		name := strings.ToLower(get(row, "category"))
		text := get(row, "text")
		if name == "" || text == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(t.Categories)
			index[name] = i
			t.Categories = append(t.Categories, Category{Name: name})
		}
		c := &t.Categories[i]
		c.Keywords = append(c.Keywords, parseKeywords(get(row, "keywords"))...)
		c.Suggestions = append(c.Suggestions, text)
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("csv %s has no suggestions", path)
	}
	return t, nil
}

func parseKeywords(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "/") {
		if k := strings.ToLower(strings.TrimSpace(p)); k != "" && k != "-" {
			out = append(out, k)
		}
	}
	return out
}

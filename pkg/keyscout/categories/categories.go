// Package categories groups keywords into book-market categories using
// an immutable keyword table.
package categories

import (
	"sort"
	"strings"
)

// Other collects keywords matching no category.
const Other = "other"

// Table maps a category name to the cue words that place a keyword in
// it. Matching is case-insensitive substring containment, the same way
// the marketplace title heuristics work.
type Table struct {
	order   []string
	entries map[string][]string
}

// NewTable builds a table from category → cue words. Category order is
// alphabetical so matching priority is stable.
func NewTable(entries map[string][]string) *Table {
	t := &Table{entries: make(map[string][]string, len(entries))}
	for name, cues := range entries {
		normalized := make([]string, len(cues))
		for i, cue := range cues {
			normalized[i] = strings.ToLower(cue)
		}
		t.entries[name] = normalized
		t.order = append(t.order, name)
	}
	sort.Strings(t.order)
	return t
}

// DefaultTable returns the stock book-market category table.
func DefaultTable() *Table {
	return NewTable(map[string][]string{
		"how_to":     {"how to", "guide", "tutorial", "step by step", "instructions", "learn"},
		"business":   {"business", "entrepreneur", "marketing", "sales", "profit", "money", "finance"},
		"health":     {"health", "fitness", "diet", "nutrition", "wellness", "exercise", "weight"},
		"technology": {"technology", "software", "programming", "computer", "digital", "tech"},
		"cooking":    {"cooking", "recipe", "food", "kitchen", "meal", "chef", "cookbook"},
		"self_help":  {"self help", "motivation", "success", "confidence", "mindset", "personal"},
		"romance":    {"romance", "love", "relationship", "dating", "marriage"},
		"children":   {"children", "kids", "child", "parenting", "family"},
		"education":  {"education", "learning", "study", "school", "teaching", "academic"},
		"fiction":    {"fiction", "novel", "story", "fantasy", "mystery", "thriller"},
	})
}

// Categorize returns the first category whose cue words match the
// keyword, or Other.
func (t *Table) Categorize(keyword string) string {
	lower := strings.ToLower(keyword)
	for _, name := range t.order {
		for _, cue := range t.entries[name] {
			if strings.Contains(lower, cue) {
				return name
			}
		}
	}
	return Other
}

// Group assigns every keyword to exactly one category. Empty groups
// are omitted.
func (t *Table) Group(keywords []string) map[string][]string {
	groups := make(map[string][]string)
	for _, kw := range keywords {
		name := t.Categorize(kw)
		groups[name] = append(groups[name], kw)
	}
	return groups
}

// Names returns the category names in matching priority order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Package taxonomy provides the skill taxonomy: categories, synonym groups and
// complementary-skill pairs, plus the normalization and equivalence rules built on them.
package taxonomy

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Category groups canonical skills under a stable id.
type Category struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Taxonomy is immutable after construction and safe for concurrent use.
type Taxonomy struct {
	categories  []Category
	synonyms    map[string][]string // canonical -> synonyms
	groupOf     map[string]string   // canonical or synonym -> canonical
	complements map[string][]string
}

// New builds a Taxonomy, normalizing every entry of the supplied tables.
func New(categories []Category, synonyms map[string][]string, complements map[string][]string) *Taxonomy {
	t := &Taxonomy{
		categories:  make([]Category, 0, len(categories)),
		synonyms:    make(map[string][]string, len(synonyms)),
		groupOf:     make(map[string]string),
		complements: make(map[string][]string, len(complements)),
	}

	for _, c := range categories {
		t.categories = append(t.categories, Category{
			ID:     c.ID,
			Name:   c.Name,
			Skills: Normalize(c.Skills),
		})
	}

	for _, canonical := range slices.Sorted(maps.Keys(synonyms)) {
		key := NormalizeSkill(canonical)
		if key == "" {
			continue
		}
		members := Normalize(synonyms[canonical])
		t.synonyms[key] = members
		t.groupOf[key] = key
		for _, m := range members {
			// A spelling listed under two canonicals stays with the first in sorted order.
			if _, taken := t.groupOf[m]; !taken {
				t.groupOf[m] = key
			}
		}
	}

	for skill, related := range complements {
		key := t.Canonical(skill)
		if key == "" {
			continue
		}
		t.complements[key] = Normalize(related)
	}

	return t
}

// Default returns the built-in taxonomy. It is built once per process.
var Default = sync.OnceValue(func() *Taxonomy {
	return New(defaultCategories, defaultSynonyms, defaultComplements)
})

// NormalizeSkill returns the comparison key for one skill token:
// NFKC-normalized, lower-cased, trimmed, with inner whitespace collapsed.
func NormalizeSkill(skill string) string {
	s := norm.NFKC.String(skill)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize normalizes every entry and returns the distinct non-empty keys, sorted.
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		s := NormalizeSkill(r)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Canonical resolves a skill to the canonical name of its synonym group.
// Skills outside every group resolve to their normalized form.
func (t *Taxonomy) Canonical(skill string) string {
	s := NormalizeSkill(skill)
	if c, ok := t.groupOf[s]; ok {
		return c
	}
	return s
}

// AreEquivalent reports whether two skills should be treated as the same skill:
// equal, one a substring of the other, or members of the same synonym group.
func (t *Taxonomy) AreEquivalent(a, b string) bool {
	a, b = NormalizeSkill(a), NormalizeSkill(b)
	if a == "" || b == "" {
		return false
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	ga, okA := t.groupOf[a]
	gb, okB := t.groupOf[b]
	return okA && okB && ga == gb
}

// MatchAny returns the first candidate skill equivalent to skill.
func (t *Taxonomy) MatchAny(skill string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if t.AreEquivalent(skill, c) {
			return c, true
		}
	}
	return "", false
}

// CategoryOf returns the id of the first category whose canonical skills contain skill.
func (t *Taxonomy) CategoryOf(skill string) (string, bool) {
	s := NormalizeSkill(skill)
	if s == "" {
		return "", false
	}
	canonical := t.Canonical(s)
	for _, c := range t.categories {
		if slices.Contains(c.Skills, s) || slices.Contains(c.Skills, canonical) {
			return c.ID, true
		}
	}
	return "", false
}

// ComplementsOf returns skills conventionally paired with skill, or nil.
func (t *Taxonomy) ComplementsOf(skill string) []string {
	related := t.complements[t.Canonical(skill)]
	if len(related) == 0 {
		return nil
	}
	return slices.Clone(related)
}

// Categories returns a copy of the category table in lookup order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{ID: c.ID, Name: c.Name, Skills: slices.Clone(c.Skills)}
	}
	return out
}

// SynonymsOf returns the synonym group of skill, canonical first.
func (t *Taxonomy) SynonymsOf(skill string) []string {
	canonical := t.Canonical(skill)
	group, ok := t.synonyms[canonical]
	if !ok {
		return nil
	}
	return append([]string{canonical}, group...)
}

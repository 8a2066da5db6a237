// Package keyword maps free-text tokens to canonical domain categories via
// a static synonym dictionary. The matching is deliberately permissive: a
// token matches a category if it is the category itself, if it appears
// inside any synonym, or if any synonym appears inside it. That two-way
// substring test catches abbreviations ("btech" inside "b.tech") at the
// cost of false positives on short tokens; callers that need tighter
// matching should do it here, not at the call sites.
package keyword

import (
	"sort"
	"strings"
)

// dictionary maps a canonical category tag to the synonyms and
// abbreviations that should resolve to it.
var dictionary = map[string][]string{
	"engineering": {"btech", "b.tech", "be", "b.e", "mtech", "m.tech", "m.e", "engineering", "technology"},
	"medical":     {"mbbs", "md", "bds", "neet", "medical", "medicine", "dental"},
	"management":  {"mba", "bba", "pgdm", "management", "business"},
	"law":         {"llb", "llm", "law", "legal"},
	"pharmacy":    {"bpharm", "b.pharm", "mpharm", "m.pharm", "pharmacy", "pharma"},
	"arts":        {"ba", "ma", "arts", "humanities"},
	"science":     {"bsc", "msc", "science"},
	"commerce":    {"bcom", "mcom", "commerce", "accounting"},
	"computer":    {"bca", "mca", "computer", "software", "informatics"},
	"design":      {"bdes", "mdes", "design", "fashion"},
	"education":   {"bed", "b.ed", "m.ed", "education", "teaching"},
	"diploma":     {"diploma", "polytechnic"},
}

// Extract returns the deduplicated set of category tags matched by the
// tokens of text. The result is sorted so identical input always yields
// an identical slice.
func Extract(text string) []string {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	for _, token := range tokens {
		if _, ok := dictionary[token]; ok {
			seen[token] = struct{}{}
		}
		for category, synonyms := range dictionary {
			for _, syn := range synonyms {
				if strings.Contains(syn, token) || strings.Contains(token, syn) {
					seen[category] = struct{}{}
					break
				}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Categories returns every canonical category tag in the dictionary,
// sorted.
func Categories() []string {
	out := make([]string, 0, len(dictionary))
	for category := range dictionary {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

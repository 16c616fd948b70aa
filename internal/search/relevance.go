package search

import "strings"

// Per-field weights for a boolean-mode full-text match.
const (
	advancedTitleWeight       = 0.5
	advancedTagsWeight        = 0.3
	advancedDescriptionWeight = 0.2
)

// Fragment bonus weights. Deliberately about half of the boolean weights so
// partial matches rank below true full-text hits.
const (
	fragmentTitleBonus       = 0.25
	fragmentTagsBonus        = 0.15
	fragmentDescriptionBonus = 0.1
)

// Characters separating query fragments. The operator characters count as
// separators so "cat+dog" still yields the fragments cat and dog.
const fragmentSeparators = ` +-*<>()~"`

// Fields is the searchable text of one video.
type Fields struct {
	Title       string
	Description string
	Tags        []string
}

func (f Fields) tagText() string {
	return strings.Join(f.Tags, " ")
}

// Fragments tokenizes q on separator and operator characters. An empty or
// operator-only query yields no fragments.
func Fragments(q string) []string {
	return strings.FieldsFunc(q, func(r rune) bool {
		return strings.ContainsRune(fragmentSeparators, r)
	})
}

// Relevance scores f against the query. Zero means no match at all; callers
// drop such rows from the result set.
//
// The score is a full-text base (phrase match in natural mode, operator
// aware and field-weighted in advanced mode) plus a low-weight fragment
// bonus that keeps partial-word queries from returning nothing.
func Relevance(query string, f Fields) float64 {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}

	var base float64
	if Advanced(query) {
		terms := parseBooleanTerms(query)
		base = advancedTitleWeight*matchBoolean(terms, f.Title) +
			advancedTagsWeight*matchBoolean(terms, f.tagText()) +
			advancedDescriptionWeight*matchBoolean(terms, f.Description)
	} else if containsFold(f.Title, query) ||
		containsFold(f.Description, query) ||
		containsFold(f.tagText(), query) {
		base = 1
	}

	return base + fragmentBonus(query, f)
}

func fragmentBonus(query string, f Fields) float64 {
	var bonus float64
	tags := f.tagText()

	for _, fragm := range Fragments(query) {
		if containsFold(f.Title, fragm) {
			bonus += fragmentTitleBonus
		}
		if containsFold(f.Description, fragm) {
			bonus += fragmentDescriptionBonus
		}
		if containsFold(tags, fragm) {
			bonus += fragmentTagsBonus
		}
	}

	return bonus
}

// booleanTerm is one operand of an advanced query.
type booleanTerm struct {
	text     string
	required bool // +word
	excluded bool // -word
}

// parseBooleanTerms reads an advanced query left to right. Quoted phrases
// stay whole, +/- prefixes mark required and excluded terms and the
// remaining operator characters only separate words. An unbalanced quote
// swallows the rest of the query as one phrase.
func parseBooleanTerms(query string) []booleanTerm {
	var terms []booleanTerm

	i := 0
	for i < len(query) {
		c := query[i]

		switch {
		case c == ' ' || strings.IndexByte(`*<>()~`, c) >= 0:
			i++

		case c == '+' || c == '-':
			start := i + 1
			end := start
			for end < len(query) && !strings.ContainsRune(fragmentSeparators, rune(query[end])) {
				end++
			}
			if end > start {
				terms = append(terms, booleanTerm{
					text:     query[start:end],
					required: c == '+',
					excluded: c == '-',
				})
			}
			i = end

		case c == '"':
			end := strings.IndexByte(query[i+1:], '"')
			if end < 0 {
				end = len(query)
			} else {
				end += i + 1
			}
			if phrase := strings.TrimSpace(query[i+1 : end]); phrase != "" {
				terms = append(terms, booleanTerm{text: phrase})
			}
			i = end + 1

		default:
			end := i
			for end < len(query) && !strings.ContainsRune(fragmentSeparators, rune(query[end])) {
				end++
			}
			terms = append(terms, booleanTerm{text: query[i:end]})
			i = end
		}
	}

	return terms
}

// matchBoolean evaluates terms against one field: every required term must
// appear, no excluded term may appear, and if any optional terms exist at
// least one has to appear. Returns 1 on a match, 0 otherwise.
func matchBoolean(terms []booleanTerm, field string) float64 {
	if len(terms) == 0 {
		return 0
	}

	optionalSeen := false
	optionalExists := false

	for _, t := range terms {
		present := containsFold(field, t.text)

		switch {
		case t.excluded:
			if present {
				return 0
			}
		case t.required:
			if !present {
				return 0
			}
		default:
			optionalExists = true
			if present {
				optionalSeen = true
			}
		}
	}

	if optionalExists && !optionalSeen {
		return 0
	}

	return 1
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

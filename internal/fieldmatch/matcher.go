package fieldmatch

import (
	"fmt"
	"sort"
	"strings"
)

const (
	MatchExact    = "exact"
	MatchFuzzy    = "fuzzy"
	MatchUnmapped = "unmapped"
)

type KnownField struct {
	Name     string
	Required bool
}

// ColumnMatchResult is the per-column analysis artifact consumed by the
// UI layer; it is never persisted.
type ColumnMatchResult struct {
	ExcelColumn string   `json:"excelColumn"`
	DBField     *string  `json:"dbField"`
	MatchType   string   `json:"matchType"`
	Suggestions []string `json:"suggestions"`
	IsRequired  bool     `json:"isRequired"`
}

type Analysis struct {
	Results         []ColumnMatchResult `json:"results"`
	MissingRequired []string            `json:"missingRequired"`
	Warnings        []string            `json:"warnings"`
	Recommendations []string            `json:"recommendations"`
}

type Matcher struct {
	scorer         Scorer
	fuzzyThreshold float64
	rankDecay      float64
	rankFloor      float64
	maxSuggestions int
	fallbackHints  int
}

func NewMatcher(scorer Scorer) *Matcher {
	if scorer == nil {
		scorer = NewEditDistanceScorer(DefaultCosts())
	}
	return &Matcher{
		scorer:         scorer,
		fuzzyThreshold: 0.7,
		rankDecay:      0.1,
		rankFloor:      0.6,
		maxSuggestions: 3,
		fallbackHints:  5,
	}
}

type indexedField struct {
	field      KnownField
	normalized string
}

type candidate struct {
	field      KnownField
	similarity float64
}

// Match maps spreadsheet column headers onto the known-field catalog.
// Pure analysis: the caller decides whether missing required fields
// block the import.
func (m *Matcher) Match(columns []string, known []KnownField) Analysis {
	// Build the normalized index once per call, not per column.
	index := make([]indexedField, len(known))
	for i, f := range known {
		index[i] = indexedField{field: f, normalized: normalize(f.Name)}
	}

	analysis := Analysis{
		Results:         make([]ColumnMatchResult, 0, len(columns)),
		MissingRequired: []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	mapped := make(map[string]bool)

	for _, col := range columns {
		result := m.matchColumn(col, index)
		if result.DBField != nil {
			mapped[*result.DBField] = true
		}
		analysis.Results = append(analysis.Results, result)
	}

	for _, f := range known {
		if f.Required && !mapped[f.Name] {
			analysis.MissingRequired = append(analysis.MissingRequired, f.Name)
			analysis.Warnings = append(analysis.Warnings,
				fmt.Sprintf("required field %q is not mapped by any column", f.Name))
			analysis.Recommendations = append(analysis.Recommendations,
				fmt.Sprintf("add a column for %q or rename an existing header to match it", f.Name))
		}
	}

	return analysis
}

func (m *Matcher) matchColumn(col string, index []indexedField) ColumnMatchResult {
	normCol := normalize(col)

	candidates := make([]candidate, len(index))
	for i, entry := range index {
		candidates[i] = candidate{
			field:      entry.field,
			similarity: m.scorer.Similarity(normCol, entry.normalized),
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	result := ColumnMatchResult{
		ExcelColumn: col,
		MatchType:   MatchUnmapped,
		Suggestions: []string{},
	}

	if len(candidates) == 0 {
		return result
	}

	best := candidates[0]
	switch {
	case normCol == normalize(best.field.Name):
		result.MatchType = MatchExact
	case best.similarity >= m.fuzzyThreshold:
		result.MatchType = MatchFuzzy
	}

	if result.MatchType == MatchUnmapped {
		// Nothing close enough: surface the leading known fields, in
		// catalog order, as a starting point for manual mapping.
		for i := 0; i < len(index) && i < m.fallbackHints; i++ {
			result.Suggestions = append(result.Suggestions, index[i].field.Name)
		}
		return result
	}

	name := best.field.Name
	result.DBField = &name
	result.IsRequired = best.field.Required

	if result.MatchType == MatchExact {
		return result
	}

	// A fuzzy pick is a guess, so the suggestion list restates it first
	// and then the next-best alternatives. The scorer's raw similarity
	// is not a calibrated confidence; alternates carry an estimate
	// decayed by a fixed step per rank position, floored at rankFloor.
	// Candidates with no overlap at all are not worth suggesting.
	result.Suggestions = append(result.Suggestions, name)
	for rank := 1; rank < len(candidates) && len(result.Suggestions) < m.maxSuggestions; rank++ {
		if candidates[rank].similarity <= 0 {
			break
		}
		result.Suggestions = append(result.Suggestions, candidates[rank].field.Name)
	}

	return result
}

// EstimatedSimilarity reports the confidence attached to the alternate
// at the given rank. Rank 0 is the chosen match itself.
func (m *Matcher) EstimatedSimilarity(top float64, rank int) float64 {
	score := top - m.rankDecay*float64(rank)
	if score < m.rankFloor {
		return m.rankFloor
	}
	return score
}

// normalize folds case only. Whitespace is deliberately preserved:
// a header with a stray trailing space is a fuzzy match, not an exact
// one, and the UI should say so.
func normalize(s string) string {
	return strings.ToLower(s)
}

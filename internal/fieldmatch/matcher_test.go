package fieldmatch_test

import (
	"testing"

	"salary-system/internal/fieldmatch"

	"github.com/stretchr/testify/assert"
)

func knownFields() []fieldmatch.KnownField {
	return []fieldmatch.KnownField{
		{Name: "员工姓名", Required: true},
		{Name: "部门"},
		{Name: "岗位"},
		{Name: "基本工资"},
		{Name: "津贴补贴"},
		{Name: "个人所得税"},
	}
}

func TestMatcher_ExactMatch(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	analysis := m.Match([]string{"员工姓名"}, knownFields())

	assert.Len(t, analysis.Results, 1)
	r := analysis.Results[0]
	assert.Equal(t, fieldmatch.MatchExact, r.MatchType)
	assert.NotNil(t, r.DBField)
	assert.Equal(t, "员工姓名", *r.DBField)
	assert.True(t, r.IsRequired)
	assert.Empty(t, r.Suggestions)
	assert.Empty(t, analysis.MissingRequired)
}

func TestMatcher_ExactMatchIsCaseInsensitive(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	analysis := m.Match([]string{"EMPLOYEE_NAME"}, []fieldmatch.KnownField{{Name: "employee_name", Required: true}})

	assert.Equal(t, fieldmatch.MatchExact, analysis.Results[0].MatchType)
}

func TestMatcher_TrailingSpaceIsFuzzyNotExact(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	analysis := m.Match([]string{"员工姓名 "}, knownFields())

	r := analysis.Results[0]
	assert.Equal(t, fieldmatch.MatchFuzzy, r.MatchType)
	assert.NotNil(t, r.DBField)
	assert.Equal(t, "员工姓名", *r.DBField)
	assert.NotEmpty(t, r.Suggestions)
	assert.Equal(t, "员工姓名", r.Suggestions[0])
	// The fuzzy column still maps the required field.
	assert.Empty(t, analysis.MissingRequired)
}

func TestMatcher_SuggestionCap(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	analysis := m.Match([]string{"基本工资 "}, knownFields())

	r := analysis.Results[0]
	assert.Equal(t, fieldmatch.MatchFuzzy, r.MatchType)
	assert.LessOrEqual(t, len(r.Suggestions), 3)
}

func TestMatcher_UnmappedFallbackHints(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	analysis := m.Match([]string{"completely unrelated header"}, knownFields())

	r := analysis.Results[0]
	assert.Equal(t, fieldmatch.MatchUnmapped, r.MatchType)
	assert.Nil(t, r.DBField)

	// The hints are the leading catalog fields in their own order, not a
	// similarity ranking.
	assert.Equal(t, []string{"员工姓名", "部门", "岗位", "基本工资", "津贴补贴"}, r.Suggestions)
}

func TestMatcher_MissingRequiredField(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	analysis := m.Match([]string{"部门"}, knownFields())

	assert.Equal(t, []string{"员工姓名"}, analysis.MissingRequired)
	assert.NotEmpty(t, analysis.Warnings)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestMatcher_EstimatedSimilarityDecaysAndFloors(t *testing.T) {
	m := fieldmatch.NewMatcher(nil)

	assert.InDelta(t, 0.9, m.EstimatedSimilarity(0.9, 0), 1e-9)
	assert.InDelta(t, 0.8, m.EstimatedSimilarity(0.9, 1), 1e-9)
	assert.InDelta(t, 0.7, m.EstimatedSimilarity(0.9, 2), 1e-9)
	// Floored, never below 0.6.
	assert.InDelta(t, 0.6, m.EstimatedSimilarity(0.9, 7), 1e-9)
}

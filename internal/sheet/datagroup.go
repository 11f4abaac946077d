package sheet

// DataGroup identifies one import category, each mapped to one
// worksheet and one validation rule set.
type DataGroup string

const (
	// GroupAll is a request sentinel, never a worksheet.
	GroupAll DataGroup = "all"

	GroupEarnings DataGroup = "earnings"
	GroupBases    DataGroup = "bases"
	GroupCategory DataGroup = "category"
	GroupJob      DataGroup = "job"
)

// ImportOrder is load-bearing: category and job assignment rows are
// looked up by name by later dependent reports, so every run walks the
// groups in this sequence.
var ImportOrder = []DataGroup{GroupEarnings, GroupBases, GroupCategory, GroupJob}

// ExpandGroups normalizes a requested selection: the "all" sentinel
// expands to the full ordered sequence, duplicates collapse, and the
// canonical order is always preserved.
func ExpandGroups(groups []DataGroup) []DataGroup {
	requested := make(map[DataGroup]bool, len(groups))
	for _, g := range groups {
		if g == GroupAll {
			return append([]DataGroup(nil), ImportOrder...)
		}
		requested[g] = true
	}

	out := make([]DataGroup, 0, len(requested))
	for _, g := range ImportOrder {
		if requested[g] {
			out = append(out, g)
		}
	}
	return out
}

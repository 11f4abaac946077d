package catalog

import (
	"salary-system/internal/fieldmatch"
	"salary-system/internal/sheet"
)

// Canonical structural field names. Spreadsheet authors are not held to
// these spellings (the alias resolver and fuzzy matcher absorb the
// variants), but this is what rows are keyed on internally.
const (
	FieldEmployeeName     = "员工姓名"
	FieldDepartment       = "部门"
	FieldPosition         = "岗位"
	FieldRank             = "职级"
	FieldCategory         = "人员类别"
	FieldInsuranceType    = "保险类型"
	FieldContributionBase = "缴费基数"
	FieldEffectiveDate    = "生效日期"
	FieldNotes            = "备注"
)

// FieldDef describes one known field of a data group: either a
// structural column (employee name, department, ...) or one live salary
// component whose values become line items.
type FieldDef struct {
	Name       string
	Required   bool
	Structural bool
	Category   ComponentCategory // set only for component fields
}

// FieldCatalog is the known-field set for one data group, resolved from
// the live component catalog.
type FieldCatalog struct {
	Group      sheet.DataGroup
	Fields     []FieldDef
	Components map[string]SalaryComponent // by exact name; earnings only
}

// KnownFields adapts the catalog to the fuzzy matcher's input contract.
func (fc FieldCatalog) KnownFields() []fieldmatch.KnownField {
	out := make([]fieldmatch.KnownField, len(fc.Fields))
	for i, f := range fc.Fields {
		out[i] = fieldmatch.KnownField{Name: f.Name, Required: f.Required}
	}
	return out
}

// StructuralNames reports the columns the line-item importer must skip.
func (fc FieldCatalog) StructuralNames() map[string]bool {
	out := make(map[string]bool)
	for _, f := range fc.Fields {
		if f.Structural {
			out[f.Name] = true
		}
	}
	return out
}

func structuralFields(group sheet.DataGroup) []FieldDef {
	common := []FieldDef{
		{Name: FieldEmployeeName, Required: true, Structural: true},
		{Name: FieldDepartment, Structural: true},
		{Name: FieldPosition, Structural: true},
	}

	switch group {
	case sheet.GroupEarnings:
		return append(common, FieldDef{Name: FieldNotes, Structural: true})
	case sheet.GroupBases:
		return append(common,
			FieldDef{Name: FieldInsuranceType, Required: true, Structural: true},
			FieldDef{Name: FieldContributionBase, Required: true, Structural: true},
			FieldDef{Name: FieldEffectiveDate, Structural: true},
		)
	case sheet.GroupCategory:
		return append(common,
			FieldDef{Name: FieldCategory, Required: true, Structural: true},
		)
	case sheet.GroupJob:
		fields := append([]FieldDef{}, common...)
		// Position is mandatory when the sheet is a job assignment.
		for i := range fields {
			if fields[i].Name == FieldPosition {
				fields[i].Required = true
			}
		}
		return append(fields,
			FieldDef{Name: FieldRank, Structural: true},
			FieldDef{Name: FieldEffectiveDate, Structural: true},
		)
	default:
		return common
	}
}

package payrollimport

import (
	"context"

	"salary-system/internal/catalog"
	"salary-system/internal/department"
	"salary-system/internal/employee"
	"salary-system/internal/payroll"
	"salary-system/internal/position"
	"salary-system/internal/sheet"

	"go.uber.org/zap"
)

// ResolvedEntities is the name-keyed lookup set built once per import
// run. Row processing never touches the database for entity lookups.
type ResolvedEntities struct {
	Employees      map[string]employee.Employee
	Departments    map[string]department.Department
	Positions      map[string]position.Position
	Ranks          map[string]position.JobRank
	InsuranceTypes map[string]payroll.InsuranceType
}

type Resolver struct {
	employees   employee.Repository
	departments department.Repository
	positions   position.Repository
	payrolls    payroll.Repository
	logger      *zap.Logger
}

func NewResolver(
	employees employee.Repository,
	departments department.Repository,
	positions position.Repository,
	payrolls payroll.Repository,
) *Resolver {
	return &Resolver{
		employees:   employees,
		departments: departments,
		positions:   positions,
		payrolls:    payrolls,
		logger:      zap.L().Named("import.resolver"),
	}
}

// Preload gathers every distinct entity name across all parsed groups
// and resolves each entity type with a single bulk query.
func (r *Resolver) Preload(ctx context.Context, rowsByGroup map[sheet.DataGroup][]sheet.Row) (*ResolvedEntities, error) {
	employeeNames := collectNames(rowsByGroup, catalog.FieldEmployeeName)
	departmentNames := collectNames(rowsByGroup, catalog.FieldDepartment)
	positionNames := collectNames(rowsByGroup, catalog.FieldPosition)
	rankNames := collectNames(rowsByGroup, catalog.FieldRank)
	insuranceNames := collectNames(rowsByGroup, catalog.FieldInsuranceType)

	resolved := &ResolvedEntities{
		Employees:      map[string]employee.Employee{},
		Departments:    map[string]department.Department{},
		Positions:      map[string]position.Position{},
		Ranks:          map[string]position.JobRank{},
		InsuranceTypes: map[string]payroll.InsuranceType{},
	}

	employees, err := r.employees.FindByNames(ctx, employeeNames)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		resolved.Employees[e.FullName] = e
	}

	departments, err := r.departments.FindByNames(ctx, departmentNames)
	if err != nil {
		return nil, err
	}
	for _, d := range departments {
		resolved.Departments[d.Name] = d
	}

	positions, err := r.positions.FindByNames(ctx, positionNames)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		resolved.Positions[p.Name] = p
	}

	ranks, err := r.positions.FindRanksByNames(ctx, rankNames)
	if err != nil {
		return nil, err
	}
	for _, jr := range ranks {
		resolved.Ranks[jr.Name] = jr
	}

	insuranceTypes, err := r.payrolls.FindInsuranceTypesByNames(ctx, insuranceNames)
	if err != nil {
		return nil, err
	}
	for _, it := range insuranceTypes {
		resolved.InsuranceTypes[it.Name] = it
	}

	r.logger.Debug("entities preloaded",
		zap.Int("employees", len(resolved.Employees)),
		zap.Int("departments", len(resolved.Departments)),
		zap.Int("positions", len(resolved.Positions)),
		zap.Int("ranks", len(resolved.Ranks)),
		zap.Int("insuranceTypes", len(resolved.InsuranceTypes)))

	return resolved, nil
}

func collectNames(rowsByGroup map[sheet.DataGroup][]sheet.Row, field string) []string {
	aliases := aliasesFor(field)
	seen := map[string]bool{}
	var names []string

	for _, rows := range rowsByGroup {
		for _, row := range rows {
			name, _ := valueFor(row, aliases)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

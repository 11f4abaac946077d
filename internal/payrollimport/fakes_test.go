package payrollimport_test

import (
	"context"
	"database/sql"

	"salary-system/internal/catalog"
	"salary-system/internal/department"
	"salary-system/internal/employee"
	"salary-system/internal/messaging/kafka"
	"salary-system/internal/payroll"
	"salary-system/internal/position"
	"salary-system/internal/sheet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakePayrollRepository struct {
	withTxFn                        func(tx *sql.Tx) payroll.Repository
	findPeriodFn                    func(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error)
	findHeaderByIDFn                func(ctx context.Context, payrollID uuid.UUID) (*payroll.Header, error)
	findHeaderByEmployeeAndPeriodFn func(ctx context.Context, employeeID, periodID uuid.UUID) (*payroll.Header, error)
	findHeadersByPeriodFn           func(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID) ([]payroll.Header, error)
	createHeaderFn                  func(ctx context.Context, header *payroll.Header) error
	bulkInsertItemsFn               func(ctx context.Context, items []payroll.LineItem) error
	itemsWithCategoryFn             func(ctx context.Context, payrollID uuid.UUID) ([]payroll.ItemWithCategory, error)
	saveTotalsFn                    func(ctx context.Context, payrollID uuid.UUID, gross, deductions, net decimal.Decimal) error
	appendContributionBaseFn        func(ctx context.Context, base *payroll.ContributionBase) error
	findInsuranceTypesByNamesFn     func(ctx context.Context, names []string) ([]payroll.InsuranceType, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) FindPeriod(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error) {
	if f.findPeriodFn != nil {
		return f.findPeriodFn(ctx, periodID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindHeaderByID(ctx context.Context, payrollID uuid.UUID) (*payroll.Header, error) {
	if f.findHeaderByIDFn != nil {
		return f.findHeaderByIDFn(ctx, payrollID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindHeaderByEmployeeAndPeriod(ctx context.Context, employeeID, periodID uuid.UUID) (*payroll.Header, error) {
	if f.findHeaderByEmployeeAndPeriodFn != nil {
		return f.findHeaderByEmployeeAndPeriodFn(ctx, employeeID, periodID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindHeadersByPeriod(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID) ([]payroll.Header, error) {
	if f.findHeadersByPeriodFn != nil {
		return f.findHeadersByPeriodFn(ctx, periodID, employeeIDs)
	}
	return nil, nil
}

func (f *fakePayrollRepository) CreateHeader(ctx context.Context, header *payroll.Header) error {
	if f.createHeaderFn != nil {
		return f.createHeaderFn(ctx, header)
	}
	return nil
}

func (f *fakePayrollRepository) BulkInsertItems(ctx context.Context, items []payroll.LineItem) error {
	if f.bulkInsertItemsFn != nil {
		return f.bulkInsertItemsFn(ctx, items)
	}
	return nil
}

func (f *fakePayrollRepository) ItemsWithCategory(ctx context.Context, payrollID uuid.UUID) ([]payroll.ItemWithCategory, error) {
	if f.itemsWithCategoryFn != nil {
		return f.itemsWithCategoryFn(ctx, payrollID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) SaveTotals(ctx context.Context, payrollID uuid.UUID, gross, deductions, net decimal.Decimal) error {
	if f.saveTotalsFn != nil {
		return f.saveTotalsFn(ctx, payrollID, gross, deductions, net)
	}
	return nil
}

func (f *fakePayrollRepository) AppendContributionBase(ctx context.Context, base *payroll.ContributionBase) error {
	if f.appendContributionBaseFn != nil {
		return f.appendContributionBaseFn(ctx, base)
	}
	return nil
}

func (f *fakePayrollRepository) FindInsuranceTypesByNames(ctx context.Context, names []string) ([]payroll.InsuranceType, error) {
	if f.findInsuranceTypesByNamesFn != nil {
		return f.findInsuranceTypesByNamesFn(ctx, names)
	}
	return nil, nil
}

type fakeEmployeeRepository struct {
	withTxFn                   func(tx *sql.Tx) employee.Repository
	createFn                   func(ctx context.Context, emp *employee.Employee) error
	findAllFn                  func(ctx context.Context) ([]employee.Employee, error)
	findByNamesFn              func(ctx context.Context, names []string) ([]employee.Employee, error)
	appendCategoryAssignmentFn func(ctx context.Context, assignment *employee.CategoryAssignment) error
	appendJobHistoryFn         func(ctx context.Context, history *employee.JobHistory) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByNames(ctx context.Context, names []string) ([]employee.Employee, error) {
	if f.findByNamesFn != nil {
		return f.findByNamesFn(ctx, names)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) AppendCategoryAssignment(ctx context.Context, assignment *employee.CategoryAssignment) error {
	if f.appendCategoryAssignmentFn != nil {
		return f.appendCategoryAssignmentFn(ctx, assignment)
	}
	return nil
}

func (f *fakeEmployeeRepository) AppendJobHistory(ctx context.Context, history *employee.JobHistory) error {
	if f.appendJobHistoryFn != nil {
		return f.appendJobHistoryFn(ctx, history)
	}
	return nil
}

type fakeDepartmentRepository struct {
	findByNamesFn func(ctx context.Context, names []string) ([]department.Department, error)
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository { return f }

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByNames(ctx context.Context, names []string) ([]department.Department, error) {
	if f.findByNamesFn != nil {
		return f.findByNamesFn(ctx, names)
	}
	return nil, nil
}

type fakePositionRepository struct {
	findByNamesFn      func(ctx context.Context, names []string) ([]position.Position, error)
	findRanksByNamesFn func(ctx context.Context, names []string) ([]position.JobRank, error)
}

func (f *fakePositionRepository) WithTx(tx *sql.Tx) position.Repository { return f }

func (f *fakePositionRepository) Create(ctx context.Context, post *position.Position) error {
	return nil
}

func (f *fakePositionRepository) FindAll(ctx context.Context) ([]position.Position, error) {
	return nil, nil
}

func (f *fakePositionRepository) FindByNames(ctx context.Context, names []string) ([]position.Position, error) {
	if f.findByNamesFn != nil {
		return f.findByNamesFn(ctx, names)
	}
	return nil, nil
}

func (f *fakePositionRepository) FindRanksByNames(ctx context.Context, names []string) ([]position.JobRank, error) {
	if f.findRanksByNamesFn != nil {
		return f.findRanksByNamesFn(ctx, names)
	}
	return nil, nil
}

type fakeCatalogService struct {
	createComponentFn func(ctx context.Context, req catalog.CreateSalaryComponentRequest) (catalog.SalaryComponentResponse, error)
	getComponentsFn   func(ctx context.Context) ([]catalog.SalaryComponentResponse, error)
	fieldCatalogFn    func(ctx context.Context, group sheet.DataGroup) (catalog.FieldCatalog, error)
}

func (f *fakeCatalogService) CreateComponent(ctx context.Context, req catalog.CreateSalaryComponentRequest) (catalog.SalaryComponentResponse, error) {
	if f.createComponentFn != nil {
		return f.createComponentFn(ctx, req)
	}
	return catalog.SalaryComponentResponse{}, nil
}

func (f *fakeCatalogService) GetComponents(ctx context.Context) ([]catalog.SalaryComponentResponse, error) {
	if f.getComponentsFn != nil {
		return f.getComponentsFn(ctx)
	}
	return nil, nil
}

func (f *fakeCatalogService) FieldCatalog(ctx context.Context, group sheet.DataGroup) (catalog.FieldCatalog, error) {
	if f.fieldCatalogFn != nil {
		return f.fieldCatalogFn(ctx, group)
	}
	return catalog.FieldCatalog{Group: group}, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

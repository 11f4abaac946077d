package payrollimport_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"salary-system/internal/catalog"
	"salary-system/internal/employee"
	"salary-system/internal/fieldmatch"
	"salary-system/internal/messaging/kafka"
	"salary-system/internal/payroll"
	payrollerrors "salary-system/internal/payroll/errors"
	"salary-system/internal/payrollimport"
	importerrors "salary-system/internal/payrollimport/errors"
	"salary-system/internal/shared/contextutil"
	"salary-system/internal/sheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

type importServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     payrollimport.Service
	payrolls    *fakePayrollRepository
	employees   *fakeEmployeeRepository
	departments *fakeDepartmentRepository
	positions   *fakePositionRepository
	catalogs    *fakeCatalogService
	outbox      *fakeOutboxRepository
}

func setupImportServiceTest(t *testing.T) *importServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &importServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		payrolls:    &fakePayrollRepository{},
		employees:   &fakeEmployeeRepository{},
		departments: &fakeDepartmentRepository{},
		positions:   &fakePositionRepository{},
		catalogs:    &fakeCatalogService{},
		outbox:      &fakeOutboxRepository{},
	}

	deps.service = payrollimport.NewService(
		db, deps.payrolls, deps.employees, deps.departments, deps.positions,
		deps.catalogs, deps.outbox, nil,
	)
	return deps
}

func earningsWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	assert.NoError(t, f.SetSheetName("Sheet1", "薪资项目明细"))

	for r, cells := range rows {
		for c, v := range cells {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue("薪资项目明细", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf
}

func stubEarningsCatalog(deps *importServiceDeps) uuid.UUID {
	fc, basicID, _ := lineItemCatalog()
	deps.catalogs.fieldCatalogFn = func(ctx context.Context, group sheet.DataGroup) (catalog.FieldCatalog, error) {
		if group == sheet.GroupEarnings {
			return fc, nil
		}
		return catalog.FieldCatalog{Group: group}, nil
	}
	return basicID
}

func TestImportService_EarningsRun(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-import-1")
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	period := &payroll.Period{ID: uuid.New(), Year: 2024, Month: 1}
	zhangsan := employee.Employee{ID: uuid.New(), FullName: "张三"}

	stubEarningsCatalog(deps)
	deps.payrolls.findPeriodFn = func(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error) {
		return period, nil
	}
	deps.employees.findByNamesFn = func(ctx context.Context, names []string) ([]employee.Employee, error) {
		assert.ElementsMatch(t, []string{"张三", "王五"}, names)
		return []employee.Employee{zhangsan}, nil
	}

	var inserted []payroll.LineItem
	deps.payrolls.bulkInsertItemsFn = func(ctx context.Context, items []payroll.LineItem) error {
		inserted = append(inserted, items...)
		return nil
	}

	var recorded []kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		recorded = append(recorded, event)
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	var events []payrollimport.ProgressEvent
	buf := earningsWorkbook(t, [][]any{
		{"员工姓名", "基本工资"},
		{"张三", "8000"},
		{"王五", "7000"},
	})

	result, err := deps.service.ImportWorkbook(ctx, buf, payrollimport.ImportConfig{
		PeriodID:             period.ID,
		Groups:               []sheet.DataGroup{sheet.GroupEarnings},
		ValidateBeforeImport: true,
	}, func(e payrollimport.ProgressEvent) { events = append(events, e) })

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)

	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "王五")

	assert.Len(t, inserted, 1)
	assert.True(t, decimal.NewFromInt(8000).Equal(inserted[0].Amount))

	assert.Len(t, result.PayrollIDs, 1)
	assert.Equal(t, []string{zhangsan.ID.String()}, result.EmployeeIDs)

	assert.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.InDelta(t, 100, last.OverallPercent, 1e-9)

	// The completion event carries the originating request id.
	assert.Len(t, recorded, 1)
	assert.Equal(t, "payroll.import.completed", recorded[0].EventType)
	assert.Equal(t, "req-import-1", recorded[0].RequestID)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImportService_ProgressAdvancesPerRow(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	period := &payroll.Period{ID: uuid.New(), Year: 2024, Month: 1}
	staff := []employee.Employee{
		{ID: uuid.New(), FullName: "张三"},
		{ID: uuid.New(), FullName: "李四"},
		{ID: uuid.New(), FullName: "王五"},
	}

	stubEarningsCatalog(deps)
	deps.payrolls.findPeriodFn = func(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error) {
		return period, nil
	}
	deps.employees.findByNamesFn = func(ctx context.Context, names []string) ([]employee.Employee, error) {
		return staff, nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	var events []payrollimport.ProgressEvent
	buf := earningsWorkbook(t, [][]any{
		{"员工姓名", "基本工资"},
		{"张三", "8000"},
		{"李四", "7500"},
		{"王五", "7000"},
	})

	result, err := deps.service.ImportWorkbook(ctx, buf, payrollimport.ImportConfig{
		PeriodID: period.ID,
		Groups:   []sheet.DataGroup{sheet.GroupEarnings},
	}, func(e payrollimport.ProgressEvent) { events = append(events, e) })

	assert.NoError(t, err)
	assert.True(t, result.Success)

	// One event at group start plus one per row; the feed never goes
	// quiet for the duration of a group.
	assert.Len(t, events, 4)
	counts := make([]int, len(events))
	for i, e := range events {
		counts[i] = e.RowsProcessed
		assert.Equal(t, 3, e.RowsInGroup)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, counts)
	assert.InDelta(t, 100, events[len(events)-1].OverallPercent, 1e-9)
}

func TestImportService_ValidationGateSkipsGroup(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	period := &payroll.Period{ID: uuid.New(), Year: 2024, Month: 1}

	stubEarningsCatalog(deps)
	deps.payrolls.findPeriodFn = func(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error) {
		return period, nil
	}
	deps.payrolls.bulkInsertItemsFn = func(ctx context.Context, items []payroll.LineItem) error {
		t.Fatal("an invalid group must not be imported, not even partially")
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	buf := earningsWorkbook(t, [][]any{
		{"员工姓名", "基本工资"},
		{"张三", "8000"},
		{"", "7000"}, // missing required employee name
	})

	result, err := deps.service.ImportWorkbook(ctx, buf, payrollimport.ImportConfig{
		PeriodID:             period.ID,
		Groups:               []sheet.DataGroup{sheet.GroupEarnings},
		ValidateBeforeImport: true,
	}, nil)

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Zero(t, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.NotEmpty(t, result.Errors)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImportService_UnknownPeriodAbortsRun(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	buf := earningsWorkbook(t, [][]any{{"员工姓名"}, {"张三"}})

	_, err := deps.service.ImportWorkbook(ctx, buf, payrollimport.ImportConfig{
		PeriodID: uuid.New(),
		Groups:   []sheet.DataGroup{sheet.GroupAll},
	}, nil)

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotFound)
}

func TestImportService_PeriodRequired(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ImportWorkbook(ctx, bytes.NewReader(nil), payrollimport.ImportConfig{
		Groups: []sheet.DataGroup{sheet.GroupAll},
	}, nil)

	assert.ErrorIs(t, err, importerrors.ErrPeriodRequired)
}

func TestImportService_AnalyzeColumns(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	stubEarningsCatalog(deps)

	buf := earningsWorkbook(t, [][]any{
		{"员工姓名 ", "基本工资", "神秘列"},
		{"张三", "8000", "1"},
	})

	analysis, err := deps.service.AnalyzeColumns(ctx, buf, sheet.GroupEarnings)

	assert.NoError(t, err)
	assert.Len(t, analysis.Results, 3)

	byColumn := map[string]fieldmatch.ColumnMatchResult{}
	for _, r := range analysis.Results {
		byColumn[r.ExcelColumn] = r
	}

	// The trailing space keeps the header from being an exact match.
	assert.Equal(t, fieldmatch.MatchFuzzy, byColumn["员工姓名 "].MatchType)
	assert.Equal(t, fieldmatch.MatchExact, byColumn["基本工资"].MatchType)
	assert.Equal(t, fieldmatch.MatchUnmapped, byColumn["神秘列"].MatchType)
}

func TestImportService_ValidateWorkbookOnly(t *testing.T) {
	ctx := context.Background()
	deps := setupImportServiceTest(t)
	defer deps.db.Close()

	stubEarningsCatalog(deps)
	deps.payrolls.bulkInsertItemsFn = func(ctx context.Context, items []payroll.LineItem) error {
		t.Fatal("validation must not write")
		return nil
	}

	buf := earningsWorkbook(t, [][]any{
		{"员工姓名", "基本工资"},
		{"", "8000"},
	})

	results, err := deps.service.ValidateWorkbook(ctx, buf, []sheet.DataGroup{sheet.GroupEarnings})

	assert.NoError(t, err)
	vr := results[sheet.GroupEarnings]
	assert.False(t, vr.IsValid)
	assert.Len(t, vr.Errors, 1)
	assert.Equal(t, 2, vr.Errors[0].Row)
}

package payrollimport

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"salary-system/internal/catalog"
	"salary-system/internal/department"
	"salary-system/internal/employee"
	"salary-system/internal/events"
	"salary-system/internal/fieldmatch"
	"salary-system/internal/messaging/kafka"
	"salary-system/internal/payroll"
	payrollerrors "salary-system/internal/payroll/errors"
	importerrors "salary-system/internal/payrollimport/errors"
	"salary-system/internal/position"
	"salary-system/internal/shared/contextutil"
	"salary-system/internal/sheet"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=orchestrator.go -destination=mock/import_service_mock.go -package=mock
type Service interface {
	// ImportWorkbook runs the full pipeline: parse, optional validation
	// gate, entity resolution, header reconciliation, row writes.
	ImportWorkbook(ctx context.Context, r io.Reader, cfg ImportConfig, progress ProgressFunc) (ImportResult, error)

	// ValidateWorkbook runs only the validation pass, writing nothing.
	ValidateWorkbook(ctx context.Context, r io.Reader, groups []sheet.DataGroup) (map[sheet.DataGroup]ValidationResult, error)

	// AnalyzeColumns maps one group's column headers onto the known-field
	// catalog for the mapping preview.
	AnalyzeColumns(ctx context.Context, r io.Reader, group sheet.DataGroup) (fieldmatch.Analysis, error)
}

type service struct {
	db        *sql.DB
	payrolls  payroll.Repository
	catalogs  catalog.Service
	resolver  *Resolver
	validator *Validator
	lineItems *LineItemImporter
	matcher   *fieldmatch.Matcher
	employees employee.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	payrolls payroll.Repository,
	employees employee.Repository,
	departments department.Repository,
	positions position.Repository,
	catalogs catalog.Service,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:        db,
		payrolls:  payrolls,
		catalogs:  catalogs,
		resolver:  NewResolver(employees, departments, positions, payrolls),
		validator: NewValidator(NewCatalogRuleProvider(catalogs)),
		lineItems: NewLineItemImporter(payrolls),
		matcher:   fieldmatch.NewMatcher(nil),
		employees: employees,
		outbox:    outbox,
		rdb:       rdb,
		logger:    zap.L().Named("import.service"),
	}
}

func (s *service) ImportWorkbook(ctx context.Context, r io.Reader, cfg ImportConfig, progress ProgressFunc) (ImportResult, error) {
	if cfg.PeriodID == uuid.Nil {
		return ImportResult{}, importerrors.ErrPeriodRequired
	}
	groups := sheet.ExpandGroups(cfg.Groups)
	if len(groups) == 0 {
		return ImportResult{}, importerrors.ErrNoGroupsRequested
	}

	period, err := s.payrolls.FindPeriod(ctx, cfg.PeriodID)
	if err != nil {
		return ImportResult{}, err
	}
	if period == nil {
		return ImportResult{}, payrollerrors.ErrPeriodNotFound
	}

	parser, err := sheet.Open(r)
	if err != nil {
		return ImportResult{}, err
	}
	defer parser.Close()
	parser.SetAnalyzeFunc(s.logColumnAnalysis)

	result := ImportResult{
		PeriodID:    cfg.PeriodID.String(),
		PayrollIDs:  []string{},
		EmployeeIDs: []string{},
		Errors:      []RowError{},
		Warnings:    []string{},
	}

	// Parse every requested group up front. Exact totals make the
	// progress feed honest, and a workbook missing one sheet fails that
	// group alone instead of aborting the run midway.
	rowsByGroup := map[sheet.DataGroup][]sheet.Row{}
	var runGroups []sheet.DataGroup
	for _, group := range groups {
		rows, err := parser.Rows(group)
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Group:   group,
				Message: fmt.Sprintf("sheet could not be parsed: %v", err),
			})
			continue
		}
		rowsByGroup[group] = rows
		result.TotalRows += len(rows)
		runGroups = append(runGroups, group)
	}

	resolved, err := s.resolver.Preload(ctx, rowsByGroup)
	if err != nil {
		return ImportResult{}, err
	}

	reconciler := NewReconciler(s.payrolls, period)
	affected := newAffectedSet()
	processed := 0

	for gi, group := range runGroups {
		rows := rowsByGroup[group]
		emitProgress(progress, group, gi, len(runGroups), len(rows), processed, result.TotalRows)

		fc, err := s.catalogs.FieldCatalog(ctx, group)
		if err != nil {
			return ImportResult{}, err
		}

		if cfg.ValidateBeforeImport {
			vr, err := s.validator.Validate(ctx, group, rows)
			if err != nil {
				return ImportResult{}, err
			}
			result.Warnings = append(result.Warnings, vr.Warnings...)
			if !vr.IsValid {
				// The gate skips the whole group; its rows count as
				// failed so the totals still add up.
				result.Errors = append(result.Errors, vr.Errors...)
				result.FailedCount += len(rows)
				processed += len(rows)
				emitProgress(progress, group, gi, len(runGroups), len(rows), processed, result.TotalRows)
				continue
			}
		}

		for i, row := range rows {
			rowNum := i + 2
			if err := s.processRow(ctx, group, row, fc, period, resolved, reconciler, affected); err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, RowError{
					Row: rowNum, Group: group, Message: err.Error(),
				})
			} else {
				result.SuccessCount++
			}
			processed++
			// Per-row, so a long group still feeds the progress bar.
			emitProgress(progress, group, gi, len(runGroups), len(rows), processed, result.TotalRows)
		}
	}

	result.Success = result.FailedCount == 0 && len(result.Errors) == 0
	result.PayrollIDs = affected.payrollIDs
	result.EmployeeIDs = affected.employeeIDs

	s.finishRun(ctx, cfg.PeriodID, result)
	return result, nil
}

// processRow dispatches one row to its group's writer. A panic in row
// handling is confined to that row.
func (s *service) processRow(
	ctx context.Context,
	group sheet.DataGroup,
	row sheet.Row,
	fc catalog.FieldCatalog,
	period *payroll.Period,
	resolved *ResolvedEntities,
	reconciler *Reconciler,
	affected *affectedSet,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("row processing panic", zap.Any("panic", r), zap.String("group", string(group)))
			err = fmt.Errorf("row could not be processed: %v", r)
		}
	}()

	name, _ := valueFor(row, aliasesFor(catalog.FieldEmployeeName))
	emp, ok := resolved.Employees[name]
	if !ok {
		return importerrors.EmployeeNotFound(name)
	}

	switch group {
	case sheet.GroupEarnings:
		header, err := reconciler.HeaderFor(ctx, emp.ID)
		if err != nil {
			return err
		}
		count, err := s.lineItems.ImportRow(ctx, row, fc, header.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			affected.add(header.ID, emp.ID)
		}
		return nil

	case sheet.GroupBases:
		return s.importBaseRow(ctx, row, emp, period, resolved, affected)

	case sheet.GroupCategory:
		categoryName, _ := valueFor(row, aliasesFor(catalog.FieldCategory))
		err := s.employees.AppendCategoryAssignment(ctx, &employee.CategoryAssignment{
			ID:           uuid.New(),
			EmployeeID:   emp.ID,
			CategoryName: categoryName,
			PeriodID:     &period.ID,
		})
		if err != nil {
			return err
		}
		affected.addEmployee(emp.ID)
		return nil

	case sheet.GroupJob:
		return s.importJobRow(ctx, row, emp, period, resolved, affected)

	default:
		return fmt.Errorf("unsupported data group %q", group)
	}
}

func (s *service) importBaseRow(
	ctx context.Context,
	row sheet.Row,
	emp employee.Employee,
	period *payroll.Period,
	resolved *ResolvedEntities,
	affected *affectedSet,
) error {
	insuranceName, _ := valueFor(row, aliasesFor(catalog.FieldInsuranceType))
	insurance, ok := resolved.InsuranceTypes[insuranceName]
	if !ok {
		return importerrors.InsuranceTypeNotFound(insuranceName)
	}

	baseValue, _ := valueFor(row, aliasesFor(catalog.FieldContributionBase))
	base, err := parseAmount(baseValue)
	if err != nil {
		return fmt.Errorf("%s: %q is not an amount", catalog.FieldContributionBase, baseValue)
	}

	err = s.payrolls.AppendContributionBase(ctx, &payroll.ContributionBase{
		ID:               uuid.New(),
		EmployeeID:       emp.ID,
		InsuranceTypeID:  insurance.ID,
		ContributionBase: base.Abs(),
		PeriodID:         &period.ID,
	})
	if err != nil {
		return err
	}
	affected.addEmployee(emp.ID)
	return nil
}

func (s *service) importJobRow(
	ctx context.Context,
	row sheet.Row,
	emp employee.Employee,
	period *payroll.Period,
	resolved *ResolvedEntities,
	affected *affectedSet,
) error {
	positionName, _ := valueFor(row, aliasesFor(catalog.FieldPosition))
	post, ok := resolved.Positions[positionName]
	if !ok {
		return importerrors.PositionNotFound(positionName)
	}

	history := employee.JobHistory{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		PositionID:    &post.ID,
		EffectiveDate: payroll.ResolvePayDate(period, time.Now().UTC()),
	}

	if rankName, _ := valueFor(row, aliasesFor(catalog.FieldRank)); rankName != "" {
		// Rank is optional and unresolved ranks are skipped, not fatal.
		if rank, ok := resolved.Ranks[rankName]; ok {
			history.RankID = &rank.ID
		}
	}

	if dateValue, _ := valueFor(row, aliasesFor(catalog.FieldEffectiveDate)); dateValue != "" {
		if t, err := time.Parse("2006-01-02", dateValue); err == nil {
			history.EffectiveDate = t
		}
	}

	if err := s.employees.AppendJobHistory(ctx, &history); err != nil {
		return err
	}
	affected.addEmployee(emp.ID)
	return nil
}

func (s *service) ValidateWorkbook(ctx context.Context, r io.Reader, groups []sheet.DataGroup) (map[sheet.DataGroup]ValidationResult, error) {
	expanded := sheet.ExpandGroups(groups)
	if len(expanded) == 0 {
		return nil, importerrors.ErrNoGroupsRequested
	}

	parser, err := sheet.Open(r)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	results := make(map[sheet.DataGroup]ValidationResult, len(expanded))
	for _, group := range expanded {
		rows, err := parser.Rows(group)
		if err != nil {
			results[group] = ValidationResult{
				IsValid: false,
				Errors: []RowError{{
					Group:   group,
					Message: fmt.Sprintf("sheet could not be parsed: %v", err),
				}},
			}
			continue
		}

		vr, err := s.validator.Validate(ctx, group, rows)
		if err != nil {
			return nil, err
		}
		results[group] = vr
	}
	return results, nil
}

func (s *service) AnalyzeColumns(ctx context.Context, r io.Reader, group sheet.DataGroup) (fieldmatch.Analysis, error) {
	parser, err := sheet.Open(r)
	if err != nil {
		return fieldmatch.Analysis{}, err
	}
	defer parser.Close()

	headers, err := parser.Headers(group)
	if err != nil {
		return fieldmatch.Analysis{}, err
	}

	fc, err := s.catalogs.FieldCatalog(ctx, group)
	if err != nil {
		return fieldmatch.Analysis{}, err
	}

	return s.matcher.Match(headers, fc.KnownFields()), nil
}

// logColumnAnalysis is the parser's diagnostic side channel. It runs on
// its own goroutine, so it uses a background context and only logs.
func (s *service) logColumnAnalysis(group sheet.DataGroup, headers []string) {
	fc, err := s.catalogs.FieldCatalog(context.Background(), group)
	if err != nil {
		return
	}

	analysis := s.matcher.Match(headers, fc.KnownFields())
	for _, w := range analysis.Warnings {
		s.logger.Warn("column mapping", zap.String("group", string(group)), zap.String("warning", w))
	}
}

// finishRun records the completion event through the outbox and drops
// the period's cached payroll listing. Both are best-effort: the rows
// are already committed and the result is already final.
func (s *service) finishRun(ctx context.Context, periodID uuid.UUID, result ImportResult) {
	event := events.PayrollImportCompletedEvent{
		EventType:    "payroll.import.completed",
		PeriodID:     periodID.String(),
		TotalRows:    result.TotalRows,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		PayrollIDs:   result.PayrollIDs,
		EmployeeIDs:  result.EmployeeIDs,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal import event failed", zap.Error(err))
	} else {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			s.logger.Error("begin outbox tx failed", zap.Error(err))
		} else {
			defer tx.Rollback()
			err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     contextutil.GetRequestID(ctx),
				AggregateType: "payroll_import",
				AggregateID:   periodID.String(),
				EventType:     event.EventType,
				Topic:         events.PayrollImportCompletedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			})
			if err == nil {
				err = tx.Commit()
			}
			if err != nil {
				s.logger.Error("record import event failed", zap.Error(err))
			}
		}
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, payroll.PeriodCacheKey(periodID)).Err(); err != nil {
			s.logger.Error("invalidate period cache failed", zap.Error(err))
		}
	}
}

func emitProgress(progress ProgressFunc, group sheet.DataGroup, gi, groupCount, rowsInGroup, processed, total int) {
	if progress == nil {
		return
	}
	percent := 100.0
	if total > 0 {
		percent = 100 * float64(processed) / float64(total)
	}
	progress(ProgressEvent{
		Group:          group,
		GroupIndex:     gi,
		GroupCount:     groupCount,
		RowsInGroup:    rowsInGroup,
		RowsProcessed:  processed,
		OverallPercent: percent,
	})
}

// affectedSet collects distinct ids in first-seen order.
type affectedSet struct {
	payrollSeen  map[uuid.UUID]bool
	employeeSeen map[uuid.UUID]bool
	payrollIDs   []string
	employeeIDs  []string
}

func newAffectedSet() *affectedSet {
	return &affectedSet{
		payrollSeen:  map[uuid.UUID]bool{},
		employeeSeen: map[uuid.UUID]bool{},
		payrollIDs:   []string{},
		employeeIDs:  []string{},
	}
}

func (a *affectedSet) add(payrollID, employeeID uuid.UUID) {
	if !a.payrollSeen[payrollID] {
		a.payrollSeen[payrollID] = true
		a.payrollIDs = append(a.payrollIDs, payrollID.String())
	}
	a.addEmployee(employeeID)
}

func (a *affectedSet) addEmployee(employeeID uuid.UUID) {
	if !a.employeeSeen[employeeID] {
		a.employeeSeen[employeeID] = true
		a.employeeIDs = append(a.employeeIDs, employeeID.String())
	}
}

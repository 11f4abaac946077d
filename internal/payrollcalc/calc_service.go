package payrollcalc

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"salary-system/internal/catalog"
	"salary-system/internal/events"
	"salary-system/internal/messaging/kafka"
	"salary-system/internal/payroll"
	payrollerrors "salary-system/internal/payroll/errors"
	calcerrors "salary-system/internal/payrollcalc/errors"
	"salary-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// maxConcurrentCalculations bounds the batch fan-out so a period-wide
// run does not exhaust the database pool.
const maxConcurrentCalculations = 8

//go:generate mockgen -source=calc_service.go -destination=mock/calc_service_mock.go -package=mock
type Service interface {
	// Calculate computes totals without persisting anything.
	Calculate(ctx context.Context, payrollID uuid.UUID) (CalculationResult, error)

	// CalculateAndSave computes and, only on a fully successful
	// computation, persists the totals and flips the status.
	CalculateAndSave(ctx context.Context, payrollID uuid.UUID) (CalculationResult, error)

	// CalculateBatch computes every id concurrently. With save, each
	// successful result is persisted individually: one id's persistence
	// failure is never attributed to the others.
	CalculateBatch(ctx context.Context, payrollIDs []uuid.UUID, save bool) (BatchResult, error)

	// CalculateByPeriod runs the batch over a period's headers, optionally
	// narrowed to specific employees.
	CalculateByPeriod(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID, save bool) (BatchResult, error)
}

type service struct {
	db     *sql.DB
	repo   payroll.Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo payroll.Repository, outbox kafka.OutboxRepository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		rdb:    rdb,
		logger: zap.L().Named("payrollcalc.service"),
	}
}

func (s *service) Calculate(ctx context.Context, payrollID uuid.UUID) (CalculationResult, error) {
	header, err := s.repo.FindHeaderByID(ctx, payrollID)
	if err != nil {
		return CalculationResult{}, err
	}
	if header == nil {
		return CalculationResult{}, payrollerrors.ErrPayrollNotFound
	}

	items, err := s.repo.ItemsWithCategory(ctx, payrollID)
	if err != nil {
		return CalculationResult{}, err
	}

	return compute(*header, items), nil
}

// compute folds line items into category buckets. An item with an
// unrecognized category is reported and skipped; the rest of the
// calculation proceeds.
func compute(header payroll.Header, items []payroll.ItemWithCategory) CalculationResult {
	result := CalculationResult{
		PayrollID:  header.ID.String(),
		EmployeeID: header.EmployeeID.String(),
		PeriodID:   header.PeriodID.String(),
		ItemCounts: map[string]int{},
		Errors:     []string{},
	}

	var b Breakdown
	for _, item := range items {
		switch catalog.ComponentCategory(item.Category) {
		case catalog.CategoryBasicSalary:
			b.BasicSalary = b.BasicSalary.Add(item.Amount)
		case catalog.CategoryBenefits:
			b.Benefits = b.Benefits.Add(item.Amount)
		case catalog.CategoryPersonalInsurance:
			b.PersonalInsurance = b.PersonalInsurance.Add(item.Amount)
		case catalog.CategoryPersonalTax:
			b.PersonalTax = b.PersonalTax.Add(item.Amount)
		case catalog.CategoryOtherDeductions:
			b.OtherDeductions = b.OtherDeductions.Add(item.Amount)
		case catalog.CategoryEmployerInsurance:
			b.EmployerInsurance = b.EmployerInsurance.Add(item.Amount)
		default:
			result.Errors = append(result.Errors,
				fmt.Sprintf("component %s has unknown category %q", item.ComponentName, item.Category))
			continue
		}
		result.ItemCounts[item.Category]++
	}

	result.Breakdown = b
	result.GrossPay = b.BasicSalary.Add(b.Benefits).Add(b.Allowances)
	result.TotalDeductions = b.PersonalInsurance.Add(b.PersonalTax).Add(b.OtherDeductions)
	result.NetPay = result.GrossPay.Sub(result.TotalDeductions)

	// Unknown-category items are advisory: they are carried in the error
	// list for visibility but the remaining items still produce a usable,
	// persistable result.
	result.Success = true

	return result
}

func (s *service) CalculateAndSave(ctx context.Context, payrollID uuid.UUID) (CalculationResult, error) {
	result, err := s.calculateAndPersist(ctx, payrollID)
	if err != nil {
		return CalculationResult{}, err
	}

	if result.Success {
		s.finishRun(ctx, result.PeriodID, []CalculationResult{result})
	}
	return result, nil
}

// calculateAndPersist computes one payroll and saves its totals. A save
// failure flips Success off with a message that distinguishes "the
// numbers are wrong" from "the numbers are right but were not stored".
func (s *service) calculateAndPersist(ctx context.Context, payrollID uuid.UUID) (CalculationResult, error) {
	result, err := s.Calculate(ctx, payrollID)
	if err != nil {
		return CalculationResult{}, err
	}
	if !result.Success {
		return result, nil
	}

	err = s.repo.SaveTotals(ctx, payrollID, result.GrossPay, result.TotalDeductions, result.NetPay)
	if err != nil {
		s.logger.Error("persist totals failed",
			zap.String("payrollId", payrollID.String()), zap.Error(err))
		result.Success = false
		result.Errors = append(result.Errors, "calculated but failed to persist totals")
	}
	return result, nil
}

func (s *service) CalculateBatch(ctx context.Context, payrollIDs []uuid.UUID, save bool) (BatchResult, error) {
	if len(payrollIDs) == 0 {
		return BatchResult{}, calcerrors.ErrNoPayrollsSelected
	}

	results := make([]CalculationResult, len(payrollIDs))

	sem := make(chan struct{}, maxConcurrentCalculations)
	var wg sync.WaitGroup
	for i, id := range payrollIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			var result CalculationResult
			var err error
			if save {
				result, err = s.calculateAndPersist(ctx, id)
			} else {
				result, err = s.Calculate(ctx, id)
			}
			if err != nil {
				// One broken payroll never takes down the batch.
				result = CalculationResult{
					PayrollID:  id.String(),
					ItemCounts: map[string]int{},
					Errors:     []string{err.Error()},
				}
			}
			results[i] = result
		}(i, id)
	}
	wg.Wait()

	batch := BatchResult{Total: len(results), Results: results}
	successByPeriod := map[string][]CalculationResult{}
	for _, r := range results {
		if !r.Success {
			batch.FailedCount++
			continue
		}
		batch.SuccessCount++
		batch.TotalGrossPay = batch.TotalGrossPay.Add(r.GrossPay)
		batch.TotalDeductions = batch.TotalDeductions.Add(r.TotalDeductions)
		batch.TotalNetPay = batch.TotalNetPay.Add(r.NetPay)
		batch.TotalEmployerInsurance = batch.TotalEmployerInsurance.Add(r.Breakdown.EmployerInsurance)
		successByPeriod[r.PeriodID] = append(successByPeriod[r.PeriodID], r)
	}

	if save {
		for periodID, saved := range successByPeriod {
			s.finishRun(ctx, periodID, saved)
		}
	}

	return batch, nil
}

func (s *service) CalculateByPeriod(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID, save bool) (BatchResult, error) {
	period, err := s.repo.FindPeriod(ctx, periodID)
	if err != nil {
		return BatchResult{}, err
	}
	if period == nil {
		return BatchResult{}, payrollerrors.ErrPeriodNotFound
	}

	headers, err := s.repo.FindHeadersByPeriod(ctx, periodID, employeeIDs)
	if err != nil {
		return BatchResult{}, err
	}
	if len(headers) == 0 {
		return BatchResult{}, calcerrors.ErrNoPayrollsInPeriod
	}

	ids := make([]uuid.UUID, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}
	return s.CalculateBatch(ctx, ids, save)
}

// finishRun invalidates the period's cached listing and records the
// calculated event through the outbox. Best-effort: totals are already
// saved.
func (s *service) finishRun(ctx context.Context, periodID string, saved []CalculationResult) {
	if s.rdb != nil {
		if pid, err := uuid.Parse(periodID); err == nil {
			if err := s.rdb.Del(ctx, payroll.PeriodCacheKey(pid)).Err(); err != nil {
				s.logger.Error("invalidate period cache failed", zap.Error(err))
			}
		}
	}

	payrollIDs := make([]string, len(saved))
	employeeIDs := make([]string, len(saved))
	for i, r := range saved {
		payrollIDs[i] = r.PayrollID
		employeeIDs[i] = r.EmployeeID
	}

	event := events.PayrollCalculatedEvent{
		EventType:   "payroll.calculated",
		PeriodID:    periodID,
		PayrollIDs:  payrollIDs,
		EmployeeIDs: employeeIDs,
		OccurredAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal calculated event failed", zap.Error(err))
		return
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin outbox tx failed", zap.Error(err))
		return
	}
	defer tx.Rollback()

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_calculation",
		AggregateID:   periodID,
		EventType:     event.EventType,
		Topic:         events.PayrollCalculatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		s.logger.Error("record calculated event failed", zap.Error(err))
	}
}

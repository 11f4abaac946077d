package payrollimport

import (
	"context"
	"errors"
	"time"

	"salary-system/internal/payroll"
	payrollerrors "salary-system/internal/payroll/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciler finds or creates the draft payroll header a group's rows
// attach to. It is idempotent: re-running an import against the same
// period reuses the existing headers, and a create that loses a race on
// the (employee_id, period_id) constraint re-reads the winner's row.
type Reconciler struct {
	repo   payroll.Repository
	period *payroll.Period
	cache  map[uuid.UUID]*payroll.Header
	logger *zap.Logger
}

func NewReconciler(repo payroll.Repository, period *payroll.Period) *Reconciler {
	return &Reconciler{
		repo:   repo,
		period: period,
		cache:  map[uuid.UUID]*payroll.Header{},
		logger: zap.L().Named("import.reconciler"),
	}
}

func (r *Reconciler) HeaderFor(ctx context.Context, employeeID uuid.UUID) (*payroll.Header, error) {
	if header, ok := r.cache[employeeID]; ok {
		return header, nil
	}

	header, err := r.repo.FindHeaderByEmployeeAndPeriod(ctx, employeeID, r.period.ID)
	if err != nil {
		return nil, err
	}

	if header == nil {
		header, err = r.createDraft(ctx, employeeID)
		if err != nil {
			return nil, err
		}
	}

	r.cache[employeeID] = header
	return header, nil
}

func (r *Reconciler) createDraft(ctx context.Context, employeeID uuid.UUID) (*payroll.Header, error) {
	header := &payroll.Header{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		PeriodID:   r.period.ID,
		PayDate:    payroll.ResolvePayDate(r.period, time.Now().UTC()),
		Status:     payroll.StatusDraft,
	}

	err := payroll.MapHeaderInsertError(r.repo.CreateHeader(ctx, header))
	if err == nil {
		return header, nil
	}
	if !errors.Is(err, payrollerrors.ErrHeaderAlreadyExists) {
		return nil, err
	}

	// Lost the race; the winner's header is the one to use.
	r.logger.Debug("header create raced, re-reading",
		zap.String("employeeId", employeeID.String()),
		zap.String("periodId", r.period.ID.String()))

	existing, err := r.repo.FindHeaderByEmployeeAndPeriod(ctx, employeeID, r.period.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return existing, nil
}

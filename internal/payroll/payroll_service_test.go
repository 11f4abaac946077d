package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"salary-system/internal/payroll"
	payrollerrors "salary-system/internal/payroll/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	findPeriodFn          func(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error)
	findHeaderByIDFn      func(ctx context.Context, payrollID uuid.UUID) (*payroll.Header, error)
	findHeadersByPeriodFn func(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID) ([]payroll.Header, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeRepository) FindPeriod(ctx context.Context, periodID uuid.UUID) (*payroll.Period, error) {
	if f.findPeriodFn != nil {
		return f.findPeriodFn(ctx, periodID)
	}
	return nil, nil
}

func (f *fakeRepository) FindHeaderByID(ctx context.Context, payrollID uuid.UUID) (*payroll.Header, error) {
	if f.findHeaderByIDFn != nil {
		return f.findHeaderByIDFn(ctx, payrollID)
	}
	return nil, nil
}

func (f *fakeRepository) FindHeaderByEmployeeAndPeriod(ctx context.Context, employeeID, periodID uuid.UUID) (*payroll.Header, error) {
	return nil, nil
}

func (f *fakeRepository) FindHeadersByPeriod(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID) ([]payroll.Header, error) {
	if f.findHeadersByPeriodFn != nil {
		return f.findHeadersByPeriodFn(ctx, periodID, employeeIDs)
	}
	return nil, nil
}

func (f *fakeRepository) CreateHeader(ctx context.Context, header *payroll.Header) error { return nil }

func (f *fakeRepository) BulkInsertItems(ctx context.Context, items []payroll.LineItem) error {
	return nil
}

func (f *fakeRepository) ItemsWithCategory(ctx context.Context, payrollID uuid.UUID) ([]payroll.ItemWithCategory, error) {
	return nil, nil
}

func (f *fakeRepository) SaveTotals(ctx context.Context, payrollID uuid.UUID, gross, deductions, net decimal.Decimal) error {
	return nil
}

func (f *fakeRepository) AppendContributionBase(ctx context.Context, base *payroll.ContributionBase) error {
	return nil
}

func (f *fakeRepository) FindInsuranceTypesByNames(ctx context.Context, names []string) ([]payroll.InsuranceType, error) {
	return nil, nil
}

func draftHeader(periodID uuid.UUID) payroll.Header {
	return payroll.Header{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		PeriodID:   periodID,
		PayDate:    time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		Status:     payroll.StatusDraft,
	}
}

func TestPayrollService_GetByID(t *testing.T) {
	ctx := context.Background()
	periodID := uuid.New()
	header := draftHeader(periodID)
	gross := decimal.NewFromFloat(9200.5)
	header.GrossPay = decimal.NewNullDecimal(gross)
	header.Status = payroll.StatusCalculated

	repo := &fakeRepository{
		findHeaderByIDFn: func(ctx context.Context, payrollID uuid.UUID) (*payroll.Header, error) {
			assert.Equal(t, header.ID, payrollID)
			return &header, nil
		},
	}

	svc := payroll.NewService(nil, repo, nil)

	resp, err := svc.GetByID(ctx, header.ID)

	assert.NoError(t, err)
	assert.Equal(t, header.ID.String(), resp.ID)
	assert.Equal(t, "2024-01-31", resp.PayDate)
	assert.Equal(t, payroll.StatusCalculated, resp.Status)
	assert.NotNil(t, resp.GrossPay)
	assert.Equal(t, "9200.50", *resp.GrossPay)

	// Totals a calculation never wrote stay absent, not zero.
	assert.Nil(t, resp.NetPay)
}

func TestPayrollService_GetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	svc := payroll.NewService(nil, &fakeRepository{}, nil)

	_, err := svc.GetByID(ctx, uuid.New())

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}

func TestPayrollService_GetByPeriodCacheMiss(t *testing.T) {
	ctx := context.Background()
	periodID := uuid.New()
	headers := []payroll.Header{draftHeader(periodID), draftHeader(periodID)}

	rdb, redisMock := redismock.NewClientMock()
	cacheKey := payroll.PeriodCacheKey(periodID)
	cached, err := json.Marshal(headers)
	assert.NoError(t, err)
	redisMock.ExpectGet(cacheKey).RedisNil()
	redisMock.ExpectSet(cacheKey, cached, 10*time.Minute).SetVal("OK")

	repo := &fakeRepository{
		findPeriodFn: func(ctx context.Context, pid uuid.UUID) (*payroll.Period, error) {
			return &payroll.Period{ID: periodID, Year: 2024, Month: 1}, nil
		},
		findHeadersByPeriodFn: func(ctx context.Context, pid uuid.UUID, employeeIDs []uuid.UUID) ([]payroll.Header, error) {
			return headers, nil
		},
	}

	svc := payroll.NewService(nil, repo, rdb)

	resp, err := svc.GetByPeriod(ctx, periodID)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, headers[0].ID.String(), resp[0].ID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPayrollService_GetByPeriodCacheHit(t *testing.T) {
	ctx := context.Background()
	periodID := uuid.New()
	headers := []payroll.Header{draftHeader(periodID)}

	rdb, redisMock := redismock.NewClientMock()
	cached, err := json.Marshal(headers)
	assert.NoError(t, err)
	redisMock.ExpectGet(payroll.PeriodCacheKey(periodID)).SetVal(string(cached))

	repo := &fakeRepository{
		findPeriodFn: func(ctx context.Context, pid uuid.UUID) (*payroll.Period, error) {
			t.Fatal("a cache hit must not query the database")
			return nil, nil
		},
	}

	svc := payroll.NewService(nil, repo, rdb)

	resp, err := svc.GetByPeriod(ctx, periodID)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, headers[0].ID.String(), resp[0].ID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPayrollService_GetByPeriodUnknownPeriod(t *testing.T) {
	ctx := context.Background()
	svc := payroll.NewService(nil, &fakeRepository{}, nil)

	_, err := svc.GetByPeriod(ctx, uuid.New())

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotFound)
}

package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemWithCategory is a line item joined with its component's category,
// the calculator's working unit.
type ItemWithCategory struct {
	ItemID        uuid.UUID
	ComponentID   uuid.UUID
	ComponentName string
	Category      string
	Amount        decimal.Decimal
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindPeriod(ctx context.Context, periodID uuid.UUID) (*Period, error)

	FindHeaderByID(ctx context.Context, payrollID uuid.UUID) (*Header, error)
	FindHeaderByEmployeeAndPeriod(ctx context.Context, employeeID, periodID uuid.UUID) (*Header, error)
	FindHeadersByPeriod(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID) ([]Header, error)
	CreateHeader(ctx context.Context, header *Header) error

	BulkInsertItems(ctx context.Context, items []LineItem) error
	ItemsWithCategory(ctx context.Context, payrollID uuid.UUID) ([]ItemWithCategory, error)

	SaveTotals(ctx context.Context, payrollID uuid.UUID, gross, deductions, net decimal.Decimal) error

	AppendContributionBase(ctx context.Context, base *ContributionBase) error
	FindInsuranceTypesByNames(ctx context.Context, names []string) ([]InsuranceType, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) FindPeriod(ctx context.Context, periodID uuid.UUID) (*Period, error) {
	var period Period
	err := r.db.WithContext(ctx).
		Where("id = ?", periodID).
		First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *repository) FindHeaderByID(ctx context.Context, payrollID uuid.UUID) (*Header, error) {
	var header Header
	err := r.db.WithContext(ctx).
		Where("id = ?", payrollID).
		First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (r *repository) FindHeaderByEmployeeAndPeriod(ctx context.Context, employeeID, periodID uuid.UUID) (*Header, error) {
	var header Header
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("period_id = ?", periodID).
		First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (r *repository) FindHeadersByPeriod(ctx context.Context, periodID uuid.UUID, employeeIDs []uuid.UUID) ([]Header, error) {
	query := r.db.WithContext(ctx).
		Where("period_id = ?", periodID)
	if len(employeeIDs) > 0 {
		query = query.Where("employee_id IN ?", employeeIDs)
	}

	var headers []Header
	err := query.Order("created_at ASC").Find(&headers).Error
	return headers, err
}

func (r *repository) CreateHeader(ctx context.Context, header *Header) error {
	return r.db.WithContext(ctx).Create(header).Error
}

func (r *repository) BulkInsertItems(ctx context.Context, items []LineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) ItemsWithCategory(ctx context.Context, payrollID uuid.UUID) ([]ItemWithCategory, error) {
	var items []ItemWithCategory
	query := `
SELECT
	payroll_items.id AS item_id,
	payroll_items.component_id,
	salary_components.name AS component_name,
	salary_components.category,
	payroll_items.amount
FROM payroll_items
JOIN salary_components ON salary_components.id = payroll_items.component_id
WHERE payroll_items.payroll_id = ?
ORDER BY salary_components.name ASC
`

	err := r.db.WithContext(ctx).Raw(query, payrollID).Scan(&items).Error
	return items, err
}

func (r *repository) SaveTotals(ctx context.Context, payrollID uuid.UUID, gross, deductions, net decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&Header{}).
		Where("id = ?", payrollID).
		Updates(map[string]any{
			"gross_pay":        gross,
			"total_deductions": deductions,
			"net_pay":          net,
			"status":           StatusCalculated,
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *repository) AppendContributionBase(ctx context.Context, base *ContributionBase) error {
	return r.db.WithContext(ctx).Create(base).Error
}

func (r *repository) FindInsuranceTypesByNames(ctx context.Context, names []string) ([]InsuranceType, error) {
	if len(names) == 0 {
		return []InsuranceType{}, nil
	}

	var types []InsuranceType
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&types).Error
	return types, err
}

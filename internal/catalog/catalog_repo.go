package catalog

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=catalog_repo.go -destination=mock/catalog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	FindAll(ctx context.Context) ([]SalaryComponent, error)
	FindByNames(ctx context.Context, names []string) ([]SalaryComponent, error)
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

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindAll(ctx context.Context) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindByNames(ctx context.Context, names []string) ([]SalaryComponent, error) {
	if len(names) == 0 {
		return []SalaryComponent{}, nil
	}

	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&components).Error
	return components, err
}

package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByNames(ctx context.Context, names []string) ([]Employee, error)
	AppendCategoryAssignment(ctx context.Context, assignment *CategoryAssignment) error
	AppendJobHistory(ctx context.Context, history *JobHistory) error
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

// FindByNames is the bulk lookup the import resolver relies on: one
// query for the whole row set, not one per row.
func (r *repository) FindByNames(ctx context.Context, names []string) ([]Employee, error) {
	if len(names) == 0 {
		return []Employee{}, nil
	}

	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("full_name IN ?", names).
		Find(&employees).Error
	return employees, err
}

func (r *repository) AppendCategoryAssignment(ctx context.Context, assignment *CategoryAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) AppendJobHistory(ctx context.Context, history *JobHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

package position

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, post *Position) error
	FindAll(ctx context.Context) ([]Position, error)
	FindByNames(ctx context.Context, names []string) ([]Position, error)
	FindRanksByNames(ctx context.Context, names []string) ([]JobRank, error)
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

func (r *repository) Create(ctx context.Context, post *Position) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&positions).Error
	return positions, err
}

func (r *repository) FindByNames(ctx context.Context, names []string) ([]Position, error) {
	if len(names) == 0 {
		return []Position{}, nil
	}

	var positions []Position
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&positions).Error
	return positions, err
}

func (r *repository) FindRanksByNames(ctx context.Context, names []string) ([]JobRank, error) {
	if len(names) == 0 {
		return []JobRank{}, nil
	}

	var ranks []JobRank
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&ranks).Error
	return ranks, err
}

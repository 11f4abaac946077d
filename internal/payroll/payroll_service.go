package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	payrollerrors "salary-system/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PeriodCacheKey is shared with the import and calculation services,
// which invalidate it after writing payrolls for a period.
func PeriodCacheKey(periodID uuid.UUID) string {
	return "payrolls:period:" + periodID.String()
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, payrollID uuid.UUID) (HeaderResponse, error)
	GetByPeriod(ctx context.Context, periodID uuid.UUID) ([]HeaderResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("payroll.service"),
	}
}

func (s *service) GetByID(ctx context.Context, payrollID uuid.UUID) (HeaderResponse, error) {
	header, err := s.repo.FindHeaderByID(ctx, payrollID)
	if err != nil {
		return HeaderResponse{}, err
	}
	if header == nil {
		return HeaderResponse{}, payrollerrors.ErrPayrollNotFound
	}
	return mapToResponse(*header), nil
}

func (s *service) GetByPeriod(ctx context.Context, periodID uuid.UUID) ([]HeaderResponse, error) {
	cacheKey := PeriodCacheKey(periodID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var headers []Header
			if err := json.Unmarshal([]byte(cached), &headers); err == nil {
				return mapToListResponse(headers), nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		period, err := s.repo.FindPeriod(ctx, periodID)
		if err != nil {
			return nil, err
		}
		if period == nil {
			return nil, payrollerrors.ErrPeriodNotFound
		}

		headers, err := s.repo.FindHeadersByPeriod(ctx, periodID, nil)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(headers); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 10*time.Minute)
			}
		}

		return headers, nil
	})
	if err != nil {
		return nil, err
	}

	return mapToListResponse(v.([]Header)), nil
}

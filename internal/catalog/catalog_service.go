package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"salary-system/internal/sheet"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ComponentsAllKey = "salary_components:all"

//go:generate mockgen -source=catalog_service.go -destination=mock/catalog_service_mock.go -package=mock
type Service interface {
	CreateComponent(ctx context.Context, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	GetComponents(ctx context.Context) ([]SalaryComponentResponse, error)
	FieldCatalog(ctx context.Context, group sheet.DataGroup) (FieldCatalog, error)
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
		logger: zap.L().Named("catalog.service"),
	}
}

func (s *service) CreateComponent(
	ctx context.Context,
	req CreateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	isTaxable := true
	if req.IsTaxable != nil {
		isTaxable = *req.IsTaxable
	}

	component := &SalaryComponent{
		ID:        uuid.New(),
		Name:      req.Name,
		Type:      ComponentType(req.Type),
		Category:  ComponentCategory(req.Category),
		IsTaxable: isTaxable,
	}

	if err := qtx.Create(ctx, component); err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryComponentResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, ComponentsAllKey).Err(); err != nil {
			s.logger.Error("invalidate component cache failed", zap.Error(err))
		}
	}

	return mapToResponse(*component), nil
}

func (s *service) GetComponents(ctx context.Context) ([]SalaryComponentResponse, error) {
	components, err := s.components(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SalaryComponentResponse, len(components))
	for i, c := range components {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

// FieldCatalog resolves the known-field set for a data group from the
// live component catalog, so newly added components are picked up
// without a deploy.
func (s *service) FieldCatalog(ctx context.Context, group sheet.DataGroup) (FieldCatalog, error) {
	fc := FieldCatalog{
		Group:      group,
		Fields:     structuralFields(group),
		Components: map[string]SalaryComponent{},
	}

	if group != sheet.GroupEarnings {
		return fc, nil
	}

	components, err := s.components(ctx)
	if err != nil {
		return FieldCatalog{}, err
	}

	for _, c := range components {
		fc.Fields = append(fc.Fields, FieldDef{
			Name:     c.Name,
			Category: c.Category,
		})
		fc.Components[c.Name] = c
	}

	return fc, nil
}

// components is the cache-through read used by every catalog consumer.
func (s *service) components(ctx context.Context) ([]SalaryComponent, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ComponentsAllKey).Result()
		if err == nil {
			var components []SalaryComponent
			if err := json.Unmarshal([]byte(cached), &components); err == nil {
				return components, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ComponentsAllKey, func() (interface{}, error) {
		components, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(components); err == nil {
				s.rdb.Set(ctx, ComponentsAllKey, jsonData, 30*time.Minute)
			}
		}

		return components, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]SalaryComponent), nil
}

func mapToResponse(c SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		Category:  string(c.Category),
		IsTaxable: c.IsTaxable,
	}
}

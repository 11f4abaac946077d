package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const PositionAllKey = "positions:all"

type CreatePositionRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id"`
}

type PositionResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DepartmentID *string `json:"department_id,omitempty"`
}

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context) ([]PositionResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	rdb  *redis.Client
	sf   *singleflight.Group
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}}
}

func (s *service) Create(
	ctx context.Context,
	req CreatePositionRequest,
) (PositionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	post := &Position{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if req.DepartmentID != "" {
		departmentID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return PositionResponse{}, errors.New("invalid department id")
		}
		post.DepartmentID = &departmentID
	}

	if err := qtx.Create(ctx, post); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	if s.rdb != nil {
		_ = s.rdb.Del(ctx, PositionAllKey).Err()
	}

	return mapToResponse(*post), nil
}

func (s *service) GetAll(ctx context.Context) ([]PositionResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, PositionAllKey).Result()
		if err == nil {
			var resp []PositionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(PositionAllKey, func() (interface{}, error) {
		positions, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]PositionResponse, len(positions))
		for i, post := range positions {
			resp[i] = mapToResponse(post)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, PositionAllKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PositionResponse), nil
}

func mapToResponse(post Position) PositionResponse {
	resp := PositionResponse{
		ID:   post.ID.String(),
		Name: post.Name,
	}
	if post.DepartmentID != nil {
		v := post.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}

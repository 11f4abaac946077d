package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"salary-system/internal/events"
	"salary-system/internal/messaging/kafka"
	"salary-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("employee.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Status:         "active",
	}

	if req.DepartmentID != "" {
		departmentID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, errors.New("invalid department id")
		}
		emp.DepartmentID = &departmentID
	}
	if req.PositionID != "" {
		positionID, err := uuid.Parse(req.PositionID)
		if err != nil {
			return EmployeeResponse{}, errors.New("invalid position id")
		}
		emp.PositionID = &positionID
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, errors.New("invalid hire_date format, expected YYYY-MM-DD")
		}
		emp.HireDate = &hireDate
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	// Outbox row commits atomically with the employee; the worker
	// publishes it after the fact.
	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee.created",
			EmployeeID: emp.ID.String(),
			FullName:   emp.FullName,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   emp.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
			s.logger.Error("invalidate employee cache failed", zap.Error(err))
		}
	}

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result()
		if err == nil {
			var resp []EmployeeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		employees, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeResponse, len(employees))
		for i, emp := range employees {
			resp[i] = mapToResponse(emp)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             emp.ID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		FullName:       emp.FullName,
		Status:         emp.Status,
	}
	if emp.DepartmentID != nil {
		v := emp.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if emp.PositionID != nil {
		v := emp.PositionID.String()
		resp.PositionID = &v
	}
	if emp.HireDate != nil {
		v := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &v
	}
	return resp
}

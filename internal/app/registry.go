package app

import (
	"database/sql"

	"salary-system/internal/catalog"
	"salary-system/internal/department"
	"salary-system/internal/employee"
	"salary-system/internal/messaging/kafka"
	"salary-system/internal/payroll"
	"salary-system/internal/payrollcalc"
	"salary-system/internal/payrollimport"
	"salary-system/internal/position"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Registry holds every wired service so both the HTTP surface and the
// tests build the object graph the same way.
type Registry struct {
	Catalogs    catalog.Service
	Employees   employee.Service
	Departments department.Service
	Positions   position.Service
	Payrolls    payroll.Service
	Imports     payrollimport.Service
	Calculator  payrollcalc.Service

	Outbox kafka.OutboxRepository
}

func NewRegistry(gormDB *gorm.DB, sqlDB *sql.DB, rdb *redis.Client) *Registry {
	catalogRepo := catalog.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	catalogService := catalog.NewService(sqlDB, catalogRepo, rdb)

	return &Registry{
		Catalogs:    catalogService,
		Employees:   employee.NewServiceWithOutbox(sqlDB, employeeRepo, outboxRepo, rdb),
		Departments: department.NewService(sqlDB, departmentRepo, rdb),
		Positions:   position.NewService(sqlDB, positionRepo, rdb),
		Payrolls:    payroll.NewService(sqlDB, payrollRepo, rdb),
		Imports: payrollimport.NewService(
			sqlDB, payrollRepo, employeeRepo, departmentRepo, positionRepo,
			catalogService, outboxRepo, rdb,
		),
		Calculator: payrollcalc.NewService(sqlDB, payrollRepo, outboxRepo, rdb),
		Outbox:     outboxRepo,
	}
}

// RegisterRoutes mounts every feature's routes under /api/v1.
func (r *Registry) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")

	catalog.RegisterRoutes(api, catalog.NewHandler(r.Catalogs))
	employee.RegisterRoutes(api, employee.NewHandler(r.Employees))
	department.RegisterRoutes(api, department.NewHandler(r.Departments))
	position.RegisterRoutes(api, position.NewHandler(r.Positions))
	payroll.RegisterRoutes(api, payroll.NewHandler(r.Payrolls))
	payrollimport.RegisterRoutes(api, payrollimport.NewHandler(r.Imports))
	payrollcalc.RegisterRoutes(api, payrollcalc.NewHandler(r.Calculator))
}

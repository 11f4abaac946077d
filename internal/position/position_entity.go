package position

import (
	"time"

	"github.com/google/uuid"
)

type Position struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_position_name"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Position) TableName() string {
	return "positions"
}

type JobRank struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(60);not null;uniqueIndex:uq_job_rank_name"`
	Level     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (JobRank) TableName() string {
	return "job_ranks"
}

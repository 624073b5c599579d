package model

import (
	"time"

	"github.com/google/uuid"
)

type Exercise struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	Easy      int       `gorm:"not null;default:0"`
	Medium    int       `gorm:"not null;default:0"`
	Hard      int       `gorm:"not null;default:0"`
	Random    float64   `gorm:"type:double precision;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt stays NULL until the first patch.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (Exercise) TableName() string {
	return "exercises"
}

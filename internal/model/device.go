package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device is a registered soil-sensor unit. Areas and measurements always
// reference the device that produced them.
type Device struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	OwnerUsername string    `gorm:"type:varchar(128);not null;index" json:"owner_username"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Device) TableName() string {
	return "devices"
}

func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

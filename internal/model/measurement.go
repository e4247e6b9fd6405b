package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Measurement is one sensor capture bound to an area. Records are immutable
// after insertion. SequenceInArea is 1-based and strictly increasing within
// the owning area.
type Measurement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	AreaID         string    `gorm:"type:varchar(160);not null;index" json:"area_id"`
	DeviceID       uuid.UUID `gorm:"type:uuid;not null;index" json:"device_id"`
	Latitude       float64   `gorm:"not null" json:"latitude"`
	Longitude      float64   `gorm:"not null" json:"longitude"`
	SequenceInArea int       `gorm:"not null" json:"sequence_in_area"`
	Readings       Channels  `gorm:"embedded" json:"readings"`
	LocationLabel  string    `gorm:"type:varchar(255)" json:"location_label"`
	CapturedAt     time.Time `gorm:"not null;index" json:"captured_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Measurement) TableName() string {
	return "measurements"
}

func (m *Measurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

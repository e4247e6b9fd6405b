package model

import (
	"time"

	"github.com/google/uuid"
)

// Area is a user-drawn measurement zone. The ID is built from owner, device
// and creation time, so it stays stable across backends. The polygon is
// immutable once the area is created; aggregate fields are rewritten by the
// aggregation engine on every accepted measurement.
type Area struct {
	ID            string    `gorm:"type:varchar(160);primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	OwnerUsername string    `gorm:"type:varchar(128);not null;index" json:"owner_username"`
	DeviceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"device_id"`
	Polygon       PointList `gorm:"type:jsonb;not null" json:"polygon"`

	SampleCount    int      `gorm:"not null;default:0" json:"sample_count"`
	AvgTemperature *float64 `json:"avg_temperature"`
	AvgMoisture    *float64 `json:"avg_moisture"`
	AvgNitrogen    *float64 `json:"avg_nitrogen"`
	AvgPhosphorus  *float64 `json:"avg_phosphorus"`
	AvgPotassium   *float64 `json:"avg_potassium"`
	AvgPH          *float64 `gorm:"column:avg_ph" json:"avg_ph"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Area) TableName() string {
	return "areas"
}

// Confirmed reports whether the area has a complete boundary and may accept
// measurements. Areas with fewer than 3 vertices are drafts.
func (a *Area) Confirmed() bool {
	return len(a.Polygon) >= 3
}

// Averages returns the current running averages, or nil when no measurement
// has been recorded yet.
func (a *Area) Averages() *Channels {
	if a.SampleCount == 0 || a.AvgTemperature == nil {
		return nil
	}
	return &Channels{
		Temperature: *a.AvgTemperature,
		Moisture:    *a.AvgMoisture,
		Nitrogen:    *a.AvgNitrogen,
		Phosphorus:  *a.AvgPhosphorus,
		Potassium:   *a.AvgPotassium,
		PH:          *a.AvgPH,
	}
}

// SetAverages overwrites the aggregate fields with a freshly recomputed set.
func (a *Area) SetAverages(avg Channels, sampleCount int) {
	a.SampleCount = sampleCount
	a.AvgTemperature = &avg.Temperature
	a.AvgMoisture = &avg.Moisture
	a.AvgNitrogen = &avg.Nitrogen
	a.AvgPhosphorus = &avg.Phosphorus
	a.AvgPotassium = &avg.Potassium
	a.AvgPH = &avg.PH
}

// ClearAverages resets the aggregate fields to the no-samples state.
func (a *Area) ClearAverages() {
	a.SampleCount = 0
	a.AvgTemperature = nil
	a.AvgMoisture = nil
	a.AvgNitrogen = nil
	a.AvgPhosphorus = nil
	a.AvgPotassium = nil
	a.AvgPH = nil
}

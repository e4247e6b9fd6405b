package model

// Channels holds the six tracked soil/environment readings. The same shape is
// used for a single capture and for per-area running averages.
type Channels struct {
	Temperature float64 `json:"temperature"`
	Moisture    float64 `json:"moisture"`
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	PH          float64 `gorm:"column:ph" json:"ph"`
}

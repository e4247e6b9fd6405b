package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"field-service/internal/spatial"
)

// PointList is an ordered polygon ring stored as a jsonb column.
// The first vertex is not repeated; geometric checks treat the ring as closed.
type PointList []spatial.Point

func (PointList) GormDataType() string {
	return "jsonb"
}

func (p PointList) Value() (driver.Value, error) {
	if p == nil {
		p = PointList{}
	}
	return json.Marshal(p)
}

func (p *PointList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported polygon column type %T", value)
	}
}

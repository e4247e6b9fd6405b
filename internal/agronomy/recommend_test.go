package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"field-service/internal/model"
)

func inRange() model.Channels {
	return model.Channels{
		Temperature: 25,
		Moisture:    30,
		Nitrogen:    30,
		Phosphorus:  20,
		Potassium:   150,
		PH:          6.5,
	}
}

func TestRecommend_AllInRange(t *testing.T) {
	rec := Recommend(inRange())

	assert.Equal(t, []string{"conditions are suitable for general cultivation"}, rec.SoilAdvice)
	assert.Empty(t, rec.Fertilizers)
	assert.Equal(t, cropsNeutral, rec.Crops)
}

func TestRecommend_AllMacrosLow(t *testing.T) {
	avg := inRange()
	avg.Nitrogen = 10
	avg.Phosphorus = 10
	avg.Potassium = 50

	rec := Recommend(avg)

	assert.Contains(t, rec.SoilAdvice, "all macro-nutrients are deficient: apply a balanced N-P-K compound fertilizer")

	var names []string
	for _, f := range rec.Fertilizers {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "urea")
	assert.Contains(t, names, "superphosphate")
	assert.Contains(t, names, "potassium chloride")
	assert.Contains(t, names, "balanced N-P-K compound (15-15-15)")
}

func TestRecommend_HighPH(t *testing.T) {
	avg := inRange()
	avg.PH = 8.0

	rec := Recommend(avg)

	assert.Contains(t, rec.SoilAdvice, "soil is alkaline: apply elemental sulfur")
	assert.NotContains(t, rec.SoilAdvice, "soil is acidic: apply agricultural lime")
	assert.Equal(t, cropsAlkaline, rec.Crops)
}

func TestRecommend_LowPH(t *testing.T) {
	avg := inRange()
	avg.PH = 5.0

	rec := Recommend(avg)

	var names []string
	for _, f := range rec.Fertilizers {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "agricultural lime")
	assert.Equal(t, cropsAcidic, rec.Crops)
}

func TestRecommend_CropsDeduplicated(t *testing.T) {
	avg := inRange()
	avg.Moisture = 60 // wet pool shares "rice" with the neutral pH pool

	rec := Recommend(avg)

	seen := make(map[string]int)
	for _, crop := range rec.Crops {
		seen[crop]++
	}
	assert.Equal(t, 1, seen["rice"])
	assert.Contains(t, rec.Crops, "taro")
	assert.Contains(t, rec.SoilAdvice, "moisture is high: improve drainage")
}

func TestRecommend_TemperatureExtremes(t *testing.T) {
	hot := inRange()
	hot.Temperature = 35
	rec := Recommend(hot)
	assert.Contains(t, rec.SoilAdvice, "temperature is high: prefer heat-tolerant crops")
	assert.Contains(t, rec.Crops, "cassava")

	cold := inRange()
	cold.Temperature = 10
	rec = Recommend(cold)
	assert.Contains(t, rec.SoilAdvice, "temperature is low: prefer cold-tolerant crops")
	assert.Contains(t, rec.Crops, "cabbage")
}

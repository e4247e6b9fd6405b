// Package agronomy maps per-area soil averages to amendment and crop
// suggestions through a fixed threshold table.
package agronomy

import "field-service/internal/model"

// Threshold bounds per channel. Values between the bounds trigger no advice.
const (
	PHLow  = 5.5
	PHHigh = 7.5

	NitrogenLow  = 20.0
	NitrogenHigh = 40.0

	PhosphorusLow  = 15.0
	PhosphorusHigh = 30.0

	PotassiumLow  = 100.0
	PotassiumHigh = 200.0

	MoistureLow  = 20.0
	MoistureHigh = 50.0

	TemperatureLow  = 15.0
	TemperatureHigh = 30.0
)

// FertilizerSuggestion is one concrete amendment with dosage guidance.
type FertilizerSuggestion struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

// Recommendation is the full advice set derived from an area's averages.
type Recommendation struct {
	SoilAdvice  []string               `json:"soil_advice"`
	Fertilizers []FertilizerSuggestion `json:"fertilizers"`
	Crops       []string               `json:"crops"`
}

var (
	cropsAcidic   = []string{"potato", "sweet potato", "blueberry", "tea"}
	cropsNeutral  = []string{"rice", "maize", "wheat", "soybean", "leafy vegetables"}
	cropsAlkaline = []string{"barley", "cotton", "sugar beet", "alfalfa"}

	cropsWet  = []string{"rice", "taro", "water spinach"}
	cropsDry  = []string{"millet", "sorghum", "peanut"}
	cropsHot  = []string{"cassava", "okra", "chili pepper"}
	cropsCold = []string{"cabbage", "spinach", "broad bean"}
)

// Recommend is a pure function of the six channel averages. Both SoilAdvice
// and Crops are always non-empty.
func Recommend(avg model.Channels) Recommendation {
	var rec Recommendation

	switch {
	case avg.PH < PHLow:
		rec.SoilAdvice = append(rec.SoilAdvice, "soil is acidic: apply agricultural lime")
		rec.Fertilizers = append(rec.Fertilizers, FertilizerSuggestion{
			Name:   "agricultural lime",
			Dosage: "1-2 t per hectare",
		})
	case avg.PH > PHHigh:
		rec.SoilAdvice = append(rec.SoilAdvice, "soil is alkaline: apply elemental sulfur")
		rec.Fertilizers = append(rec.Fertilizers, FertilizerSuggestion{
			Name:   "elemental sulfur",
			Dosage: "50-100 kg per hectare",
		})
	}

	switch {
	case avg.Nitrogen < NitrogenLow:
		rec.SoilAdvice = append(rec.SoilAdvice, "nitrogen is low: apply a urea-type fertilizer")
		rec.Fertilizers = append(rec.Fertilizers, FertilizerSuggestion{
			Name:   "urea",
			Dosage: "follow label rate for measured deficit",
		})
	case avg.Nitrogen > NitrogenHigh:
		rec.SoilAdvice = append(rec.SoilAdvice, "nitrogen is high: reduce nitrogen fertilizer use")
	}

	switch {
	case avg.Phosphorus < PhosphorusLow:
		rec.SoilAdvice = append(rec.SoilAdvice, "phosphorus is low: apply a phosphate fertilizer")
		rec.Fertilizers = append(rec.Fertilizers, FertilizerSuggestion{
			Name:   "superphosphate",
			Dosage: "follow label rate for measured deficit",
		})
	case avg.Phosphorus > PhosphorusHigh:
		rec.SoilAdvice = append(rec.SoilAdvice, "phosphorus is high: reduce phosphate use")
	}

	switch {
	case avg.Potassium < PotassiumLow:
		rec.SoilAdvice = append(rec.SoilAdvice, "potassium is low: apply potassium chloride")
		rec.Fertilizers = append(rec.Fertilizers, FertilizerSuggestion{
			Name:   "potassium chloride",
			Dosage: "follow label rate for measured deficit",
		})
	case avg.Potassium > PotassiumHigh:
		rec.SoilAdvice = append(rec.SoilAdvice, "potassium is high: reduce potassium use")
	}

	if avg.Nitrogen < NitrogenLow && avg.Phosphorus < PhosphorusLow && avg.Potassium < PotassiumLow {
		rec.SoilAdvice = append(rec.SoilAdvice, "all macro-nutrients are deficient: apply a balanced N-P-K compound fertilizer")
		rec.Fertilizers = append(rec.Fertilizers, FertilizerSuggestion{
			Name:   "balanced N-P-K compound (15-15-15)",
			Dosage: "base application before planting",
		})
	}

	switch {
	case avg.Moisture < MoistureLow:
		rec.SoilAdvice = append(rec.SoilAdvice, "moisture is low: increase irrigation or add organic matter")
	case avg.Moisture > MoistureHigh:
		rec.SoilAdvice = append(rec.SoilAdvice, "moisture is high: improve drainage")
	}

	switch {
	case avg.Temperature < TemperatureLow:
		rec.SoilAdvice = append(rec.SoilAdvice, "temperature is low: prefer cold-tolerant crops")
	case avg.Temperature > TemperatureHigh:
		rec.SoilAdvice = append(rec.SoilAdvice, "temperature is high: prefer heat-tolerant crops")
	}

	if len(rec.SoilAdvice) == 0 {
		rec.SoilAdvice = []string{"conditions are suitable for general cultivation"}
	}

	rec.Crops = suggestCrops(avg)

	return rec
}

// suggestCrops builds a deduplicated union of the pH-band crop list and the
// additive moisture/temperature extreme lists.
func suggestCrops(avg model.Channels) []string {
	var pools [][]string

	switch {
	case avg.PH < PHLow:
		pools = append(pools, cropsAcidic)
	case avg.PH > PHHigh:
		pools = append(pools, cropsAlkaline)
	default:
		pools = append(pools, cropsNeutral)
	}

	switch {
	case avg.Moisture > MoistureHigh:
		pools = append(pools, cropsWet)
	case avg.Moisture < MoistureLow:
		pools = append(pools, cropsDry)
	}

	switch {
	case avg.Temperature > TemperatureHigh:
		pools = append(pools, cropsHot)
	case avg.Temperature < TemperatureLow:
		pools = append(pools, cropsCold)
	}

	seen := make(map[string]bool)
	var crops []string
	for _, pool := range pools {
		for _, crop := range pool {
			if !seen[crop] {
				seen[crop] = true
				crops = append(crops, crop)
			}
		}
	}

	if len(crops) == 0 {
		crops = []string{"no specific crop recommended"}
	}

	return crops
}

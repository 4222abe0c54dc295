package rating

import (
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
)

// estimateBase is the starting annual premium for a generic,
// non-binding estimate.
const estimateBase = 500.0

// riskCategory pairs a set of model keywords with a multiplier. The
// first matching category wins, so order is significant.
type riskCategory struct {
	keywords   []string
	multiplier float64
}

var riskCategories = []riskCategory{
	{keywords: []string{"sport", "luxury", "convertible"}, multiplier: 1.5},
	{keywords: []string{"suv", "truck"}, multiplier: 1.2},
	{keywords: []string{"sedan", "hatchback"}, multiplier: 1.0},
}

// EstimateResult holds the output of a generic estimate. Unlike the
// vehicle-based premium the estimate is intentionally not rounded to a
// multiple of 5: it is presented as a non-binding figure.
type EstimateResult struct {
	ModelDescription string  `json:"modelDescription"`
	DriverAge        int     `json:"driverAge"`
	RiskMultiplier   float64 `json:"riskMultiplier"`
	AgeMultiplier    float64 `json:"ageMultiplier"`
	Premium          float64 `json:"premium"`
}

// Estimate computes a generic annual premium from a free-form model
// description and the driver's age, without any vehicle record.
func Estimate(modelDescription string, driverAge int) (EstimateResult, error) {
	if strings.TrimSpace(modelDescription) == "" {
		return EstimateResult{}, domain.InvalidInputf("model description is required")
	}
	if driverAge < 0 {
		return EstimateResult{}, domain.InvalidInputf("driver age must be non-negative, got %d", driverAge)
	}

	res := EstimateResult{
		ModelDescription: modelDescription,
		DriverAge:        driverAge,
		RiskMultiplier:   1.0,
	}

	lower := strings.ToLower(modelDescription)
	for _, cat := range riskCategories {
		if containsAny(lower, cat.keywords) {
			res.RiskMultiplier = cat.multiplier
			break
		}
	}

	switch {
	case driverAge >= 18 && driverAge < 25:
		res.AgeMultiplier = 1.8
	case driverAge >= 25 && driverAge < 30:
		res.AgeMultiplier = 1.4
	case driverAge >= 30 && driverAge < 65:
		res.AgeMultiplier = 1.0
	default:
		res.AgeMultiplier = 1.2
	}

	res.Premium = estimateBase * res.RiskMultiplier * res.AgeMultiplier
	return res, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

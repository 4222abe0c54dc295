// Package rating implements the premium rating engine: a pure,
// deterministic pricing function combining vehicle value, age and
// mileage into an annual premium.
package rating

import (
	"math"

	"github.com/safedrive/safedrive/internal/domain"
)

const (
	// referenceVehicleValue is the vehicle value that yields a value
	// factor of exactly 1.0.
	referenceVehicleValue = 15000.0

	// milesToKm is the fixed odometer conversion multiplier applied to
	// the stored mileage field.
	milesToKm = 1.60934

	minAgeFactor = 0.9
	maxAgeFactor = 1.6

	minMileageFactor = 0.9
	maxMileageFactor = 1.3
)

// PremiumInput holds the inputs of a single premium calculation. The
// reference year is always explicit so the engine stays correct across
// calendar years and repeated calls are bit-identical.
type PremiumInput struct {
	BasePrice       float64
	VehicleValue    float64
	ManufactureYear int
	OdometerKm      int
	ReferenceYear   int
}

// Breakdown itemizes every intermediate value of the calculation. The
// dispatcher surfaces these factors verbatim in quote explanations.
type Breakdown struct {
	ValueFactor   float64 `json:"valueFactor"`
	AgeFactor     float64 `json:"ageFactor"`
	MileageFactor float64 `json:"mileageFactor"`
	VehicleAge    int     `json:"vehicleAge"`
	AvgAnnualKm   float64 `json:"avgAnnualKm"`
	Raw           float64 `json:"raw"`
	Premium       float64 `json:"premium"`
}

// Premium computes the annual premium for a vehicle and product base
// price. Negative or zero base price or vehicle value is a caller
// contract violation.
//
// The result is always a positive multiple of 5 for valid inputs.
func Premium(in PremiumInput) (Breakdown, error) {
	if in.BasePrice <= 0 {
		return Breakdown{}, domain.InvalidInputf("base price must be positive, got %v", in.BasePrice)
	}
	if in.VehicleValue <= 0 {
		return Breakdown{}, domain.InvalidInputf("vehicle value must be positive, got %v", in.VehicleValue)
	}
	if in.OdometerKm < 0 {
		return Breakdown{}, domain.InvalidInputf("odometer must be non-negative, got %d", in.OdometerKm)
	}

	b := Breakdown{}

	// Value factor: unbounded, linear against the reference value.
	b.ValueFactor = in.VehicleValue / referenceVehicleValue

	// Age factor: newer vehicles get a discount, vehicles past eight
	// years accrue 6% per year, clamped to [0.9, 1.6]. Age may be zero
	// or negative for current/future model years.
	b.VehicleAge = in.ReferenceYear - in.ManufactureYear
	switch {
	case b.VehicleAge <= 3:
		b.AgeFactor = 0.9
	case b.VehicleAge <= 8:
		b.AgeFactor = 1.0
	default:
		b.AgeFactor = 1.0 + float64(b.VehicleAge-8)*0.06
	}
	b.AgeFactor = clamp(b.AgeFactor, minAgeFactor, maxAgeFactor)

	// Mileage factor from average annual distance. The stored mileage
	// runs through the fixed mile-to-km multiplier before averaging;
	// zero or negative age falls back to the converted total.
	kilometers := float64(in.OdometerKm) * milesToKm
	if b.VehicleAge > 0 {
		b.AvgAnnualKm = kilometers / float64(b.VehicleAge)
	} else {
		b.AvgAnnualKm = kilometers
	}
	switch {
	case b.AvgAnnualKm < 15000:
		b.MileageFactor = 0.9
	case b.AvgAnnualKm < 25000:
		b.MileageFactor = 1.0
	default:
		b.MileageFactor = 1.0 + ((b.AvgAnnualKm-25000)/10000)*0.1
	}
	b.MileageFactor = clamp(b.MileageFactor, minMileageFactor, maxMileageFactor)

	// Final premium rounds up to the next multiple of 5 euros.
	b.Raw = in.BasePrice * b.ValueFactor * b.AgeFactor * b.MileageFactor
	b.Premium = math.Ceil(b.Raw/5) * 5

	return b, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Package domain defines the core entities of the SafeDrive insurance
// system and the failure taxonomy shared by every component.
package domain

import "strings"

// Coverage tiers for insurance products. The set is open: unknown tiers
// coming from the database are carried through as-is.
const (
	CoverageBasic    = "basic"
	CoverageStandard = "standard"
	CoveragePremium  = "premium"
	CoverageElite    = "elite"
)

// Quote statuses. A quote is created as pending and only its status may
// change afterwards.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User is a registered customer. Username and email are unique.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	CreatedAt    string `json:"createdAt"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Vehicle is a car owned by exactly one user. Value is in euros,
// Mileage is the odometer reading as stored (the rating engine applies
// the fixed km conversion).
type Vehicle struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"licensePlate"`
	Value        float64 `json:"value"`
	Mileage      int     `json:"mileage"`
	CreatedAt    string  `json:"createdAt"`
}

// Product is an insurance product with a base annual price.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	CoverageType string  `json:"coverageType"`
	BasePrice    float64 `json:"basePrice"`
	Features     string  `json:"features"`
}

// FeatureList splits the comma-delimited features column into an
// ordered slice. Empty features yield an empty slice.
func (p Product) FeatureList() []string {
	if strings.TrimSpace(p.Features) == "" {
		return nil
	}
	parts := strings.Split(p.Features, ",")
	features := make([]string, 0, len(parts))
	for _, part := range parts {
		if f := strings.TrimSpace(part); f != "" {
			features = append(features, f)
		}
	}
	return features
}

// Quote is a saved premium for a (user, vehicle, product) triple.
// Externally a quote id doubles as the policy number.
type Quote struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	VehicleID int64   `json:"vehicleId"`
	ProductID int64   `json:"productId"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// UserQuote is the read model for a user's quote joined with its
// vehicle and product.
type UserQuote struct {
	Quote
	VehicleMake  string `json:"vehicleMake"`
	VehicleModel string `json:"vehicleModel"`
	VehicleYear  int    `json:"vehicleYear"`
	ProductName  string `json:"productName"`
	CoverageType string `json:"coverageType"`
}

// RecentQuote is the cross-user read model joined with the owning
// username as well.
type RecentQuote struct {
	UserQuote
	Username string `json:"username"`
}

// VehicleFilter holds the optional criteria for a vehicle search.
// LicensePlate, when set, is exclusive; the remaining filters are
// AND-combined.
type VehicleFilter struct {
	LicensePlate string
	Make         string
	Model        string
	MaxMileage   *int
	MinValue     *float64
}

// Empty reports whether no criterion is set.
func (f VehicleFilter) Empty() bool {
	return f.LicensePlate == "" && f.Make == "" && f.Model == "" &&
		f.MaxMileage == nil && f.MinValue == nil
}

// UserFilter holds the optional criteria for a user-details search.
type UserFilter struct {
	LicensePlate string
	FirstName    string
	LastName     string
}

// Empty reports whether no criterion is set.
func (f UserFilter) Empty() bool {
	return f.LicensePlate == "" && f.FirstName == "" && f.LastName == ""
}

package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
)

// vehicleList is the structured result of user_vehicles.
type vehicleList struct {
	Vehicles []domain.Vehicle
}

func (d *Dispatcher) userVehicles(ctx context.Context, args Args) (record, error) {
	userID, err := requiredID(args, "userId")
	if err != nil {
		return nil, err
	}

	vehicles, err := d.store.ListVehiclesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return vehicleList{Vehicles: vehicles}, nil
}

func (r vehicleList) render() string {
	if len(r.Vehicles) == 0 {
		return "No vehicles found for this user."
	}

	var b strings.Builder
	b.WriteString("User's Vehicles:")
	for _, v := range r.Vehicles {
		fmt.Fprintf(&b, "\n\n  Vehicle ID %d: %d %s %s", v.ID, v.Year, v.Make, v.Model)
		fmt.Fprintf(&b, "\n    License Plate: %s", v.LicensePlate)
		fmt.Fprintf(&b, "\n    Value: €%g", v.Value)
		fmt.Fprintf(&b, "\n    Mileage: %d km", v.Mileage)
		fmt.Fprintf(&b, "\n    Added: %s", dateOnly(v.CreatedAt))
	}
	return b.String()
}

// vehicleMatches is the structured result of search_vehicles. An empty
// match renders as a distinct message rather than an error.
type vehicleMatches struct {
	Vehicles []domain.Vehicle
}

func (d *Dispatcher) searchVehicles(ctx context.Context, args Args) (record, error) {
	filter := domain.VehicleFilter{
		LicensePlate: stringArg(args, "licensePlate"),
		Make:         stringArg(args, "make"),
		Model:        stringArg(args, "model"),
	}

	if mileage, ok, err := intArg(args, "maxMileage"); err != nil {
		return nil, err
	} else if ok {
		m := int(mileage)
		filter.MaxMileage = &m
	}
	if value, ok, err := floatArg(args, "minValue"); err != nil {
		return nil, err
	} else if ok {
		filter.MinValue = &value
	}

	if filter.Empty() {
		return nil, domain.InvalidInputf("provide at least one search criterion: licensePlate, make, model, maxMileage, or minValue")
	}

	vehicles, err := d.store.SearchVehicles(ctx, filter)
	if err != nil {
		return nil, err
	}
	return vehicleMatches{Vehicles: vehicles}, nil
}

func (r vehicleMatches) render() string {
	if len(r.Vehicles) == 0 {
		return "No vehicles found matching the specified criteria."
	}

	var b strings.Builder
	b.WriteString("Found Vehicles:")
	for _, v := range r.Vehicles {
		fmt.Fprintf(&b, "\n\n  Vehicle ID %d: %d %s %s", v.ID, v.Year, v.Make, v.Model)
		fmt.Fprintf(&b, "\n    License Plate: %s", v.LicensePlate)
		fmt.Fprintf(&b, "\n    Value: €%g", v.Value)
		fmt.Fprintf(&b, "\n    Mileage: %d km", v.Mileage)
		fmt.Fprintf(&b, "\n    Owner User ID: %d", v.UserID)
		fmt.Fprintf(&b, "\n    Added: %s", dateOnly(v.CreatedAt))
	}
	return b.String()
}

package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
)

// policyRecord is the structured result of policy_details: a saved
// quote resolved against its owner, vehicle and product.
type policyRecord struct {
	Quote   domain.Quote
	User    domain.User
	Vehicle domain.Vehicle
	Product domain.Product
}

func (d *Dispatcher) policyDetails(ctx context.Context, args Args) (record, error) {
	// A policy number is the quote id presented externally.
	policyNumber, err := requiredID(args, "policyNumber")
	if err != nil {
		return nil, err
	}

	q, err := d.store.GetQuote(ctx, policyNumber)
	if err != nil {
		return nil, err
	}

	user, err := d.store.GetUser(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	vehicle, err := d.store.GetVehicle(ctx, q.VehicleID)
	if err != nil {
		return nil, err
	}
	product, err := d.store.GetProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	return policyRecord{Quote: q, User: user, Vehicle: vehicle, Product: product}, nil
}

func (r policyRecord) render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Policy Details for Policy #%d:", r.Quote.ID)
	fmt.Fprintf(&b, "\n  Status: %s", capitalize(r.Quote.Status))
	fmt.Fprintf(&b, "\n  Created on: %s", dateOnly(r.Quote.CreatedAt))

	b.WriteString("\n\nPolicy Owner Details:")
	fmt.Fprintf(&b, "\n  Name: %s", r.User.FullName())
	fmt.Fprintf(&b, "\n  Username: %s", r.User.Username)
	fmt.Fprintf(&b, "\n  Email: %s", r.User.Email)
	fmt.Fprintf(&b, "\n  Phone: %s", r.User.Phone)

	b.WriteString("\n\nVehicle Details:")
	fmt.Fprintf(&b, "\n  Make and Model: %d %s %s", r.Vehicle.Year, r.Vehicle.Make, r.Vehicle.Model)
	fmt.Fprintf(&b, "\n  License Plate: %s", r.Vehicle.LicensePlate)
	fmt.Fprintf(&b, "\n  Vehicle Value: €%g", r.Vehicle.Value)
	fmt.Fprintf(&b, "\n  Mileage: %d km", r.Vehicle.Mileage)

	b.WriteString("\n\nInsurance Product Details:")
	fmt.Fprintf(&b, "\n  Product Name: %s", r.Product.Name)
	fmt.Fprintf(&b, "\n  Coverage Type: %s", r.Product.CoverageType)
	fmt.Fprintf(&b, "\n  Annual Premium: €%g/year", r.Quote.Price)

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package quote orchestrates the rating engine across vehicles and
// products, and persists accepted quotes.
package quote

import (
	"context"
	"fmt"

	"github.com/safedrive/safedrive/internal/domain"
	"github.com/safedrive/safedrive/internal/rating"
	"github.com/safedrive/safedrive/internal/store"
)

// Calculator computes premiums by combining the rating engine with the
// data access layer. It is stateless; dependencies are injected at
// construction.
type Calculator struct {
	store *store.Store
}

// NewCalculator creates a Calculator over the given store.
func NewCalculator(st *store.Store) *Calculator {
	return &Calculator{store: st}
}

// ProductQuote pairs a product with a computed premium breakdown.
type ProductQuote struct {
	Product   domain.Product   `json:"product"`
	Breakdown rating.Breakdown `json:"breakdown"`
}

// SingleQuote is the fully resolved result of a one-off calculation.
type SingleQuote struct {
	Vehicle   domain.Vehicle   `json:"vehicle"`
	Product   domain.Product   `json:"product"`
	Breakdown rating.Breakdown `json:"breakdown"`
}

// QuoteAllProducts rates one vehicle against every given product,
// preserving the product order. An empty product list yields an empty
// result.
func (c *Calculator) QuoteAllProducts(vehicle domain.Vehicle, products []domain.Product, referenceYear int) ([]ProductQuote, error) {
	quotes := make([]ProductQuote, 0, len(products))
	for _, p := range products {
		b, err := rating.Premium(rating.PremiumInput{
			BasePrice:       p.BasePrice,
			VehicleValue:    vehicle.Value,
			ManufactureYear: vehicle.Year,
			OdometerKm:      vehicle.Mileage,
			ReferenceYear:   referenceYear,
		})
		if err != nil {
			return nil, fmt.Errorf("rate product %d: %w", p.ID, err)
		}
		quotes = append(quotes, ProductQuote{Product: p, Breakdown: b})
	}
	return quotes, nil
}

// QuoteOne resolves a vehicle and a product and computes the premium
// for the pair.
func (c *Calculator) QuoteOne(ctx context.Context, vehicleID, productID int64, referenceYear int) (SingleQuote, error) {
	vehicle, err := c.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return SingleQuote{}, err
	}
	product, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		return SingleQuote{}, err
	}

	b, err := rating.Premium(rating.PremiumInput{
		BasePrice:       product.BasePrice,
		VehicleValue:    vehicle.Value,
		ManufactureYear: vehicle.Year,
		OdometerKm:      vehicle.Mileage,
		ReferenceYear:   referenceYear,
	})
	if err != nil {
		return SingleQuote{}, err
	}

	return SingleQuote{Vehicle: vehicle, Product: product, Breakdown: b}, nil
}

// SaveQuote validates ownership and price, then persists the quote
// with pending status.
//
// The vehicle must belong to userID, the product must exist, and the
// caller-supplied price must equal the server-side premium for the
// pair: a stale or tampered price is rejected rather than stored.
func (c *Calculator) SaveQuote(ctx context.Context, userID, vehicleID, productID int64, price float64, referenceYear int) (domain.Quote, error) {
	vehicle, err := c.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return domain.Quote{}, err
	}
	if vehicle.UserID != userID {
		return domain.Quote{}, domain.Forbiddenf("vehicle %d does not belong to user %d", vehicleID, userID)
	}

	product, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		return domain.Quote{}, err
	}

	b, err := rating.Premium(rating.PremiumInput{
		BasePrice:       product.BasePrice,
		VehicleValue:    vehicle.Value,
		ManufactureYear: vehicle.Year,
		OdometerKm:      vehicle.Mileage,
		ReferenceYear:   referenceYear,
	})
	if err != nil {
		return domain.Quote{}, err
	}
	if price != b.Premium {
		return domain.Quote{}, domain.InvalidInputf("price %v does not match the computed premium %v", price, b.Premium)
	}

	return c.store.InsertQuote(ctx, domain.Quote{
		UserID:    userID,
		VehicleID: vehicleID,
		ProductID: productID,
		Price:     price,
		Status:    domain.StatusPending,
	})
}

// Estimate produces a generic, non-binding premium estimate from a
// model description and driver age.
func (c *Calculator) Estimate(modelDescription string, driverAge int) (rating.EstimateResult, error) {
	return rating.Estimate(modelDescription, driverAge)
}

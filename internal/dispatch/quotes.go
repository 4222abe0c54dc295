package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
	"github.com/safedrive/safedrive/internal/quote"
	"github.com/safedrive/safedrive/internal/rating"
)

// quoteList is the structured result of user_quotes.
type quoteList struct {
	Quotes []domain.UserQuote
}

func (d *Dispatcher) userQuotes(ctx context.Context, args Args) (record, error) {
	userID, err := requiredID(args, "userId")
	if err != nil {
		return nil, err
	}

	quotes, err := d.store.ListQuotesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return quoteList{Quotes: quotes}, nil
}

func (r quoteList) render() string {
	if len(r.Quotes) == 0 {
		return "No quotes found for this user."
	}

	var b strings.Builder
	b.WriteString("User's Insurance Quotes:")
	for _, q := range r.Quotes {
		fmt.Fprintf(&b, "\n\n  Quote ID %d: %d %s %s", q.ID, q.VehicleYear, q.VehicleMake, q.VehicleModel)
		fmt.Fprintf(&b, "\n    Product: %s (%s)", q.ProductName, q.CoverageType)
		fmt.Fprintf(&b, "\n    Price: €%g/year", q.Price)
		fmt.Fprintf(&b, "\n    Status: %s", q.Status)
		fmt.Fprintf(&b, "\n    Created: %s", dateTime(q.CreatedAt))
	}
	return b.String()
}

// recentQuoteList is the structured result of recent_quotes.
type recentQuoteList struct {
	Limit  int
	Quotes []domain.RecentQuote
}

func (d *Dispatcher) recentQuotes(ctx context.Context, args Args) (record, error) {
	limit := defaultRecentLimit
	if n, ok, err := intArg(args, "limit"); err != nil {
		return nil, err
	} else if ok {
		if n <= 0 {
			return nil, domain.InvalidInputf("limit must be positive, got %d", n)
		}
		limit = int(n)
	}

	quotes, err := d.store.ListRecentQuotes(ctx, limit)
	if err != nil {
		return nil, err
	}
	return recentQuoteList{Limit: limit, Quotes: quotes}, nil
}

func (r recentQuoteList) render() string {
	if len(r.Quotes) == 0 {
		return "No recent quotes found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent %d Insurance Quotes:", r.Limit)
	for _, q := range r.Quotes {
		fmt.Fprintf(&b, "\n\n  %s: %d %s %s", q.Username, q.VehicleYear, q.VehicleMake, q.VehicleModel)
		fmt.Fprintf(&b, "\n    Product: %s - €%g/year", q.ProductName, q.Price)
		fmt.Fprintf(&b, "\n    Date: %s", dateTime(q.CreatedAt))
	}
	return b.String()
}

// quoteBreakdown is the structured result of calculate_quote: the
// itemized factors behind a single premium.
type quoteBreakdown struct {
	Quote quote.SingleQuote
}

func (d *Dispatcher) calculateQuote(ctx context.Context, args Args) (record, error) {
	vehicleID, err := requiredID(args, "vehicleId")
	if err != nil {
		return nil, err
	}
	productID, err := requiredID(args, "productId")
	if err != nil {
		return nil, err
	}

	q, err := d.calc.QuoteOne(ctx, vehicleID, productID, d.referenceYear)
	if err != nil {
		return nil, err
	}
	return quoteBreakdown{Quote: q}, nil
}

func (r quoteBreakdown) render() string {
	v := r.Quote.Vehicle
	p := r.Quote.Product
	b := r.Quote.Breakdown

	var sb strings.Builder
	fmt.Fprintf(&sb, "Quote Calculation for %d %s %s:", v.Year, v.Make, v.Model)
	fmt.Fprintf(&sb, "\n  Product: %s (%s)", p.Name, p.CoverageType)
	fmt.Fprintf(&sb, "\n  Base Price: €%g", p.BasePrice)
	fmt.Fprintf(&sb, "\n  Value Factor: %.2f (vehicle value: €%g)", b.ValueFactor, v.Value)
	fmt.Fprintf(&sb, "\n  Age Factor: %.2f (vehicle age: %d years)", b.AgeFactor, b.VehicleAge)
	fmt.Fprintf(&sb, "\n  Mileage Factor: %.2f (avg: %.0f km/year)", b.MileageFactor, b.AvgAnnualKm)
	fmt.Fprintf(&sb, "\n  Final Price: €%g/year", b.Premium)
	return sb.String()
}

// estimateRecord is the structured result of general_quote.
type estimateRecord struct {
	Estimate rating.EstimateResult
}

func (d *Dispatcher) generalQuote(args Args) (record, error) {
	model := stringArg(args, "modelDescription")
	if model == "" {
		return nil, domain.InvalidInputf("modelDescription is required")
	}

	age, ok, err := intArg(args, "driverAge")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.InvalidInputf("driverAge is required")
	}

	est, err := d.calc.Estimate(model, int(age))
	if err != nil {
		return nil, err
	}
	return estimateRecord{Estimate: est}, nil
}

func (r estimateRecord) render() string {
	e := r.Estimate
	var b strings.Builder
	b.WriteString("General Insurance Quote Estimate:")
	fmt.Fprintf(&b, "\n  Vehicle Model: %s", e.ModelDescription)
	fmt.Fprintf(&b, "\n  Driver Age: %d", e.DriverAge)
	fmt.Fprintf(&b, "\n  Estimated Annual Premium: €%.2f/year", e.Premium)
	b.WriteString("\n\nNote: This is a non-binding estimate. For a precise quote, please provide details about the specific vehicle.")
	return b.String()
}

// Package web exposes the quoting flow over HTTP as a small JSON API:
// the product catalog, a user's vehicles and quotes, premium options
// across the catalog for one vehicle, quote acceptance, and the
// rough estimate form.
package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/safedrive/safedrive/internal/domain"
	"github.com/safedrive/safedrive/internal/quote"
	"github.com/safedrive/safedrive/internal/store"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	store         *store.Store
	calc          *quote.Calculator
	referenceYear int
}

// NewServer creates a Server over the given store and calculator.
func NewServer(st *store.Store, calc *quote.Calculator, referenceYear int) *Server {
	return &Server{store: st, calc: calc, referenceYear: referenceYear}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/api/products", s.handleListProducts)
	r.Get("/api/users/{id}", s.handleGetUser)
	r.Get("/api/users/{id}/vehicles", s.handleUserVehicles)
	r.Get("/api/users/{id}/quotes", s.handleUserQuotes)
	r.Get("/api/vehicles/{id}/quotes", s.handleVehicleQuoteOptions)
	r.Post("/api/quotes", s.handleSaveQuote)
	r.Post("/api/estimate", s.handleEstimate)

	return r
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserVehicles(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	vehicles, err := s.store.ListVehiclesByUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (s *Server) handleUserQuotes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	quotes, err := s.store.ListQuotesByUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quotes": quotes})
}

// handleVehicleQuoteOptions prices one vehicle against every product
// in the catalog, the core of the "get a quote" flow.
func (s *Server) handleVehicleQuoteOptions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := s.store.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	options, err := s.calc.QuoteAllProducts(vehicle, products, s.referenceYear)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicle": vehicle,
		"options": options,
	})
}

type saveQuoteRequest struct {
	UserID    int64   `json:"userId"`
	VehicleID int64   `json:"vehicleId"`
	ProductID int64   `json:"productId"`
	Price     float64 `json:"price"`
}

func (s *Server) handleSaveQuote(w http.ResponseWriter, r *http.Request) {
	var req saveQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.InvalidInputf("invalid request body: %v", err))
		return
	}

	saved, err := s.calc.SaveQuote(r.Context(), req.UserID, req.VehicleID, req.ProductID, req.Price, s.referenceYear)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

type estimateRequest struct {
	ModelDescription string `json:"modelDescription"`
	DriverAge        int    `json:"driverAge"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.InvalidInputf("invalid request body: %v", err))
		return
	}

	est, err := s.calc.Estimate(req.ModelDescription, req.DriverAge)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInputf("invalid id %q", raw)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

// writeError maps domain error kinds onto HTTP status codes. Unknown
// errors become opaque 500s so storage details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		log.Printf("web: %v", err)
	}

	writeJSON(w, status, map[string]string{"error": message})
}

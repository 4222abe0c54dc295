// Package seed populates a fresh database with the demo dataset: the
// product catalog, two sample users with vehicles, and a handful of
// quotes in various states.
package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped bool
}

type productRow struct {
	name, description, coverageType string
	basePrice                       float64
	features                        string
}

type userRow struct {
	username, password, email, firstName, lastName, phone string
}

type vehicleRow struct {
	username, make, model string
	year                  int
	licensePlate          string
	value                 float64
	mileage               int
}

type quoteRow struct {
	username, licensePlate, productName string
	price                               float64
	status                              string
}

var products = []productRow{
	{"Third Party Only", "Basic legal minimum cover for driving on public roads.", "basic", 400,
		"Third party liability, Legal protection, 24/7 claims line"},
	{"Third Party, Fire & Theft", "Standard protection with coverage for fire damage and theft.", "standard", 700,
		"Third party liability, Legal protection, Fire damage, Theft cover"},
	{"Comprehensive", "Full protection for your vehicle and third parties.", "premium", 1100,
		"Fire damage, Theft cover, Own damage, Windscreen repair, Personal accident cover"},
	{"Prestige Cover", "Premium protection with maximum benefits and concierge claims.", "elite", 1600,
		"Own damage, Windscreen repair, Courtesy car, Breakdown assistance, No claims protection"},
}

var users = []userRow{
	{"johndoe", "password", "john.doe@example.com", "John", "Doe", "555-123-4567"},
	{"janedoe", "password", "jane.doe@example.com", "Jane", "Doe", "555-987-6543"},
}

var vehicles = []vehicleRow{
	{"johndoe", "Volkswagen", "Golf", 2018, "181-D-12345", 18000, 56000},
	{"johndoe", "Hyundai", "Tucson", 2020, "201-C-54321", 26500, 25000},
	{"janedoe", "Skoda", "Octavia", 2019, "192-KY-98765", 22000, 42000},
}

var quotes = []quoteRow{
	{"johndoe", "181-D-12345", "Third Party Only", 550, "pending"},
	{"johndoe", "181-D-12345", "Third Party, Fire & Theft", 880, "approved"},
	{"johndoe", "201-C-54321", "Comprehensive", 1350, "pending"},
	{"janedoe", "192-KY-98765", "Third Party, Fire & Theft", 920, "approved"},
	{"janedoe", "192-KY-98765", "Prestige Cover", 2100, "pending"},
}

// Run seeds the demo dataset in one transaction. A database that
// already has products is considered seeded and is left untouched.
func Run(db *sql.DB) (Stats, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return Stats{}, fmt.Errorf("check existing products: %w", err)
	}
	if count > 0 {
		return Stats{Skipped: true}, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	if err := insertAll(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return stats, nil
}

func insertAll(tx *sql.Tx, stats *Stats) error {
	for _, p := range products {
		_, err := tx.Exec(`
			INSERT INTO products (name, description, coverage_type, base_price, features)
			VALUES (?, ?, ?, ?, ?)`,
			p.name, p.description, p.coverageType, p.basePrice, p.features)
		if err != nil {
			return fmt.Errorf("insert product %q: %w", p.name, err)
		}
		stats.Inserts++
	}

	for _, u := range users {
		_, err := tx.Exec(`
			INSERT INTO users (username, password_hash, email, first_name, last_name, phone)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.username, hashPassword(u.password), u.email, u.firstName, u.lastName, u.phone)
		if err != nil {
			return fmt.Errorf("insert user %q: %w", u.username, err)
		}
		stats.Inserts++
	}

	for _, v := range vehicles {
		_, err := tx.Exec(`
			INSERT INTO vehicles (user_id, make, model, year, license_plate, value, mileage)
			VALUES ((SELECT id FROM users WHERE username = ?), ?, ?, ?, ?, ?, ?)`,
			v.username, v.make, v.model, v.year, v.licensePlate, v.value, v.mileage)
		if err != nil {
			return fmt.Errorf("insert vehicle %q: %w", v.licensePlate, err)
		}
		stats.Inserts++
	}

	for _, q := range quotes {
		_, err := tx.Exec(`
			INSERT INTO quotes (user_id, vehicle_id, product_id, price, status)
			VALUES (
				(SELECT id FROM users WHERE username = ?),
				(SELECT id FROM vehicles WHERE license_plate = ?),
				(SELECT id FROM products WHERE name = ?),
				?, ?)`,
			q.username, q.licensePlate, q.productName, q.price, q.status)
		if err != nil {
			return fmt.Errorf("insert quote for %q: %w", q.licensePlate, err)
		}
		stats.Inserts++
	}

	return nil
}

// hashPassword produces the stored hash for a demo password. The demo
// accounts are not meant for production use.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Package store provides the booking archive backends for AssistFlow.
//
// This file implements the PostgreSQL-backed archive.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/vhelp/assistflow/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants.
const (
	// DefaultMaxOpenConns is the maximum number of open connections to the database.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool.
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore archives bookings in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres booking archive from the provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("PostgresStore: failed to open connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("PostgresStore: ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("PostgresStore: failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgresStore: migrations applied")

	return &PostgresStore{db: db}, nil
}

// AddBooking inserts a booking record.
func (s *PostgresStore) AddBooking(b models.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO bookings (id, user_id, service_key, service_name, hours_per_week, business_type, budget, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.UserID, b.ServiceKey, b.ServiceName, b.HoursPerWeek, b.BusinessType, b.Budget, b.CreatedAt,
	)
	if err != nil {
		slog.Error("PostgresStore.AddBooking failed", "error", err, "userID", b.UserID)
		return fmt.Errorf("failed to insert booking for %s: %w", b.UserID, err)
	}
	slog.Debug("PostgresStore.AddBooking succeeded", "bookingID", b.ID, "userID", b.UserID)
	return nil
}

// ListBookings returns all archived bookings, most recent first.
func (s *PostgresStore) ListBookings() ([]models.Booking, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, service_key, service_name, hours_per_week, business_type, budget, created_at
		 FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListBookingsByUser returns the archived bookings for one user, most recent first.
func (s *PostgresStore) ListBookingsByUser(userID string) ([]models.Booking, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, service_key, service_name, hours_per_week, business_type, budget, created_at
		 FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for %s: %w", userID, err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

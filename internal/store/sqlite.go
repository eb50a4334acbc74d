// Package store provides the booking archive backends for AssistFlow.
//
// This file implements the SQLite-backed archive.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/vhelp/assistflow/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the permissions for created database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore archives bookings in a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite booking archive. The DSN is the path to the
// database file; its directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("SQLiteStore: failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("SQLiteStore: failed to open connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLiteStore: ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("SQLiteStore: failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLiteStore: migrations applied", "dsn", cfg.DSN)

	return &SQLiteStore{db: db}, nil
}

// AddBooking inserts a booking record.
func (s *SQLiteStore) AddBooking(b models.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO bookings (id, user_id, service_key, service_name, hours_per_week, business_type, budget, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.ServiceKey, b.ServiceName, b.HoursPerWeek, b.BusinessType, b.Budget, b.CreatedAt,
	)
	if err != nil {
		slog.Error("SQLiteStore.AddBooking failed", "error", err, "userID", b.UserID)
		return fmt.Errorf("failed to insert booking for %s: %w", b.UserID, err)
	}
	slog.Debug("SQLiteStore.AddBooking succeeded", "bookingID", b.ID, "userID", b.UserID)
	return nil
}

// ListBookings returns all archived bookings, most recent first.
func (s *SQLiteStore) ListBookings() ([]models.Booking, error) {
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
func (s *SQLiteStore) ListBookingsByUser(userID string) ([]models.Booking, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, service_key, service_name, hours_per_week, business_type, budget, created_at
		 FROM bookings WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for %s: %w", userID, err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanBookings drains a booking result set. Shared by both SQL backends.
func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.ServiceKey, &b.ServiceName,
			&b.HoursPerWeek, &b.BusinessType, &b.Budget, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

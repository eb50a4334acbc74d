// Package store provides the booking archive backends for AssistFlow.
//
// Completed bookings are written through a Store so operators can review them
// after the originating session expires. Conversation sessions themselves are
// never persisted; only the in-memory session manager holds those.
package store

import (
	"sync"

	"github.com/vhelp/assistflow/internal/models"
)

// Store is the booking archive interface implemented by the SQLite, Postgres,
// and in-memory backends.
type Store interface {
	AddBooking(b models.Booking) error
	ListBookings() ([]models.Booking, error)
	ListBookingsByUser(userID string) ([]models.Booking, error)
	Close() error
}

// Opts holds configuration options for store implementations.
type Opts struct {
	DSN string
}

// Option defines a functional option for store configuration.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// InMemoryStore archives bookings in process memory. It backs tests and
// deployments that run without a database.
type InMemoryStore struct {
	mu       sync.RWMutex
	bookings []models.Booking
}

// NewInMemoryStore creates an empty in-memory booking archive.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// AddBooking appends a booking to the archive.
func (s *InMemoryStore) AddBooking(b models.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
	return nil
}

// ListBookings returns all archived bookings in insertion order.
func (s *InMemoryStore) ListBookings() ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

// ListBookingsByUser returns the archived bookings for one user.
func (s *InMemoryStore) ListBookingsByUser(userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}

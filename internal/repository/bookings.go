package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"quickshow/internal/db"
	"quickshow/internal/entities"
)

type BookingsRepo struct {
	db *db.Handle
}

func NewBookingsRepo(handle *db.Handle) *BookingsRepo {
	return &BookingsRepo{db: handle}
}

// Create inserts an unpaid booking. The show row is locked for the
// duration of the transaction so two bookings cannot reserve the same
// seat concurrently.
func (r *BookingsRepo) Create(ctx context.Context, booking entities.Booking) (uuid.UUID, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Locking the bookings rows is not enough: an empty show locks
	// nothing, and under READ COMMITTED a blocked FOR UPDATE scan never
	// sees rows inserted by the transaction it waited on. The show row
	// is the serialization point for its seat map.
	var showID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM shows WHERE id = $1 FOR UPDATE`, booking.ShowID).Scan(&showID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, entities.ErrShowNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to lock show: %w", err)
	}

	occupied, err := occupiedSeatsTx(ctx, tx, booking.ShowID)
	if err != nil {
		return uuid.Nil, err
	}

	taken := make(map[string]struct{}, len(occupied))
	for _, seat := range occupied {
		taken[seat] = struct{}{}
	}
	for _, seat := range booking.BookedSeats {
		if _, ok := taken[seat]; ok {
			return uuid.Nil, fmt.Errorf("%w: seat %s", entities.ErrSeatsAlreadyBooked, seat)
		}
	}

	var id uuid.UUID
	query := `
		INSERT INTO bookings (
			user_id, show_id, amount, booked_seats, payment_link
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id`

	err = tx.QueryRowContext(ctx, query,
		booking.UserID,
		booking.ShowID,
		booking.Amount,
		booking.BookedSeats,
		booking.PaymentLink,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return id, nil
}

func (r *BookingsRepo) Get(ctx context.Context, id uuid.UUID) (entities.Booking, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return entities.Booking{}, err
	}

	var booking entities.Booking
	err = conn.GetContext(ctx, &booking, `SELECT * FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Booking{}, entities.ErrBookingNotFound
	}
	if err != nil {
		return entities.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// MarkPaid sets is_paid and clears the payment link. Applying it to an
// already-paid booking is a no-op, which makes repeated webhook
// deliveries harmless.
func (r *BookingsRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE bookings
		SET is_paid = TRUE, payment_link = '', updated_at = now()
		WHERE id = $1`

	res, err := conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check booking update: %w", err)
	}
	if affected == 0 {
		return entities.ErrBookingNotFound
	}

	return nil
}

func (r *BookingsRepo) SetPaymentLink(ctx context.Context, id uuid.UUID, link string) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE bookings
		SET payment_link = $2, updated_at = now()
		WHERE id = $1`

	res, err := conn.ExecContext(ctx, query, id, link)
	if err != nil {
		return fmt.Errorf("failed to set payment link: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check booking update: %w", err)
	}
	if affected == 0 {
		return entities.ErrBookingNotFound
	}

	return nil
}

func (r *BookingsRepo) OccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx,
		`SELECT booked_seats FROM bookings WHERE show_id = $1`, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to query occupied seats: %w", err)
	}
	defer rows.Close()

	return collectSeats(rows)
}

// GetConfirmation loads the booking graph used by the confirmation
// email: booking -> show -> movie plus booking -> user.
func (r *BookingsRepo) GetConfirmation(ctx context.Context, id uuid.UUID) (entities.BookingConfirmation, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return entities.BookingConfirmation{}, err
	}

	var confirmation entities.BookingConfirmation

	err = conn.GetContext(ctx, &confirmation.Booking, `SELECT * FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.BookingConfirmation{}, entities.ErrBookingNotFound
	}
	if err != nil {
		return entities.BookingConfirmation{}, fmt.Errorf("failed to get booking: %w", err)
	}

	err = conn.GetContext(ctx, &confirmation.Show,
		`SELECT * FROM shows WHERE id = $1`, confirmation.Booking.ShowID)
	if err != nil {
		return entities.BookingConfirmation{}, fmt.Errorf("failed to get booking's show: %w", err)
	}

	err = conn.GetContext(ctx, &confirmation.Movie,
		`SELECT * FROM movies WHERE id = $1`, confirmation.Show.MovieID)
	if err != nil {
		return entities.BookingConfirmation{}, fmt.Errorf("failed to get booking's movie: %w", err)
	}

	err = conn.GetContext(ctx, &confirmation.User,
		`SELECT * FROM users WHERE id = $1`, confirmation.Booking.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.BookingConfirmation{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.BookingConfirmation{}, fmt.Errorf("failed to get booking's user: %w", err)
	}

	return confirmation, nil
}

func (r *BookingsRepo) ListForUser(ctx context.Context, userID string) ([]entities.UserBooking, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var bookings []entities.Booking
	err = conn.SelectContext(ctx, &bookings,
		`SELECT * FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	result := make([]entities.UserBooking, 0, len(bookings))
	for _, booking := range bookings {
		var ub entities.UserBooking
		ub.Booking = booking

		err = conn.GetContext(ctx, &ub.Show, `SELECT * FROM shows WHERE id = $1`, booking.ShowID)
		if err != nil {
			return nil, fmt.Errorf("failed to get show for booking %s: %w", booking.ID, err)
		}
		err = conn.GetContext(ctx, &ub.Movie, `SELECT * FROM movies WHERE id = $1`, ub.Show.MovieID)
		if err != nil {
			return nil, fmt.Errorf("failed to get movie for booking %s: %w", booking.ID, err)
		}

		result = append(result, ub)
	}

	return result, nil
}

// occupiedSeatsTx reads occupancy inside a transaction that already
// holds the show row lock.
func occupiedSeatsTx(ctx context.Context, tx *sqlx.Tx, showID uuid.UUID) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT booked_seats FROM bookings WHERE show_id = $1`, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to read show bookings: %w", err)
	}
	defer rows.Close()

	return collectSeats(rows)
}

func collectSeats(rows *sql.Rows) ([]string, error) {
	var occupied []string
	for rows.Next() {
		var seats entities.StringList
		if err := rows.Scan(&seats); err != nil {
			return nil, fmt.Errorf("failed to scan booked seats: %w", err)
		}
		occupied = append(occupied, seats...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booked seats: %w", err)
	}

	return occupied, nil
}

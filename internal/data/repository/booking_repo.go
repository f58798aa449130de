package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// BookingRepository is the record store for bookings.
//
// Create must reject a second booking for an occupied (date, time) with
// entity.ErrSlotTaken. FindByID, FindBySlot and Update return (nil, nil)
// when nothing matches; Delete returns entity.ErrBookingNotFound.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBySlot(ctx context.Context, date, time string) (*entity.Booking, error)
	FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.BookingPatch) (*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const uniqueViolation = "23505"

const bookingColumns = `id, name, email, phone, notes, service, price::float8,
	booking_date::text, to_char(booking_time, 'HH24:MI'), timezone, status, created_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (name, email, phone, notes, service, price, booking_date, booking_time, timezone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::date, $8::text::time, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Notes,
		booking.Service,
		booking.Price,
		booking.Date,
		booking.Time,
		booking.Timezone,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)

	if isUniqueViolation(err) {
		r.log.Warn("Slot already taken at insert",
			zap.String("date", booking.Date),
			zap.String("time", booking.Time),
		)
		return entity.ErrSlotTaken
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("date", booking.Date),
			zap.String("time", booking.Time),
		)
		return fmt.Errorf("create booking %s %s: %w", booking.Date, booking.Time, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindBySlot(ctx context.Context, date, time string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_date = $1::text::date AND booking_time = $2::text::time
		LIMIT 1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, date, time))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by slot",
			zap.Error(err),
			zap.String("date", date),
			zap.String("time", time),
		)
		return nil, fmt.Errorf("find booking by slot %s %s: %w", date, time, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + bookingColumns + ` FROM bookings`)
	if filter.Date != "" {
		args = append(args, filter.Date)
		fmt.Fprintf(&sb, " WHERE booking_date = $%d::text::date", len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("date", filter.Date),
			zap.Int("limit", filter.Limit),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, id uuid.UUID, patch entity.BookingPatch) (*entity.Booking, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	// notes: NULL leaves the column alone, '' clears it.
	query := `
		UPDATE bookings
		SET status = COALESCE($2, status),
		    notes  = CASE WHEN $3::text IS NULL THEN notes ELSE NULLIF($3::text, '') END
		WHERE id = $1
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, status, patch.Notes))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("update booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		booking entity.Booking
		status  string
	)
	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Notes,
		&booking.Service,
		&booking.Price,
		&booking.Date,
		&booking.Time,
		&booking.Timezone,
		&status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Status = entity.BookingStatus(status)
	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

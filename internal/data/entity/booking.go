package entity

import "github.com/google/uuid"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusAttended  BookingStatus = "attended"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every settable status, in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusAttended,
	BookingStatusCancelled,
}

// Valid reports whether s is one of the enumerated statuses.
func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Booking occupies exactly one (Date, Time) slot. Date is a calendar date
// formatted as 2006-01-02 and Time a slot start formatted as 15:04.
type Booking struct {
	BaseSimple
	Name     string        `db:"name"`
	Email    string        `db:"email"`
	Phone    *string       `db:"phone"`
	Notes    *string       `db:"notes"`
	Service  string        `db:"service"`
	Price    float64       `db:"price"`
	Date     string        `db:"booking_date"`
	Time     string        `db:"booking_time"`
	Timezone *string       `db:"timezone"`
	Status   BookingStatus `db:"status"`
}

// BookingFilter narrows a listing. Zero values mean "no restriction".
type BookingFilter struct {
	Date  string
	Limit int
}

// BookingPatch is a partial update. Nil fields are left untouched; a
// non-nil empty Notes clears the stored notes.
type BookingPatch struct {
	Status *BookingStatus
	Notes  *string
}

// Empty reports whether the patch changes nothing.
func (p BookingPatch) Empty() bool {
	return p.Status == nil && p.Notes == nil
}

// BookingID parses an opaque booking identifier.
func BookingID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

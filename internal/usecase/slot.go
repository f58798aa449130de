package usecase

import (
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// OperatingWindow is the studio's opening hours. Slots start hourly from
// OpenHour up to, but excluding, CloseHour.
type OperatingWindow struct {
	OpenHour  int
	CloseHour int
}

// Times returns slot start times in order. A degenerate window yields none.
func (w OperatingWindow) Times() []string {
	from, to := w.OpenHour, w.CloseHour
	if from < 0 {
		from = 0
	}
	if to > 24 {
		to = 24
	}
	if to <= from {
		return nil
	}

	times := make([]string, 0, to-from)
	for h := from; h < to; h++ {
		times = append(times, fmt.Sprintf("%02d:00", h))
	}
	return times
}

// Contains reports whether t is one of the window's slot starts.
func (w OperatingWindow) Contains(t string) bool {
	for _, slot := range w.Times() {
		if slot == t {
			return true
		}
	}
	return false
}

// CalculateSlots classifies every slot of the window on date. date is a
// calendar date (2006-01-02); "today" and slot start instants are taken in
// now's location. booked holds the times already reserved on date.
//
// A booked time wins over past. The result depends only on its arguments.
func CalculateSlots(date string, now time.Time, window OperatingWindow, booked []string) []entity.Slot {
	times := window.Times()
	slots := make([]entity.Slot, 0, len(times))
	if len(times) == 0 {
		return slots
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	loc := now.Location()
	isToday := now.Format(dateLayout) == date

	for _, t := range times {
		state := entity.SlotAvailable
		switch {
		case contains(taken, t):
			state = entity.SlotBooked
		case isToday && !slotStart(date, t, loc).After(now):
			state = entity.SlotPast
		}
		slots = append(slots, entity.Slot{Time: t, State: state})
	}
	return slots
}

// BookedTimes extracts the slot times of bookings that fall on date.
func BookedTimes(bookings []*entity.Booking, date string) []string {
	times := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.Date == date {
			times = append(times, b.Time)
		}
	}
	return times
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

func slotStart(date, t string, loc *time.Location) time.Time {
	start, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+t, loc)
	if err != nil {
		return time.Time{}
	}
	return start
}

// resolveLocation prefers the caller's IANA zone and falls back to the
// studio zone when it is empty or unknown.
func resolveLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// canonicalTime rewrites an accepted time-of-day as zero-padded HH:MM.
func canonicalTime(t string) (string, bool) {
	parsed, err := time.Parse(timeLayout, t)
	if err != nil {
		return "", false
	}
	return parsed.Format(timeLayout), true
}

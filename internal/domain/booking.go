package domain

import (
	"errors"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking is an accepted reservation of one slot. Cancellation is a soft
// status transition; cancelled bookings are retained and never reactivated.
type Booking struct {
	ID           int64         `json:"id"`
	EventTypeID  int64         `json:"event_type_id"`
	ManageToken  string        `json:"manage_token"`
	Status       BookingStatus `json:"status"`
	InviteeName  string        `json:"invitee_name"`
	InviteeEmail string        `json:"invitee_email"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// EventTypeName is populated by list queries that join event_types.
	EventTypeName string `json:"event_type_name,omitempty"`
}

type BookingReq struct {
	EventTypeID  int64     `json:"eventTypeId"`
	InviteeName  string    `json:"name"`
	InviteeEmail string    `json:"email"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

func (r *BookingReq) Validate() error {
	if r.EventTypeID <= 0 {
		return errors.New("eventTypeId is required")
	}
	if strings.TrimSpace(r.InviteeName) == "" {
		return errors.New("name is required")
	}
	if !isValidEmail(r.InviteeEmail) {
		return errors.New("invalid email")
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return errors.New("startTime and endTime are required")
	}
	if !r.EndTime.After(r.StartTime) {
		return errors.New("startTime must be before endTime")
	}
	return nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	local, dom := parts[0], parts[1]
	return len(local) > 0 && len(dom) > 2 && strings.Contains(dom, ".")
}

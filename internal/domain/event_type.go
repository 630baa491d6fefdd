package domain

import (
	"errors"
	"strings"
	"time"
)

// EventType is a reusable meeting template with a fixed duration and a
// URL-safe slug derived from its name.
type EventType struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration"`
	Slug            string    `json:"slug"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type EventTypeReq struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
}

func (r *EventTypeReq) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.DurationMinutes <= 0 {
		return errors.New("duration must be greater than 0")
	}
	return nil
}

// Slugify lowercases the name, collapses runs of anything outside ASCII
// [a-z0-9] to a single hyphen and strips leading/trailing hyphens. Recomputed
// on every name change.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}

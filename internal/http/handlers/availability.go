package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/internal/http/response"
	"github.com/calport/calport-bookings/pkg/logger"
)

// dayWindow is one weekday's entry in the replace-availability payload.
// Disabled days contribute no rule.
type dayWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type replaceAvailabilityReq struct {
	Timezone string               `json:"timezone"`
	Schedule map[string]dayWindow `json:"schedule"`
}

func (h *Handlers) ListAvailability(w http.ResponseWriter, r *http.Request) {
	rules, err := h.schedule.ListAvailability(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list availability", "error", err)
		response.InternalError(w, "error listing availability")
		return
	}
	if rules == nil {
		rules = []domain.AvailabilityRule{}
	}
	response.JSON(w, http.StatusOK, rules)
}

func (h *Handlers) ReplaceAvailability(w http.ResponseWriter, r *http.Request) {
	var in replaceAvailabilityReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if in.Timezone == "" {
		response.BadRequest(w, "timezone is required")
		return
	}

	var rules []domain.AvailabilityRule
	seen := make(map[int]bool)
	for key, window := range in.Schedule {
		if !window.Enabled {
			continue
		}
		weekday, err := strconv.Atoi(key)
		if err != nil {
			response.BadRequest(w, "invalid weekday key "+key)
			return
		}
		// Keys like "0" and "00" parse to the same weekday; at most one
		// rule per weekday is allowed.
		if seen[weekday] {
			response.BadRequest(w, "duplicate weekday "+key)
			return
		}
		seen[weekday] = true
		rule := domain.AvailabilityRule{
			Weekday:   weekday,
			StartTime: window.Start,
			EndTime:   window.End,
			Timezone:  in.Timezone,
		}
		if err := rule.Validate(); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Weekday < rules[j].Weekday })

	if err := h.schedule.ReplaceAvailability(r.Context(), rules); err != nil {
		logger.ErrorContext(r.Context(), "failed to replace availability", "error", err)
		response.InternalError(w, "error saving availability")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

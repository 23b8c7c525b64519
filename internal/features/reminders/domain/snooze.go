package domain

import (
	"strings"
	"time"
)

const (
	// NeverToken is stored in place of a deadline once the feature is enabled.
	// It never parses as a date, so the reminder stays hidden.
	NeverToken = "never"

	// DateLayout matches the string the dashboard UI writes (JavaScript Date.toDateString).
	DateLayout = "Mon Jan 02 2006"
	// isoDateLayout is also accepted when reading deadlines.
	isoDateLayout = "2006-01-02"

	// DefaultRemindAfterDays is how long a dismissed reminder stays hidden.
	DefaultRemindAfterDays = 90
)

// Snooze is a persisted "do not remind before" deadline.
type Snooze struct {
	Feature  string    `json:"feature"`
	Days     int       `json:"days"`
	Deadline time.Time `json:"deadline"`
	Token    string    `json:"token"`
}

// NewSnooze computes the deadline now + days with calendar-day granularity.
func NewSnooze(feature Feature, now time.Time, days int) Snooze {
	deadline := startOfDay(now).AddDate(0, 0, days)
	return Snooze{
		Feature:  feature.Name,
		Days:     days,
		Deadline: deadline,
		Token:    FormatDeadline(deadline),
	}
}

// FormatDeadline renders t in the dashboard date layout.
func FormatDeadline(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDeadline reads a deadline in the dashboard or ISO layout, in loc.
func ParseDeadline(token string, loc *time.Location) (time.Time, bool) {
	token = strings.TrimSpace(token)
	for _, layout := range []string{DateLayout, isoDateLayout} {
		if t, err := time.ParseInLocation(layout, token, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsVisible decides whether the reminder banner shows for token on the day of now.
// An empty or "null" token always shows. NeverToken and unparseable tokens never show.
// A date shows once today has reached it.
func IsVisible(token string, now time.Time) bool {
	token = strings.TrimSpace(token)
	switch token {
	case "", "null":
		return true
	case NeverToken:
		return false
	}

	deadline, ok := ParseDeadline(token, now.Location())
	if !ok {
		return false
	}

	return !startOfDay(now).Before(deadline)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

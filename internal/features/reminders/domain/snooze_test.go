package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVisible(t *testing.T) {
	now := time.Date(2026, time.October, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{name: "Empty token shows", token: "", expected: true},
		{name: "Whitespace token shows", token: "  ", expected: true},
		{name: "Null token shows", token: "null", expected: true},
		{name: "Never token hides", token: NeverToken, expected: false},
		{name: "Today in dashboard layout shows", token: "Sun Oct 18 2026", expected: true},
		{name: "Today in ISO layout shows", token: "2026-10-18", expected: true},
		{name: "Past deadline shows", token: "Thu Jan 01 2026", expected: true},
		{name: "Tomorrow hides", token: "Mon Oct 19 2026", expected: false},
		{name: "Far future hides", token: "2099-01-01", expected: false},
		{name: "Garbage hides", token: "someday", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsVisible(tt.token, now))
		})
	}
}

func TestIsVisible_UsesCallerLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-10-18 20:00 UTC is already the 19th in Tokyo.
	now := time.Date(2026, time.October, 18, 20, 0, 0, 0, time.UTC).In(tokyo)

	assert.True(t, IsVisible("Mon Oct 19 2026", now))
	assert.False(t, IsVisible("Tue Oct 20 2026", now))
}

func TestNewSnooze(t *testing.T) {
	now := time.Date(2026, time.October, 18, 23, 59, 0, 0, time.UTC)

	snooze := NewSnooze(CallHome, now, DefaultRemindAfterDays)

	assert.Equal(t, "call_home", snooze.Feature)
	assert.Equal(t, 90, snooze.Days)
	assert.Equal(t, time.Date(2027, time.January, 16, 0, 0, 0, 0, time.UTC), snooze.Deadline)
	assert.Equal(t, "Sat Jan 16 2027", snooze.Token)

	// The fresh snooze hides the banner until the deadline day.
	assert.False(t, IsVisible(snooze.Token, now))
	assert.False(t, IsVisible(snooze.Token, now.AddDate(0, 0, 89)))
	assert.True(t, IsVisible(snooze.Token, now.AddDate(0, 0, 90)))
}

func TestParseDeadline(t *testing.T) {
	parsed, ok := ParseDeadline(" Sat Jan 16 2027 ", time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, time.January, 16, 0, 0, 0, 0, time.UTC), parsed)

	_, ok = ParseDeadline(NeverToken, time.UTC)
	assert.False(t, ok)
}

func TestFeature(t *testing.T) {
	assert.True(t, CallHome.AvailableIn("ceph"))
	assert.True(t, CallHome.AvailableIn("ibm"))
	assert.False(t, StorageInsights.AvailableIn("ceph"))
	assert.True(t, StorageInsights.AvailableIn("ibm"))

	assert.Equal(t, "Call Home activation reminder muted", CallHome.MutedTitle())
	assert.Equal(t, "You have muted the Storage Insights activation for 90 days.", StorageInsights.MutedBody(90))

	assert.Equal(t, []Feature{CallHome, StorageInsights}, Features())
}

package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownFeature is returned when a feature name has no registered reminder.
var ErrUnknownFeature = errors.New("unknown reminder feature")

// Feature describes a dashboard capability that nags the operator until it is enabled.
type Feature struct {
	// Name is the stable identifier used in URLs and logs.
	Name string `json:"name"`
	// DisplayName is the human readable feature name.
	DisplayName string `json:"display_name"`
	// ConfigKey is the dashboard module option holding the snooze deadline.
	ConfigKey string `json:"config_key"`
	// Flavor restricts the reminder to one build flavor. Empty means every flavor.
	Flavor string `json:"flavor,omitempty"`
}

var (
	// CallHome reminds the operator to opt in to vendor telemetry.
	CallHome = Feature{
		Name:        "call_home",
		DisplayName: "Call Home",
		ConfigKey:   "CALL_HOME_REMIND_LATER_ON",
	}

	// StorageInsights reminds the operator to register the cluster with Storage Insights.
	StorageInsights = Feature{
		Name:        "storage_insights",
		DisplayName: "Storage Insights",
		ConfigKey:   "STORAGE_INSIGHTS_REMIND_LATER_ON",
		Flavor:      "ibm",
	}
)

// Features lists the built-in reminders in display order.
func Features() []Feature {
	return []Feature{CallHome, StorageInsights}
}

// AvailableIn reports whether the reminder runs in the given build flavor.
func (f Feature) AvailableIn(flavor string) bool {
	return f.Flavor == "" || f.Flavor == flavor
}

// MutedTitle is the notification title shown after a successful dismiss.
func (f Feature) MutedTitle() string {
	return fmt.Sprintf("%s activation reminder muted", f.DisplayName)
}

// MutedBody is the notification body shown after a successful dismiss.
func (f Feature) MutedBody(days int) string {
	return fmt.Sprintf("You have muted the %s activation for %d days.", f.DisplayName, days)
}

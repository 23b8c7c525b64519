package domain

import "errors"

// ErrUnknownReportType is returned for a report the agent does not produce.
var ErrUnknownReportType = errors.New("unknown report type")

// ReportType names a call home agent report.
type ReportType string

const (
	ReportInventory   ReportType = "inventory"
	ReportStatus      ReportType = "status"
	ReportLastContact ReportType = "last_contact"
	ReportAlerts      ReportType = "alerts"
)

// ParseReportType validates s.
func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(s); t {
	case ReportInventory, ReportStatus, ReportLastContact, ReportAlerts:
		return t, nil
	}
	return "", ErrUnknownReportType
}

package app

import (
	"fmt"

	"dashboard-reminders/internal/features/reminders/service"

	"github.com/jedib0t/go-pretty/v6/table"
)

var checkHeader = table.Row{
	"#",
	"Feature",
	"Config Key",
	"Banner",
	"Error",
}

// RenderCheck renders the resolution results as a table.
func RenderCheck(results []service.Result) string {
	checkTable := table.NewWriter()
	checkTable.AppendHeader(checkHeader)

	for i, res := range results {
		banner := "hidden"
		if res.Visible {
			banner = "shown"
		}

		dataRow := table.Row{
			fmt.Sprintf("%d", i+1),
			res.Feature.DisplayName,
			res.Feature.ConfigKey,
		}
		if res.Err != nil {
			dataRow = append(dataRow, "unknown", res.Err.Error())
		} else {
			dataRow = append(dataRow, banner, "")
		}
		checkTable.AppendRow(dataRow)
	}

	return checkTable.Render()
}

// Failed reports whether any result carries an error.
func Failed(results []service.Result) bool {
	for _, res := range results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

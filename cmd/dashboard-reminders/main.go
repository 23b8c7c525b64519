package main

import "dashboard-reminders/cmd/dashboard-reminders/cmd"

// @title Dashboard Reminders API
// @version 1.0
// @description Feature activation reminders of the Ceph dashboard: banner visibility, snoozing and the Call Home configuration dialog.
// @contact.name API Support
// @license.name LGPL-2.1
// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}

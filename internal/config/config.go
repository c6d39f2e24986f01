package config

const (
	DefaultTimeZone = "Asia/Kolkata"

	// Run every five minutes to pick up newly flagged entries quickly.
	DefaultNotifySchedule = "*/5 * * * *"
	// Reconcile sweeps run hourly; page loads trigger the same passes on
	// demand, so the cron is a backstop.
	DefaultActivitySchedule = "0 * * * *"
	DefaultPayablesSchedule = "0 * * * *"
)

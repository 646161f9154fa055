package config

// CronJob pairs a schedule with a job function.
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs maps job names to statically configured jobs. Jobs that
// need database access register themselves via cron.Register from
// init() in cron/jobs instead (keeps config free of service imports).
var CronJobs = map[string]CronJob{}

package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds environment-specific jobs configured here rather than
// through cron.Register. The built-in jobs live in cron/jobs and register
// themselves from init(); config must stay importable from that package.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}

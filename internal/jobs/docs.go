// Package jobs provides scheduled background tasks for the donation service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// 1. ItemStatsJob - logs the number of items per status (posted, picked,
// delivered) on the STATS_SCHEDULE schedule, once a minute by default
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countItemsHandler, cfg.StatsSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and the next scheduled pass runs normally.
// An invalid schedule makes StartAll fail.
package jobs

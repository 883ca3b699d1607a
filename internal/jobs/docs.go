// Package jobs provides scheduled background tasks for the food-ordering core.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field enabled.
//
// # Available Jobs
//
// StaleAssignmentJob cancels assignments that stayed in the assigned status
// longer than the configured threshold. Each cancellation goes through the
// regular transition use case, so the order is released for another partner
// and the reason "not accepted in time" is recorded.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(staleFinder, transitioner, jobs.StaleAssignmentConfig{
//		Schedule:  "0 * * * * *",
//		After:     10 * time.Minute,
//		BatchSize: 100,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An assignment accepted between the lookup and the cancellation is skipped
// silently. Other failures are logged and do not stop the rest of the batch.
package jobs

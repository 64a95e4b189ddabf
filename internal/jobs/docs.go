// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution schedules.
//
// # Available Jobs
//
// UploadSweepJob deletes image files in the upload directory that no category
// or product references and that are older than an hour. Such files are left
// behind when a write fails after its upload was stored, or when a best-effort
// delete of a replaced image fails.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, "0 */10 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

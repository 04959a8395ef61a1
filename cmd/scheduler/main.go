package main

import (
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/config"
	"yt-planner/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		&asynq.SchedulerOpts{},
	)

	channelsTask, err := tasks.NewSyncAllChannelsTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}
	competitorsTask, err := tasks.NewSyncAllCompetitorsTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}

	// Run every hour
	if _, err := scheduler.Register("@every 1h", channelsTask); err != nil {
		log.Fatalf("could not register task: %v", err)
	}
	if _, err := scheduler.Register("@every 6h", competitorsTask); err != nil {
		log.Fatalf("could not register task: %v", err)
	}

	log.Printf("Scheduler starting (commit: %s)", CommitSHA)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}

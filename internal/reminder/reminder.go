// Package reminder runs the daily scan that nudges users about open tasks.
package reminder

import (
	"fmt"

	"github.com/rmateos/taskdeck-be/internal/models"
	"github.com/rmateos/taskdeck-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Notifier delivers a reminder to a single user. In production this would be
// a mailer; the default implementation writes to the log.
type Notifier interface {
	Notify(user models.User, incompleteCount int) error
}

// LogNotifier writes reminders to the application log.
type LogNotifier struct{}

// Notify logs the reminder.
func (LogNotifier) Notify(user models.User, incompleteCount int) error {
	log.Info().
		Str("username", user.Username).
		Int("incomplete_tasks", incompleteCount).
		Msg("Reminder: you have unfinished tasks")
	return nil
}

// Job scans every user's incomplete tasks once a day and notifies the ones
// with outstanding work. Read-only against storage.
type Job struct {
	userSvc  services.UserServiceProvider
	taskSvc  services.TaskServiceProvider
	notifier Notifier
	cron     *cron.Cron
}

// NewJob creates a reminder job. The cron spec comes from configuration,
// "0 21 * * *" by default.
func NewJob(userSvc services.UserServiceProvider, taskSvc services.TaskServiceProvider, notifier Notifier) *Job {
	return &Job{
		userSvc:  userSvc,
		taskSvc:  taskSvc,
		notifier: notifier,
		cron:     cron.New(),
	}
}

// Start registers the scan with the cron runner and starts it.
func (j *Job) Start(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid reminder cron spec %q: %w", spec, err)
	}
	if _, err := j.cron.AddFunc(spec, j.Scan); err != nil {
		return err
	}
	j.cron.Start()
	log.Info().Str("cron", spec).Msg("Reminder job scheduled")
	return nil
}

// Stop halts the cron runner.
func (j *Job) Stop() {
	j.cron.Stop()
}

// Scan walks all users and notifies each one that has incomplete tasks.
// A failure for one user never aborts the rest of the scan.
func (j *Job) Scan() {
	users, err := j.userSvc.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Reminder scan: failed to list users")
		return
	}

	for _, user := range users {
		count, err := j.taskSvc.CountIncomplete(user.ID)
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Reminder scan: failed to count tasks")
			continue
		}
		if count == 0 {
			continue
		}
		if err := j.notifier.Notify(user, count); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Reminder scan: notification failed")
		}
	}
}

package reminder

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rmateos/taskdeck-be/internal/database"
	"github.com/rmateos/taskdeck-be/internal/models"
	"github.com/rmateos/taskdeck-be/internal/services"
)

type recordingNotifier struct {
	notified []string
	failFor  map[string]bool
}

func (n *recordingNotifier) Notify(user models.User, incompleteCount int) error {
	n.notified = append(n.notified, user.Username)
	if n.failFor[user.Username] {
		return errors.New("smtp unavailable")
	}
	return nil
}

func setup(t *testing.T) (*services.UserService, *services.TaskService) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	eventSvc := services.NewEventService(db, nil)
	return services.NewUserService(db), services.NewTaskService(db, eventSvc)
}

// Only users with outstanding tasks get a reminder, and one user's failing
// notification does not stop the scan.
func TestScan(t *testing.T) {
	userSvc, taskSvc := setup(t)

	users := map[string]models.User{}
	for _, name := range []string{"alice", "bob", "carol"} {
		user, err := userSvc.CreateUser(name, "pw")
		if err != nil {
			t.Fatalf("Signup %s failed: %v", name, err)
		}
		users[name] = user
	}

	// alice: one open task. bob: one completed task, nothing open.
	// carol: one open task, but her notification will fail.
	if _, _, err := taskSvc.CreateTask(users["alice"].ID, "water plants"); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	done, _, err := taskSvc.CreateTask(users["bob"].ID, "file taxes")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := taskSvc.CompleteTask(done.ID, users["bob"].ID); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if _, _, err := taskSvc.CreateTask(users["carol"].ID, "call dentist"); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	notifier := &recordingNotifier{failFor: map[string]bool{"alice": true}}
	job := NewJob(userSvc, taskSvc, notifier)
	job.Scan()

	got := map[string]bool{}
	for _, name := range notifier.notified {
		got[name] = true
	}
	if !got["alice"] {
		t.Fatal("alice has an open task but was not notified")
	}
	if got["bob"] {
		t.Fatal("bob has no open tasks but was notified")
	}
	if !got["carol"] {
		t.Fatal("carol was not notified; a prior failure must not abort the scan")
	}
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	userSvc, taskSvc := setup(t)
	job := NewJob(userSvc, taskSvc, LogNotifier{})
	if err := job.Start("not a cron spec"); err == nil {
		t.Fatal("Start accepted an invalid cron spec")
	}
}

func TestStartValidSpec(t *testing.T) {
	userSvc, taskSvc := setup(t)
	job := NewJob(userSvc, taskSvc, LogNotifier{})
	if err := job.Start("0 21 * * *"); err != nil {
		t.Fatalf("Start rejected a valid cron spec: %v", err)
	}
	job.Stop()
}

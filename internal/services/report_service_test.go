package services

import "testing"

func TestConsistency(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{"no tasks", 0, 0, 0},
		{"none complete", 0, 5, 0},
		{"all complete", 3, 3, 100.0},
		{"one of three", 1, 3, 33.33},
		{"two of three", 2, 3, 66.67},
		{"one of eight", 1, 8, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Consistency(tt.completed, tt.total); got != tt.want {
				t.Fatalf("Consistency(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestAccountSummary(t *testing.T) {
	userSvc, taskSvc, _ := newTestServices(t)
	reportSvc := NewReportService(userSvc, taskSvc)
	alice := mustUser(t, userSvc, "alice")

	// Zero tasks: everything is zero.
	summary, err := reportSvc.AccountSummary(alice.ID)
	if err != nil {
		t.Fatalf("AccountSummary error = %v", err)
	}
	if summary.TotalTasks != 0 || summary.CompletedTasks != 0 || summary.Consistency != 0 || summary.RewardPoints != 0 {
		t.Fatalf("Fresh account summary = %+v, want all zero", summary)
	}

	done := mustTask(t, taskSvc, alice.ID, "done")
	mustTask(t, taskSvc, alice.ID, "open 1")
	mustTask(t, taskSvc, alice.ID, "open 2")
	if _, err := taskSvc.CompleteTask(done.ID, alice.ID); err != nil {
		t.Fatalf("CompleteTask error = %v", err)
	}

	summary, err = reportSvc.AccountSummary(alice.ID)
	if err != nil {
		t.Fatalf("AccountSummary error = %v", err)
	}
	if summary.Username != "alice" {
		t.Fatalf("Username = %q, want alice", summary.Username)
	}
	if summary.TotalTasks != 3 || summary.CompletedTasks != 1 {
		t.Fatalf("Counts = (%d, %d), want (3, 1)", summary.TotalTasks, summary.CompletedTasks)
	}
	if summary.Consistency != 33.33 {
		t.Fatalf("Consistency = %v, want 33.33", summary.Consistency)
	}
	if summary.RewardPoints != 1 {
		t.Fatalf("RewardPoints = %d, want 1", summary.RewardPoints)
	}
}

func TestAccountSummaryUnknownUser(t *testing.T) {
	userSvc, taskSvc, _ := newTestServices(t)
	reportSvc := NewReportService(userSvc, taskSvc)

	if _, err := reportSvc.AccountSummary("no-such-user"); err == nil {
		t.Fatal("AccountSummary(unknown) succeeded, want error")
	}
}

package services

import "math"

// AccountSummary is the read-only report for a user's account page.
type AccountSummary struct {
	Username       string  `json:"username"`
	RewardPoints   int     `json:"rewardPoints"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	Consistency    float64 `json:"consistency"`
}

// ReportServiceProvider defines the interface for reporting services.
type ReportServiceProvider interface {
	AccountSummary(userID string) (AccountSummary, error)
}

// ReportService derives account statistics from the task and user stores.
// Pure reads, recomputed per request.
type ReportService struct {
	userSvc UserServiceProvider
	taskSvc TaskServiceProvider
}

// NewReportService creates a new ReportService.
func NewReportService(userSvc UserServiceProvider, taskSvc TaskServiceProvider) *ReportService {
	return &ReportService{userSvc: userSvc, taskSvc: taskSvc}
}

// AccountSummary computes the user's reward total, task counts, and
// consistency percentage.
func (s *ReportService) AccountSummary(userID string) (AccountSummary, error) {
	user, err := s.userSvc.GetUserByID(userID)
	if err != nil {
		return AccountSummary{}, err
	}

	total, completed, err := s.taskSvc.TaskCounts(userID)
	if err != nil {
		return AccountSummary{}, err
	}

	return AccountSummary{
		Username:       user.Username,
		RewardPoints:   user.RewardPoints,
		TotalTasks:     total,
		CompletedTasks: completed,
		Consistency:    Consistency(completed, total),
	}, nil
}

// Consistency returns the percentage of tasks completed, rounded half-even
// to two decimals. Zero tasks yields 0.
func Consistency(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(completed) / float64(total) * 100
	return math.RoundToEven(pct*100) / 100
}

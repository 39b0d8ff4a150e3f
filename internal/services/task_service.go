package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rmateos/taskdeck-be/internal/models"
)

// TaskServiceProvider defines the interface for task services. Every
// operation is scoped to the owning user; a task belonging to someone else
// behaves exactly like a task that does not exist.
type TaskServiceProvider interface {
	CreateTask(userID, content string) (models.Task, bool, error)
	ListTasks(userID string) ([]models.Task, error)
	GetTask(taskID, userID string) (models.Task, error)
	UpdateContent(taskID, userID, content string) error
	CompleteTask(taskID, userID string) (bool, error)
	DeleteTask(taskID, userID string) (bool, error)
	BulkDelete(taskIDs []string, userID string) (int, error)
	TaskCounts(userID string) (total, completed int, err error)
	CountIncomplete(userID string) (int, error)
}

// TaskService provides business logic for task management.
type TaskService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB, eventSvc EventServiceProvider) *TaskService {
	return &TaskService{db: db, eventSvc: eventSvc}
}

// CreateTask inserts a new task for the user. Whitespace-only content is a
// silent no-op; the second return value reports whether a task was created.
func (s *TaskService) CreateTask(userID, content string) (models.Task, bool, error) {
	if strings.TrimSpace(content) == "" {
		return models.Task{}, false, nil
	}

	task := models.Task{
		ID:        uuid.New().String(),
		Content:   content,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO tasks(id, content, completed, user_id, created_at) VALUES(?, ?, 0, ?, ?)")
	if err != nil {
		return models.Task{}, false, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(task.ID, task.Content, task.UserID, task.CreatedAt); err != nil {
		return models.Task{}, false, err
	}

	s.eventSvc.Record("task.create", "info", fmt.Sprintf("Task created: %s", task.Content), userID)
	created, err := s.getOwned(task.ID, userID)
	if err != nil {
		return models.Task{}, false, err
	}
	return created, true, nil
}

// ListTasks retrieves all of a user's tasks, newest first (insertion order,
// descending).
func (s *TaskService) ListTasks(userID string) ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, content, completed, user_id, created_at
		FROM tasks WHERE user_id = ? ORDER BY rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Content, &task.Completed, &task.UserID, &task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a single task if it exists and belongs to the user.
func (s *TaskService) GetTask(taskID, userID string) (models.Task, error) {
	return s.getOwned(taskID, userID)
}

func (s *TaskService) getOwned(taskID, userID string) (models.Task, error) {
	var task models.Task
	row := s.db.QueryRow(`
		SELECT id, content, completed, user_id, created_at
		FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	err := row.Scan(&task.ID, &task.Content, &task.Completed, &task.UserID, &task.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// UpdateContent replaces a task's content. Returns ErrNotFound when the task
// does not exist or is owned by another user.
func (s *TaskService) UpdateContent(taskID, userID, content string) error {
	res, err := s.db.Exec("UPDATE tasks SET content = ? WHERE id = ? AND user_id = ?", content, taskID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteTask marks a task completed and awards one reward point to its
// owner. Both writes commit in a single transaction. Completing an
// already-completed or missing task changes nothing and awards nothing, so
// of two concurrent completions only the first earns the point.
func (s *TaskService) CompleteTask(taskID, userID string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE tasks SET completed = 1 WHERE id = ? AND user_id = ? AND completed = 0", taskID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Already completed, foreign, or nonexistent: nothing to commit.
		return false, nil
	}

	if _, err = tx.Exec("UPDATE users SET reward_points = reward_points + 1 WHERE id = ?", userID); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}

	s.eventSvc.Record("task.complete", "info", "Task completed, +1 reward point", userID)
	return true, nil
}

// DeleteTask removes a single task. Returns false when nothing was deleted.
func (s *TaskService) DeleteTask(taskID, userID string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	s.eventSvc.Record("task.delete", "info", "Task deleted", userID)
	return true, nil
}

// BulkDelete removes the subset of the given task IDs owned by the user and
// reports how many rows were actually deleted. Foreign and nonexistent IDs
// are silently skipped.
func (s *TaskService) BulkDelete(taskIDs []string, userID string) (int, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(taskIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(taskIDs)+1)
	for _, id := range taskIDs {
		args = append(args, id)
	}
	args = append(args, userID)

	res, err := s.db.Exec(
		fmt.Sprintf("DELETE FROM tasks WHERE id IN (%s) AND user_id = ?", placeholders), args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		s.eventSvc.Record("task.multi_delete", "info", fmt.Sprintf("%d tasks deleted", affected), userID)
	}
	return int(affected), nil
}

// TaskCounts returns the user's total and completed task counts.
func (s *TaskService) TaskCounts(userID string) (total, completed int, err error) {
	row := s.db.QueryRow(`
		SELECT COUNT(1), COALESCE(SUM(completed), 0)
		FROM tasks WHERE user_id = ?`, userID)
	if err := row.Scan(&total, &completed); err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

// CountIncomplete returns how many of the user's tasks are still open.
func (s *TaskService) CountIncomplete(userID string) (int, error) {
	var count int
	row := s.db.QueryRow("SELECT COUNT(1) FROM tasks WHERE user_id = ? AND completed = 0", userID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

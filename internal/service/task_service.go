package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
)

const entityTask = "task"

type TaskService interface {
	Create(ctx context.Context, a *Access, in *transfer.TaskInput) (*models.Task, error)
	Get(ctx context.Context, a *Access, id int64) (*models.Task, error)
	List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Task, error)
	Update(ctx context.Context, a *Access, id int64, in *transfer.TaskInput) (*models.Task, error)
	Remove(ctx context.Context, a *Access, id int64) error
}

type taskService struct {
	tr       repository.TaskRepository
	lr       repository.LeadRepository
	pr       repository.ProfileRepository
	settings SettingsService
	sched    TaskScheduler
	act      ActivityService
}

func NewTaskService(
	tr repository.TaskRepository,
	lr repository.LeadRepository,
	pr repository.ProfileRepository,
	settings SettingsService,
	sched TaskScheduler,
	act ActivityService) TaskService {
	return &taskService{
		tr:       tr,
		lr:       lr,
		pr:       pr,
		settings: settings,
		sched:    sched,
		act:      act,
	}
}

func (s *taskService) Create(ctx context.Context, a *Access, in *transfer.TaskInput) (*models.Task, error) {
	task := &models.Task{
		WorkspaceID: a.WorkspaceID,
		CreatorID:   a.UserID,
		AssigneeID:  a.UserID,
		Priority:    models.TaskPriorityMedium,
		Status:      models.TaskStatusPending,
	}
	if err := s.apply(ctx, a, task, in); err != nil {
		return nil, err
	}

	id, err := s.tr.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task.ID = id

	s.scheduleReminder(ctx, task)
	s.act.Record(ctx, a, models.ActionCreate, entityTask, id)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, a *Access, id int64) (*models.Task, error) {
	task, isExist, err := s.tr.GetByID(ctx, a.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Task, error) {
	return s.tr.List(ctx, a.WorkspaceID, filter)
}

func (s *taskService) Update(ctx context.Context, a *Access, id int64, in *transfer.TaskInput) (*models.Task, error) {
	task, err := s.Get(ctx, a, id)
	if err != nil {
		return nil, err
	}
	previousDue := task.DueAt

	if err := s.apply(ctx, a, task, in); err != nil {
		return nil, err
	}

	ok, err := s.tr.Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	if !sameTime(previousDue, task.DueAt) {
		s.scheduleReminder(ctx, task)
	}
	s.act.Record(ctx, a, models.ActionUpdate, entityTask, id)
	return task, nil
}

func (s *taskService) Remove(ctx context.Context, a *Access, id int64) error {
	ok, err := s.tr.Remove(ctx, a.WorkspaceID, id)
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionDelete, entityTask, id)
	return nil
}

func (s *taskService) apply(ctx context.Context, a *Access, task *models.Task, in *transfer.TaskInput) error {
	if in.AssigneeID != 0 && in.AssigneeID != task.AssigneeID {
		assignee, isExist, err := s.pr.GetByUserID(ctx, in.AssigneeID)
		if err != nil {
			return fmt.Errorf("load assignee: %w", err)
		}
		if !isExist || assignee.WorkspaceID != a.WorkspaceID {
			return fmt.Errorf("assignee %d is not a workspace member: %w", in.AssigneeID, ErrValidation)
		}
		task.AssigneeID = in.AssigneeID
	}

	if in.LeadID != nil {
		_, isExist, err := s.lr.GetByID(ctx, a.WorkspaceID, *in.LeadID)
		if err != nil {
			return fmt.Errorf("load lead: %w", err)
		}
		if !isExist {
			return fmt.Errorf("lead %d: %w", *in.LeadID, ErrValidation)
		}
	}

	task.Title = in.Title
	task.Description = in.Description
	task.DueAt = nil
	if in.DueAt != nil {
		due := in.DueAt.Truncate(time.Microsecond)
		task.DueAt = &due
	}
	task.LeadID = in.LeadID
	if in.Priority != "" {
		task.Priority = in.Priority
	}
	if in.Status != "" {
		task.Status = in.Status
	}
	return nil
}

// scheduleReminder queues the assignee's reminder. Scheduling failures are
// logged; the task itself is already saved.
func (s *taskService) scheduleReminder(ctx context.Context, task *models.Task) {
	if task.DueAt == nil || task.Status == models.TaskStatusDone {
		return
	}

	settings, err := s.settings.GetSettingsInfo(ctx, task.AssigneeID)
	if err != nil {
		slog.Warn("reminder settings unavailable", "task_id", task.ID, "error", err)
		return
	}
	if !settings.EmailNotifications {
		return
	}

	at := ReminderTime(*task.DueAt, settings.ReminderMinutes, time.Now())
	if err := s.sched.ScheduleTaskReminder(ctx, task.ID, *task.DueAt, at); err != nil {
		slog.Warn("task reminder not scheduled", "task_id", task.ID, "error", err)
	}
}

// ReminderTime is the moment a reminder should fire: the lead time before the
// due date, but never in the past.
func ReminderTime(due time.Time, leadMinutes int, now time.Time) time.Time {
	at := due.Add(-time.Duration(leadMinutes) * time.Minute)
	if at.Before(now) {
		return now
	}
	return at
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
	"github.com/google/uuid"
)

// At most this many tasks may be flagged at once across active projects
const maxFlaggedTasks = 3

// TaskService handles project tasks and the cross-project view
type TaskService struct {
	repo   *repository.TaskRepository
	qpRepo *repository.QuoteProjectRepository
	qc     cache.Store
}

// NewTaskService creates the task service
func NewTaskService(repo *repository.TaskRepository, qpRepo *repository.QuoteProjectRepository, qc cache.Store) *TaskService {
	return &TaskService{repo: repo, qpRepo: qpRepo, qc: qc}
}

// CreateTaskRequest carries a new task
type CreateTaskRequest struct {
	Description string `json:"description"`
}

// UpdateTaskRequest carries a partial task update. Flag changes go
// through SetFlagged so the flag limit is enforced.
type UpdateTaskRequest struct {
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

// ProjectTaskGroup is one project's slice of the cross-project view
type ProjectTaskGroup struct {
	Project entity.QuoteProject  `json:"project"`
	Tasks   []entity.ProjectTask `json:"tasks"`
}

// View returns tasks of every active project, grouped by project. Tasks
// order flagged first, then incomplete before complete, oldest first.
func (s *TaskService) View(ctx context.Context) ([]ProjectTaskGroup, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagProjectTask, "view"), func(ctx context.Context) ([]ProjectTaskGroup, error) {
		projects, err := s.qpRepo.FindAll(ctx, false)
		if err != nil {
			return nil, err
		}

		active := make([]entity.QuoteProject, 0, len(projects))
		ids := make([]string, 0, len(projects))
		for _, p := range projects {
			if p.Status == entity.ProjectStatusCompleted {
				continue
			}
			active = append(active, p)
			ids = append(ids, p.ID)
		}

		tasks, err := s.repo.FindByProjects(ctx, ids)
		if err != nil {
			return nil, err
		}
		byProject := make(map[string][]entity.ProjectTask, len(active))
		for _, t := range tasks {
			byProject[t.QuoteProjectID] = append(byProject[t.QuoteProjectID], t)
		}

		groups := make([]ProjectTaskGroup, 0, len(active))
		for _, p := range active {
			groups = append(groups, ProjectTaskGroup{Project: p, Tasks: byProject[p.ID]})
		}
		return groups, nil
	})
}

// ListByProject returns one project's tasks
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]entity.ProjectTask, error) {
	if _, err := s.qpRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return cache.Through(ctx, s.qc, cache.NewKey(TagProjectTask, "list", projectID), func(ctx context.Context) ([]entity.ProjectTask, error) {
		return s.repo.FindByProject(ctx, projectID)
	})
}

// Create validates and stores a new task on a project
func (s *TaskService) Create(ctx context.Context, projectID string, req *CreateTaskRequest) (*entity.ProjectTask, error) {
	errs := validation.Errors{}
	validation.Required(errs, "description", "Description", req.Description)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if _, err := s.qpRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	task := &entity.ProjectTask{
		ID:             uuid.New().String()[:32],
		QuoteProjectID: projectID,
		Description:    validation.Clean(req.Description),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	invalidate(ctx, s.qc, TagProjectTask, task.ID, "created")
	return task, nil
}

// Update validates and applies a partial update
func (s *TaskService) Update(ctx context.Context, id string, req *UpdateTaskRequest) (*entity.ProjectTask, error) {
	errs := validation.Errors{}
	if req.Description != nil {
		validation.Required(errs, "description", "Description", *req.Description)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		task.Description = validation.Clean(*req.Description)
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	invalidate(ctx, s.qc, TagProjectTask, task.ID, "updated")
	return task, nil
}

// SetFlagged toggles the flag on a task. Raising a flag is rejected with
// a conflict when the limit is already used up across active projects;
// the store is not touched in that case.
func (s *TaskService) SetFlagged(ctx context.Context, id string, flagged bool) (*entity.ProjectTask, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsFlagged == flagged {
		return task, nil
	}

	if flagged {
		count, err := s.repo.CountFlaggedActive(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count flagged tasks: %w", err)
		}
		if count >= maxFlaggedTasks {
			return nil, &ConflictError{Message: fmt.Sprintf("At most %d tasks can be flagged at a time. Unflag another task first.", maxFlaggedTasks)}
		}
	}

	task.IsFlagged = flagged
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	invalidate(ctx, s.qc, TagProjectTask, task.ID, "updated")
	return task, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.qc, TagProjectTask, id, "deleted")
	return nil
}

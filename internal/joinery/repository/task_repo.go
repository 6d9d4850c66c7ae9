package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"gorm.io/gorm"
)

// TaskRepository is the project task data access layer
type TaskRepository struct {
	store *store.Store
}

func NewTaskRepository(st *store.Store) *TaskRepository {
	return &TaskRepository{store: st}
}

// FindByProject returns one project's tasks, flagged first, then
// incomplete before complete, oldest first within a group.
func (r *TaskRepository) FindByProject(ctx context.Context, projectID string) ([]entity.ProjectTask, error) {
	if !r.store.Available() {
		return []entity.ProjectTask{}, nil
	}
	var tasks []entity.ProjectTask
	err := r.store.DB().WithContext(ctx).
		Where("quote_project_id = ?", projectID).
		Order("is_flagged DESC").
		Order("is_completed ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindByProjects returns the tasks of several projects in one query, same
// ordering as FindByProject. Used by the cross-project view.
func (r *TaskRepository) FindByProjects(ctx context.Context, projectIDs []string) ([]entity.ProjectTask, error) {
	if !r.store.Available() || len(projectIDs) == 0 {
		return []entity.ProjectTask{}, nil
	}
	var tasks []entity.ProjectTask
	err := r.store.DB().WithContext(ctx).
		Where("quote_project_id IN ?", projectIDs).
		Order("is_flagged DESC").
		Order("is_completed ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// CountFlaggedActive counts flagged tasks across projects that are still
// active. An optional excluded task id keeps a toggle from counting the
// task being toggled.
func (r *TaskRepository) CountFlaggedActive(ctx context.Context, excludeTaskID string) (int64, error) {
	if !r.store.Available() {
		return 0, nil
	}
	query := r.store.DB().WithContext(ctx).
		Model(&entity.ProjectTask{}).
		Joins("JOIN quote_projects ON quote_projects.id = project_tasks.quote_project_id").
		Where("project_tasks.is_flagged = ?", true).
		Where("quote_projects.is_quote = ? AND quote_projects.status <> ?", false, entity.ProjectStatusCompleted)
	if excludeTaskID != "" {
		query = query.Where("project_tasks.id <> ?", excludeTaskID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entity.ProjectTask, error) {
	if !r.store.Available() {
		return nil, ErrNotFound
	}
	var task entity.ProjectTask
	err := r.store.DB().WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.ProjectTask) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) Update(ctx context.Context, task *entity.ProjectTask) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	return r.store.DB().WithContext(ctx).Where("id = ?", id).Delete(&entity.ProjectTask{}).Error
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/domain/repositories"
)

type TaskUseCase struct {
	taskRepo repositories.TaskRepository
	now      func() time.Time
}

func NewTaskUseCase(taskRepo repositories.TaskRepository) *TaskUseCase {
	return &TaskUseCase{taskRepo: taskRepo, now: time.Now}
}

// AddTask stores a to-do entry. Blank text is rejected with ErrValidation.
func (uc *TaskUseCase) AddTask(ctx context.Context, text string) (*entities.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: task text is empty", ErrValidation)
	}

	task := &entities.Task{Text: text, CreatedAt: uc.now()}
	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}
	return task, nil
}

func (uc *TaskUseCase) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	tasks, err := uc.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

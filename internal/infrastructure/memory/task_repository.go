package memory

import (
	"context"
	"sort"
	"sync"

	"bookstore-service/internal/domain/entities"

	"github.com/google/uuid"
)

type TaskRepositoryMemory struct {
	mu    sync.RWMutex
	tasks []*entities.Task
}

func NewTaskRepositoryMemory() *TaskRepositoryMemory {
	return &TaskRepositoryMemory{}
}

func (r *TaskRepositoryMemory) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	taskCopy := *task
	r.tasks = append(r.tasks, &taskCopy)
	return nil
}

func (r *TaskRepositoryMemory) List(ctx context.Context) ([]*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		taskCopy := *task
		out = append(out, &taskCopy)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

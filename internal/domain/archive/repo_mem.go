package archive

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memRepo is an in-memory Repository for development and tests.
type memRepo struct {
	mu    sync.RWMutex
	cases map[string]*ArchivedCase
}

func NewRepoMem() Repository {
	return &memRepo{cases: make(map[string]*ArchivedCase)}
}

func (r *memRepo) Create(ctx context.Context, a *ArchivedCase) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	cp := *a
	r.mu.Lock()
	r.cases[a.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*ArchivedCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.cases[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*ArchivedCase, int, error) {
	r.mu.RLock()
	all := make([]*ArchivedCase, 0, len(r.cases))
	for _, a := range r.cases {
		cp := *a
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].StartedAt > all[j].StartedAt })

	total := len(all)
	if offset >= total {
		return []*ArchivedCase{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[id]; !ok {
		return ErrNotFound
	}
	delete(r.cases, id)
	return nil
}

package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/audit"
)

type auditRepository struct {
	mutex   sync.RWMutex
	entries []audit.Entry
}

func NewAuditRepository() audit.Repository {
	return &auditRepository{}
}

func (repo *auditRepository) CreateEntry(_ context.Context, e audit.Entry) (audit.Entry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	e.ID = newID()
	repo.entries = append(repo.entries, e)
	return e, nil
}

func (repo *auditRepository) QueryAllEntries(_ context.Context) ([]audit.Entry, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]audit.Entry, len(repo.entries))
	copy(out, repo.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/escalation"
)

type escalationRepository struct {
	mutex sync.RWMutex
	escs  []escalation.Escalation
}

func NewEscalationRepository() escalation.Repository {
	return &escalationRepository{}
}

func (repo *escalationRepository) CreateEscalation(_ context.Context, esc escalation.Escalation) (escalation.Escalation, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	esc.ID = newID()
	repo.escs = append(repo.escs, esc)
	return esc, nil
}

func (repo *escalationRepository) QueryAllEscalations(_ context.Context) ([]escalation.Escalation, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]escalation.Escalation, len(repo.escs))
	copy(out, repo.escs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *escalationRepository) GetEscalationByID(_ context.Context, id string) (escalation.Escalation, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, esc := range repo.escs {
		if esc.ID == id {
			return esc, nil
		}
	}
	return escalation.Escalation{}, escalation.ErrNotFound
}

func (repo *escalationRepository) UpdateEscalation(_ context.Context, esc escalation.Escalation) (escalation.Escalation, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.escs {
		if repo.escs[i].ID == esc.ID {
			repo.escs[i] = esc
			return esc, nil
		}
	}
	return escalation.Escalation{}, escalation.ErrNotFound
}

func (repo *escalationRepository) DeleteEscalationByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.escs[:0]
	for _, esc := range repo.escs {
		if esc.ID != id {
			out = append(out, esc)
		}
	}
	repo.escs = out
	return nil
}

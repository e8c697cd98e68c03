package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/query"
)

type queryRepository struct {
	mutex   sync.RWMutex
	queries []query.Query
}

func NewQueryRepository() query.Repository {
	return &queryRepository{}
}

func (repo *queryRepository) CreateQuery(_ context.Context, q query.Query) (query.Query, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	q.ID = newID()
	repo.queries = append(repo.queries, q)
	return q, nil
}

func (repo *queryRepository) QueryAllQueries(_ context.Context) ([]query.Query, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]query.Query, len(repo.queries))
	copy(out, repo.queries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *queryRepository) GetQueryByID(_ context.Context, id string) (query.Query, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, q := range repo.queries {
		if q.ID == id {
			return q, nil
		}
	}
	return query.Query{}, query.ErrNotFound
}

func (repo *queryRepository) UpdateQuery(_ context.Context, q query.Query) (query.Query, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.queries {
		if repo.queries[i].ID == q.ID {
			repo.queries[i] = q
			return q, nil
		}
	}
	return query.Query{}, query.ErrNotFound
}

func (repo *queryRepository) DeleteQueryByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.queries[:0]
	for _, q := range repo.queries {
		if q.ID != id {
			out = append(out, q)
		}
	}
	repo.queries = out
	return nil
}

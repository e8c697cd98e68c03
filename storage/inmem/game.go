package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/game"
)

type gameRepository struct {
	mutex    sync.RWMutex
	games    []game.Game
	sessions []game.Session
}

func NewGameRepository() game.Repository {
	return &gameRepository{}
}

func (repo *gameRepository) CreateGame(_ context.Context, g game.Game) (game.Game, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	g.ID = newID()
	repo.games = append(repo.games, g)
	return g, nil
}

func (repo *gameRepository) QueryAllGames(_ context.Context) ([]game.Game, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]game.Game, len(repo.games))
	copy(out, repo.games)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *gameRepository) GetGameByID(_ context.Context, id string) (game.Game, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, g := range repo.games {
		if g.ID == id {
			return g, nil
		}
	}
	return game.Game{}, game.ErrNotFound
}

func (repo *gameRepository) DeleteGameByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.games[:0]
	for _, g := range repo.games {
		if g.ID != id {
			out = append(out, g)
		}
	}
	repo.games = out
	return nil
}

func (repo *gameRepository) CreateSession(_ context.Context, s game.Session) (game.Session, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	s.ID = newID()
	repo.sessions = append(repo.sessions, s)
	return s, nil
}

func (repo *gameRepository) QuerySessionsByUser(_ context.Context, userID string) ([]game.Session, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]game.Session, 0, len(repo.sessions))
	for _, s := range repo.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

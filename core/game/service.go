package game

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var ErrNotFound = errors.New("game not found")

type (
	Repository interface {
		CreateGame(ctx context.Context, g Game) (Game, error)
		QueryAllGames(ctx context.Context) ([]Game, error)
		GetGameByID(ctx context.Context, id string) (Game, error)
		DeleteGameByID(ctx context.Context, id string) error
		CreateSession(ctx context.Context, s Session) (Session, error)
		QuerySessionsByUser(ctx context.Context, userID string) ([]Session, error)
	}

	// Service exposes quiz games and play sessions over the remote store.
	// Game authoring is admin-only; recording a session needs any identity.
	// Session mutations invalidate both "games" and "user-game-stats".
	Service struct {
		repo  Repository
		idp   auth.IdentityProvider
		cache core.Invalidator
	}
)

func NewService(repo Repository, idp auth.IdentityProvider, cache core.Invalidator) *Service {
	return &Service{repo: repo, idp: idp, cache: cache}
}

func (svc *Service) Query(ctx context.Context) ([]Game, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Game{}, nil
	}
	return svc.repo.QueryAllGames(ctx)
}

func (svc *Service) Create(ctx context.Context, ng NewGame) (Game, error) {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return Game{}, err
	}
	g := Game{
		Title:       ng.Title,
		Description: ng.Description,
		Topic:       ng.Topic,
		Questions:   ng.Questions,
		PassScore:   ng.PassScore,
		IsActive:    true,
		CreatedBy:   ident.ID,
		CreatedAt:   time.Now().UTC(),
	}
	g, err = svc.repo.CreateGame(ctx, g)
	if err != nil {
		return Game{}, core.NewRemoteStoreError("create", "game", err)
	}
	svc.cache.Invalidate(core.CacheGames, core.CacheUserGameStats)
	return g, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.repo.DeleteGameByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", "game", err)
	}
	svc.cache.Invalidate(core.CacheGames, core.CacheUserGameStats)
	return nil
}

// RecordSession stores a finished play-through for the current identity.
func (svc *Service) RecordSession(ctx context.Context, ns NewSession) (Session, error) {
	ident, err := auth.RequireIdentity(ctx, svc.idp)
	if err != nil {
		return Session{}, err
	}

	g, err := svc.repo.GetGameByID(ctx, ns.GameID)
	if err != nil {
		return Session{}, ErrNotFound
	}

	s := Session{
		GameID:      g.ID,
		UserID:      ident.ID,
		Score:       ns.Score,
		Total:       ns.Total,
		Passed:      percent(ns.Score, ns.Total) >= g.PassScore,
		CompletedAt: time.Now().UTC(),
	}
	s, err = svc.repo.CreateSession(ctx, s)
	if err != nil {
		return Session{}, core.NewRemoteStoreError("create", "game session", err)
	}
	svc.cache.Invalidate(core.CacheGames, core.CacheUserGameStats)
	return s, nil
}

// UserStats aggregates the current identity's sessions.
func (svc *Service) UserStats(ctx context.Context) (Stats, error) {
	ident, err := auth.RequireIdentity(ctx, svc.idp)
	if err != nil {
		return Stats{}, err
	}
	sessions, err := svc.repo.QuerySessionsByUser(ctx, ident.ID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{UserID: ident.ID}
	var scoreSum int
	for _, s := range sessions {
		stats.Played++
		if s.Passed {
			stats.Passed++
		}
		pct := percent(s.Score, s.Total)
		if pct > stats.BestScore {
			stats.BestScore = pct
		}
		scoreSum += pct
	}
	if stats.Played > 0 {
		stats.AverageScore = scoreSum / stats.Played
	}
	return stats, nil
}

func percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return score * 100 / total
}

package game_test

import (
	"context"
	"testing"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/game"
	cachesvc "github.com/Reema362/learn-spark-lms-sub001/services/cache"
	inmemdb "github.com/Reema362/learn-spark-lms-sub001/storage/inmem"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

func newSvc() (*game.Service, *cachesvc.MemoryInvalidator) {
	cache := cachesvc.NewMemoryInvalidator()
	svc := game.NewService(inmemdb.NewGameRepository(), testutil.Provider{}, cache)
	return svc, cache
}

func createGame(t *testing.T, svc *game.Service, title string, passScore int) game.Game {
	t.Helper()
	g, err := svc.Create(testutil.CtxWith(testutil.Admin), game.NewGame{
		Title:     title,
		Topic:     "phishing",
		Questions: 10,
		PassScore: passScore,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return g
}

func TestService_Create(t *testing.T) {
	svc, cache := newSvc()

	if _, err := svc.Create(testutil.CtxWith(testutil.Learner), game.NewGame{Title: "Spot the Phish", Questions: 5}); !core.IsPermissionDenied(err) {
		t.Errorf("Create() error = %v, want permission denied", err)
	}

	g := createGame(t, svc, "Spot the Phish", 70)
	if !g.IsActive {
		t.Error("expected the game to be active")
	}
	if g.CreatedBy != testutil.Admin.ID {
		t.Errorf("CreatedBy = %s; want %s", g.CreatedBy, testutil.Admin.ID)
	}
	keys := cache.Invalidated()
	if len(keys) != 2 || keys[0] != core.CacheGames || keys[1] != core.CacheUserGameStats {
		t.Errorf("invalidated keys = %v; want [%s %s]", keys, core.CacheGames, core.CacheUserGameStats)
	}
}

func TestService_RecordSession(t *testing.T) {
	svc, _ := newSvc()
	g := createGame(t, svc, "Spot the Phish", 70)
	learnerCtx := testutil.CtxWith(testutil.Learner)

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.RecordSession(context.Background(), game.NewSession{GameID: g.ID, Score: 8, Total: 10})
		if !core.IsPermissionDenied(err) {
			t.Errorf("RecordSession() error = %v, want permission denied", err)
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := svc.RecordSession(learnerCtx, game.NewSession{GameID: "lol", Score: 8, Total: 10})
		if err != game.ErrNotFound {
			t.Errorf("RecordSession() error = %v, want %v", err, game.ErrNotFound)
		}
	})

	tests := []struct {
		name         string
		score, total int
		wantPassed   bool
	}{
		{name: "above pass score", score: 8, total: 10, wantPassed: true},
		{name: "exactly pass score", score: 7, total: 10, wantPassed: true},
		{name: "below pass score", score: 6, total: 10, wantPassed: false},
		{name: "zero total never passes", score: 5, total: 0, wantPassed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := svc.RecordSession(learnerCtx, game.NewSession{GameID: g.ID, Score: tt.score, Total: tt.total})
			if err != nil {
				t.Fatalf("RecordSession() failed: %v", err)
			}
			if s.Passed != tt.wantPassed {
				t.Errorf("Passed = %v; want %v", s.Passed, tt.wantPassed)
			}
			if s.UserID != testutil.Learner.ID {
				t.Errorf("UserID = %s; want %s", s.UserID, testutil.Learner.ID)
			}
		})
	}
}

func TestService_UserStats(t *testing.T) {
	svc, _ := newSvc()
	g := createGame(t, svc, "Spot the Phish", 70)
	learnerCtx := testutil.CtxWith(testutil.Learner)

	t.Run("no sessions", func(t *testing.T) {
		stats, err := svc.UserStats(learnerCtx)
		if err != nil {
			t.Fatalf("UserStats() failed: %v", err)
		}
		if stats.Played != 0 || stats.BestScore != 0 || stats.AverageScore != 0 {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})

	for _, s := range []game.NewSession{
		{GameID: g.ID, Score: 9, Total: 10}, // 90, passed
		{GameID: g.ID, Score: 7, Total: 10}, // 70, passed
		{GameID: g.ID, Score: 5, Total: 10}, // 50
	} {
		if _, err := svc.RecordSession(learnerCtx, s); err != nil {
			t.Fatalf("RecordSession() failed: %v", err)
		}
	}
	// another user's sessions are not counted
	if _, err := svc.RecordSession(testutil.CtxWith(testutil.Admin), game.NewSession{GameID: g.ID, Score: 10, Total: 10}); err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	stats, err := svc.UserStats(learnerCtx)
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}
	want := game.Stats{UserID: testutil.Learner.ID, Played: 3, Passed: 2, BestScore: 90, AverageScore: 70}
	if stats != want {
		t.Errorf("UserStats() = %+v; want %+v", stats, want)
	}
}

func TestService_Query(t *testing.T) {
	svc, _ := newSvc()
	createGame(t, svc, "Spot the Phish", 70)

	games, err := svc.Query(testutil.CtxWith(testutil.Learner))
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(games) != 1 {
		t.Errorf("len(games) = %d; want 1", len(games))
	}

	games, err = svc.Query(testutil.CtxWith(testutil.DemoAdmin))
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("len(games) = %d; want 0 for demo", len(games))
	}
}

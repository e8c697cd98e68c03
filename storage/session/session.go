// Package session persists the signed-in identity in the local key-value
// store so a session survives process restarts.
package session

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
)

// Storage keys, shared with the frontend's local session cache.
const (
	userKey      = "avocop_user"
	timestampKey = "avocop_session_timestamp"
)

// Store saves the session record as two entries: the identity document and
// a separate creation timestamp (unix milliseconds).
type Store struct {
	kv kvstore.Store
}

var _ auth.SessionStore = (*Store)(nil)

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Save(sess auth.Session) error {
	raw, err := json.Marshal(sess.Identity)
	if err != nil {
		return errors.Wrap(err, "encoding identity")
	}
	if err = s.kv.Set(userKey, string(raw)); err != nil {
		return errors.Wrap(err, "saving identity")
	}
	ts := strconv.FormatInt(sess.CreatedAt.UnixMilli(), 10)
	return errors.Wrap(s.kv.Set(timestampKey, ts), "saving timestamp")
}

func (s *Store) Get() (auth.Session, error) {
	raw, ok := s.kv.Get(userKey)
	if !ok {
		return auth.Session{}, auth.ErrNoSession
	}

	var sess auth.Session
	if err := json.Unmarshal([]byte(raw), &sess.Identity); err != nil {
		// unreadable record, treat as absent
		_ = s.Clear()
		return auth.Session{}, auth.ErrNoSession
	}

	if ts, ok := s.kv.Get(timestampKey); ok {
		ms, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			_ = s.Clear()
			return auth.Session{}, auth.ErrNoSession
		}
		sess.CreatedAt = time.UnixMilli(ms).UTC()
	}
	return sess, nil
}

func (s *Store) Clear() error {
	if err := s.kv.Remove(userKey); err != nil {
		return errors.Wrap(err, "clearing identity")
	}
	return errors.Wrap(s.kv.Remove(timestampKey), "clearing timestamp")
}

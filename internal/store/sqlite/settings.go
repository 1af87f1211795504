package sqlite

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/maloquacious/apprater/internal/logger"
	"github.com/maloquacious/apprater/internal/store"
)

// Settings implements store.Settings on the preferences table.
type Settings struct {
	db        *sql.DB
	namespace string
	log       logger.Logger
}

var _ store.Settings = (*Settings)(nil)

func (s *Settings) FirstLaunchDate() int64 {
	v, ok := s.get(store.KeyFirstLaunchDate)
	if !ok {
		return store.NotSet
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		s.log.Error("sqlite: bad %s value %q: %v", store.KeyFirstLaunchDate, v, err)
		return store.NotSet
	}
	return ms
}

func (s *Settings) SetFirstLaunchDate(ms int64) {
	s.set(store.KeyFirstLaunchDate, strconv.FormatInt(ms, 10))
}

func (s *Settings) LaunchCount() int {
	v, ok := s.get(store.KeyLaunchCount)
	if !ok {
		return store.NotSet
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.log.Error("sqlite: bad %s value %q: %v", store.KeyLaunchCount, v, err)
		return store.NotSet
	}
	return n
}

func (s *Settings) SetLaunchCount(n int) {
	s.set(store.KeyLaunchCount, strconv.Itoa(n))
}

func (s *Settings) DoNotShowAgain() bool {
	v, ok := s.get(store.KeyDoNotShowAgain)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		s.log.Error("sqlite: bad %s value %q: %v", store.KeyDoNotShowAgain, v, err)
		return false
	}
	return b
}

func (s *Settings) SetDoNotShowAgain(v bool) {
	s.set(store.KeyDoNotShowAgain, strconv.FormatBool(v))
}

// get reports false for missing rows and for read failures.
func (s *Settings) get(key string) (string, bool) {
	if s.db == nil {
		s.log.Error("sqlite: read %s/%s: database not opened", s.namespace, key)
		return "", false
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE namespace = ? AND key = ?`, s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.log.Error("sqlite: read %s/%s: %v", s.namespace, key, err)
		return "", false
	}
	return value, true
}

func (s *Settings) set(key, value string) {
	if s.db == nil {
		s.log.Error("sqlite: write %s/%s: database not opened", s.namespace, key)
		return
	}
	_, err := s.db.Exec(
		`INSERT INTO preferences (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		s.namespace, key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		s.log.Error("sqlite: write %s/%s: %v", s.namespace, key, err)
		return
	}
	s.log.Debug("sqlite: %s/%s = %s", s.namespace, key, value)
}

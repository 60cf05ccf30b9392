package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/fortuneworks/fortune/pkg/cache"
	"github.com/fortuneworks/fortune/pkg/fortune"
	"github.com/fortuneworks/fortune/pkg/store"
)

// Service combines the in-memory store with the optional external cache.
//
// Precedence policy: point lookups consult the cache first and refresh the
// store on a hit; listing is store-only. Creates write through to the cache
// best-effort before committing to the store. Cache failures are logged and
// swallowed; they degrade durability and freshness but never fail a request.
type Service struct {
	store *store.Store
	cache cache.Cache // nil when the external layer is disabled
}

// New creates a Service. cache may be nil; the service then serves entirely
// from the store. The cache handle is read-only after construction and is
// never replaced, so there is no reconnect path to synchronize.
func New(st *store.Store, c cache.Cache) *Service {
	return &Service{store: st, cache: c}
}

// List returns the store's current snapshot. The cache is deliberately not
// consulted here: listing is a cheap local operation and the cache is only
// authoritative for point lookups.
func (s *Service) List(ctx context.Context) []fortune.Fortune {
	return s.store.List()
}

// Get looks up a fortune by id. With a usable cache, a hit refreshes the
// store entry (refresh-on-read) and wins over the local value; any cache
// failure falls back to the store.
func (s *Service) Get(ctx context.Context, id string) (fortune.Fortune, bool) {
	if s.cache != nil {
		msg, err := s.cache.Get(ctx, id)
		if err == nil {
			f := fortune.Fortune{ID: id, Message: msg}
			s.store.Put(f)
			return f, true
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logrus.WithField("id", id).WithError(err).Warn("cache lookup failed, serving from store")
		}
	}
	return s.store.Get(id)
}

// Random picks one id uniformly from the store's current key set and
// resolves it through Get, so a cache hit may still override the stored
// message. An empty store yields not-found directly.
func (s *Service) Random(ctx context.Context) (fortune.Fortune, bool) {
	ids := s.store.IDs()
	if len(ids) == 0 {
		return fortune.Fortune{}, false
	}
	return s.Get(ctx, ids[rand.IntN(len(ids))])
}

// Create writes the fortune through to the cache best-effort, then commits
// it to the store. It never fails: a cache write error is logged and the
// local insert proceeds regardless.
func (s *Service) Create(ctx context.Context, f fortune.Fortune) fortune.Fortune {
	if s.cache != nil {
		if err := s.cache.Set(ctx, f.ID, f.Message); err != nil {
			logrus.WithField("id", f.ID).WithError(err).Warn("cache write-through failed")
		}
	}
	s.store.Put(f)
	return f
}

// LoadFromCache overlays the cache's full contents onto the store at
// startup. Errors are logged and ignored; the process continues on the
// seeded defaults.
func (s *Service) LoadFromCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	entries, err := s.cache.ListAll(ctx)
	if err != nil {
		logrus.WithError(err).Warn("failed to load fortunes from cache, keeping defaults")
		return
	}
	s.store.Overlay(entries)
	logrus.WithField("count", len(entries)).Info("loaded fortunes from cache")
}

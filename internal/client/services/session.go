package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/tutorit/internal/common"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// SessionStats is the per-role summary shown on the sessions screen.
// Completed counts follow the viewer's notion of completed, hours sum over
// those sessions, and the average rating skips unrated ones.
type SessionStats struct {
	TotalSessions      int
	CompletedSessions  int
	TotalHours         float64
	UniqueCounterparts int
	AverageRating      float64
}

// SessionService holds the in-memory session snapshot the views render from,
// keeps the sqlite mirror in sync after every successful refresh, and
// answers role-aware derived reads. The backend is the source of truth;
// mutations land here only after the server confirms them.
type SessionService interface {
	Refresh(ctx context.Context) ([]models.Session, error)
	Cached() []models.Session
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, s *models.Session)
	Remove(ctx context.Context, id string)
	Upcoming() []models.Session
	Completed(viewer models.Role) []models.Session
	Stats(viewer models.Role) SessionStats
}

type sessionService struct {
	client client.Client
	repo   sessions.Repository
	log    logging.Logger

	mu    sync.RWMutex
	cache map[string]models.Session
	gen   uint64
}

func NewSessionService(c client.Client, repo sessions.Repository, log logging.Logger) SessionService {
	return &sessionService{
		client: c,
		repo:   repo,
		log:    log,
		cache:  make(map[string]models.Session),
	}
}

// Refresh pulls the full session list from the backend and replaces both the
// in-memory snapshot and the sqlite mirror. A 403/404 from the list endpoint
// means "no sessions for this actor" and yields an empty snapshot. When the
// backend is unreachable the last mirrored snapshot is loaded instead and
// the transport error is returned alongside it so the view can flag the data
// as stale.
func (s *sessionService) Refresh(ctx context.Context) ([]models.Session, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	list, err := s.client.ListSessions(ctx)
	switch {
	case err == nil:
	case client.IsOptionalMiss(err):
		list, err = nil, nil
	case errors.Is(err, client.ErrUnavailable):
		cached, cacheErr := s.repo.GetAll(ctx)
		if cacheErr != nil {
			s.log.Warn(ctx, "session cache read failed", "error", cacheErr)
			return nil, err
		}
		s.apply(gen, cached)
		return s.Cached(), err
	default:
		return nil, err
	}

	if !s.apply(gen, list) {
		// A newer refresh finished first; keep its result.
		return s.Cached(), nil
	}
	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		s.log.Warn(ctx, "session mirror update failed", "error", err)
	}
	return s.Cached(), nil
}

// apply installs list as the snapshot unless a newer refresh has started.
func (s *sessionService) apply(gen uint64, list []models.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.cache = make(map[string]models.Session, len(list))
	for _, sess := range list {
		s.cache[sess.ID] = sess
	}
	return true
}

// Cached returns the current snapshot sorted by date, newest first.
func (s *sessionService) Cached() []models.Session {
	s.mu.RLock()
	list := make([]models.Session, 0, len(s.cache))
	for _, sess := range s.cache {
		list = append(list, sess)
	}
	s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DateTime.Equal(list[j].DateTime) {
			return list[i].DateTime.After(list[j].DateTime)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Get returns the cached record when present and fetches it otherwise.
// Lifecycle transitions depend on this reuse: a record already in the
// snapshot is complete enough to be merged and replaced without an extra
// round trip.
func (s *sessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		cp := sess
		return &cp, nil
	}

	fetched, err := s.client.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Put(ctx, fetched)
	return fetched, nil
}

// Put installs one server-confirmed record into the snapshot and the mirror.
func (s *sessionService) Put(ctx context.Context, sess *models.Session) {
	if sess == nil || sess.ID == "" {
		return
	}
	s.mu.Lock()
	s.cache[sess.ID] = *sess
	s.mu.Unlock()
	if err := s.repo.Upsert(ctx, sess); err != nil {
		s.log.Warn(ctx, "session mirror upsert failed", "id", sess.ID, "error", err)
	}
}

// Remove drops a hard-deleted record from the snapshot and the mirror.
func (s *sessionService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
	if err := s.repo.DeleteByID(ctx, id); err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.log.Warn(ctx, "session mirror delete failed", "id", id, "error", err)
	}
}

// Upcoming returns the snapshot filtered to the scheduled, upcoming and
// active states, soonest first.
func (s *sessionService) Upcoming() []models.Session {
	var out []models.Session
	for _, sess := range s.Cached() {
		if sess.IsUpcoming() {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out
}

// Completed returns the snapshot filtered to the viewer's completed states.
func (s *sessionService) Completed(viewer models.Role) []models.Session {
	var out []models.Session
	for _, sess := range s.Cached() {
		if sess.IsCompletedFor(viewer) {
			out = append(out, sess)
		}
	}
	return out
}

// Stats folds the snapshot into the viewer's summary figures. Sessions with
// missing duration contribute zero hours and unrated sessions are excluded
// from the average instead of poisoning it.
func (s *sessionService) Stats(viewer models.Role) SessionStats {
	list := s.Cached()
	stats := SessionStats{TotalSessions: len(list)}

	counterparts := make(map[string]struct{})
	ratingSum, rated := 0, 0
	for _, sess := range list {
		if cp := sess.Counterpart(viewer); cp != "" {
			counterparts[cp] = struct{}{}
		}
		if !sess.IsCompletedFor(viewer) {
			continue
		}
		stats.CompletedSessions++
		stats.TotalHours += sess.Hours()
		if sess.Rating > 0 {
			ratingSum += sess.Rating
			rated++
		}
	}
	stats.UniqueCounterparts = len(counterparts)
	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}
	return stats
}

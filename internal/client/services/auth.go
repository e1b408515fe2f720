package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// Identity is the resolved authentication state the rest of the client
// consumes. Either Authenticated is true and Role and User are populated,
// or everything is zero. There is no intermediate state.
type Identity struct {
	Authenticated bool
	Role          models.Role
	User          *models.User
}

// AuthService resolves and caches the current identity. Resolution fails
// closed: any transport error, a negative status or an unknown role all
// collapse to the unauthenticated identity and wipe the local snapshot.
type AuthService interface {
	Resolve(ctx context.Context) Identity
	Current() Identity
	Login(ctx context.Context, email, password string) (Identity, error)
	RegisterStudent(ctx context.Context, reg models.StudentRegistration) error
	RegisterTutor(ctx context.Context, reg models.TutorRegistration) error
	Logout(ctx context.Context) error
	Invalidate(ctx context.Context)
}

type authService struct {
	client   client.Client
	metadata metadata.Repository
	validate *validator.Validate
	log      logging.Logger

	mu      sync.RWMutex
	current Identity
}

func NewAuthService(c client.Client, meta metadata.Repository, log logging.Logger) AuthService {
	return &authService{
		client:   c,
		metadata: meta,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Resolve queries the backend for the authentication status and, when it is
// positive, the full user profile. Both calls must succeed and agree before
// the identity is considered authenticated.
func (s *authService) Resolve(ctx context.Context) Identity {
	status, err := s.client.AuthStatus(ctx)
	if err != nil {
		s.log.Debug(ctx, "auth status check failed", "error", err)
		return s.failClosed(ctx)
	}
	if !status.Authenticated || !status.Role.Valid() {
		return s.failClosed(ctx)
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Debug(ctx, "current user fetch failed", "error", err)
		return s.failClosed(ctx)
	}
	if !user.Role.Valid() || user.Role != status.Role {
		s.log.Warn(ctx, "identity role mismatch", "status", status.Role, "user", user.Role)
		return s.failClosed(ctx)
	}

	id := Identity{Authenticated: true, Role: user.Role, User: user}
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	s.persistSnapshot(ctx, user)
	return id
}

// Current returns the last resolved identity without touching the network.
func (s *authService) Current() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *authService) Login(ctx context.Context, email, password string) (Identity, error) {
	if _, err := s.client.Login(ctx, email, password); err != nil {
		return Identity{}, err
	}
	id := s.Resolve(ctx)
	if !id.Authenticated {
		return Identity{}, ErrNotLoggedIn
	}
	return id, nil
}

func (s *authService) RegisterStudent(ctx context.Context, reg models.StudentRegistration) error {
	if err := s.validate.Struct(reg); err != nil {
		return err
	}
	return s.client.RegisterStudent(ctx, reg)
}

func (s *authService) RegisterTutor(ctx context.Context, reg models.TutorRegistration) error {
	if err := s.validate.Struct(reg); err != nil {
		return err
	}
	return s.client.RegisterTutor(ctx, reg)
}

// Logout ends the server session and always clears local state, even when
// the server call fails.
func (s *authService) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	s.failClosed(ctx)
	return err
}

// Invalidate drops the cached identity so the next Resolve hits the backend.
func (s *authService) Invalidate(ctx context.Context) {
	s.failClosed(ctx)
}

func (s *authService) failClosed(ctx context.Context) Identity {
	s.mu.Lock()
	s.current = Identity{}
	s.mu.Unlock()
	if err := s.metadata.Delete(ctx, metadata.KeyIdentity); err != nil {
		s.log.Debug(ctx, "identity snapshot wipe failed", "error", err)
	}
	return Identity{}
}

func (s *authService) persistSnapshot(ctx context.Context, user *models.User) {
	b, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.metadata.Set(ctx, metadata.KeyIdentity, string(b)); err != nil {
		s.log.Debug(ctx, "identity snapshot save failed", "error", err)
		return
	}
	if err := s.metadata.Set(ctx, metadata.KeyLastRefresh, time.Now().UTC().Format(time.RFC3339)); err != nil {
		s.log.Debug(ctx, "refresh timestamp save failed", "error", err)
	}
}

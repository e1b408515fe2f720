package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/common"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

var errFakeNotWired = errors.New("fake: method not wired")

// fakeClient implements client.Client with per-method function fields so
// each test wires only what it exercises.
type fakeClient struct {
	LoginFunc           func(ctx context.Context, email, password string) (models.Role, error)
	RegisterStudentFunc func(ctx context.Context, reg models.StudentRegistration) error
	RegisterTutorFunc   func(ctx context.Context, reg models.TutorRegistration) error
	LogoutFunc          func(ctx context.Context) error
	AuthStatusFunc      func(ctx context.Context) (*models.AuthStatus, error)
	CurrentUserFunc     func(ctx context.Context) (*models.User, error)

	ListTutorsFunc     func(ctx context.Context) ([]models.TutorProfile, error)
	GetTutorFunc       func(ctx context.Context, id int64) (*models.TutorProfile, error)
	ReplaceTutorFunc   func(ctx context.Context, t models.TutorProfile) (*models.TutorProfile, error)
	FeaturedTutorsFunc func(ctx context.Context) ([]models.TutorProfile, error)
	TutorStatsFunc     func(ctx context.Context) (*models.TutorStats, error)

	ListSessionsFunc   func(ctx context.Context) ([]models.Session, error)
	GetSessionFunc     func(ctx context.Context, id string) (*models.Session, error)
	CreateSessionFunc  func(ctx context.Context, s models.Session) (*models.Session, error)
	ReplaceSessionFunc func(ctx context.Context, s models.Session) (*models.Session, error)
	DeleteSessionFunc  func(ctx context.Context, id string) error

	DashboardStatsFunc func(ctx context.Context) (*models.DashboardStats, error)
	ActiveSessionFunc  func(ctx context.Context) (*models.Session, error)

	CreateConversationFunc func(ctx context.Context, req models.ConversationRequest) (*models.Conversation, bool, error)
	ListConversationsFunc  func(ctx context.Context) ([]models.Conversation, error)
	ListMessagesFunc       func(ctx context.Context, conversationID int64) ([]models.Message, error)
	SendMessageFunc        func(ctx context.Context, conversationID int64, text string) (*models.Message, error)
	DeleteMessageFunc      func(ctx context.Context, messageID int64) error
	ReactToMessageFunc     func(ctx context.Context, messageID int64, emoji string) (*models.Message, error)
}

func (f *fakeClient) Close() error                   { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.Role, error) {
	if f.LoginFunc == nil {
		return "", errFakeNotWired
	}
	return f.LoginFunc(ctx, email, password)
}

func (f *fakeClient) RegisterStudent(ctx context.Context, reg models.StudentRegistration) error {
	if f.RegisterStudentFunc == nil {
		return errFakeNotWired
	}
	return f.RegisterStudentFunc(ctx, reg)
}

func (f *fakeClient) RegisterTutor(ctx context.Context, reg models.TutorRegistration) error {
	if f.RegisterTutorFunc == nil {
		return errFakeNotWired
	}
	return f.RegisterTutorFunc(ctx, reg)
}

func (f *fakeClient) Logout(ctx context.Context) error {
	if f.LogoutFunc == nil {
		return nil
	}
	return f.LogoutFunc(ctx)
}

func (f *fakeClient) AuthStatus(ctx context.Context) (*models.AuthStatus, error) {
	if f.AuthStatusFunc == nil {
		return nil, errFakeNotWired
	}
	return f.AuthStatusFunc(ctx)
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	if f.CurrentUserFunc == nil {
		return nil, errFakeNotWired
	}
	return f.CurrentUserFunc(ctx)
}

func (f *fakeClient) ListTutors(ctx context.Context) ([]models.TutorProfile, error) {
	if f.ListTutorsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ListTutorsFunc(ctx)
}

func (f *fakeClient) GetTutor(ctx context.Context, id int64) (*models.TutorProfile, error) {
	if f.GetTutorFunc == nil {
		return nil, errFakeNotWired
	}
	return f.GetTutorFunc(ctx, id)
}

func (f *fakeClient) ReplaceTutor(ctx context.Context, t models.TutorProfile) (*models.TutorProfile, error) {
	if f.ReplaceTutorFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ReplaceTutorFunc(ctx, t)
}

func (f *fakeClient) FeaturedTutors(ctx context.Context) ([]models.TutorProfile, error) {
	if f.FeaturedTutorsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.FeaturedTutorsFunc(ctx)
}

func (f *fakeClient) TutorStats(ctx context.Context) (*models.TutorStats, error) {
	if f.TutorStatsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.TutorStatsFunc(ctx)
}

func (f *fakeClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	if f.ListSessionsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ListSessionsFunc(ctx)
}

func (f *fakeClient) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if f.GetSessionFunc == nil {
		return nil, errFakeNotWired
	}
	return f.GetSessionFunc(ctx, id)
}

func (f *fakeClient) CreateSession(ctx context.Context, s models.Session) (*models.Session, error) {
	if f.CreateSessionFunc == nil {
		return nil, errFakeNotWired
	}
	return f.CreateSessionFunc(ctx, s)
}

func (f *fakeClient) ReplaceSession(ctx context.Context, s models.Session) (*models.Session, error) {
	if f.ReplaceSessionFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ReplaceSessionFunc(ctx, s)
}

func (f *fakeClient) DeleteSession(ctx context.Context, id string) error {
	if f.DeleteSessionFunc == nil {
		return errFakeNotWired
	}
	return f.DeleteSessionFunc(ctx, id)
}

func (f *fakeClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if f.DashboardStatsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.DashboardStatsFunc(ctx)
}

func (f *fakeClient) ActiveSession(ctx context.Context) (*models.Session, error) {
	if f.ActiveSessionFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ActiveSessionFunc(ctx)
}

func (f *fakeClient) CreateConversation(ctx context.Context, req models.ConversationRequest) (*models.Conversation, bool, error) {
	if f.CreateConversationFunc == nil {
		return nil, false, errFakeNotWired
	}
	return f.CreateConversationFunc(ctx, req)
}

func (f *fakeClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	if f.ListConversationsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ListConversationsFunc(ctx)
}

func (f *fakeClient) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	if f.ListMessagesFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ListMessagesFunc(ctx, conversationID)
}

func (f *fakeClient) SendMessage(ctx context.Context, conversationID int64, text string) (*models.Message, error) {
	if f.SendMessageFunc == nil {
		return nil, errFakeNotWired
	}
	return f.SendMessageFunc(ctx, conversationID, text)
}

func (f *fakeClient) DeleteMessage(ctx context.Context, messageID int64) error {
	if f.DeleteMessageFunc == nil {
		return errFakeNotWired
	}
	return f.DeleteMessageFunc(ctx, messageID)
}

func (f *fakeClient) ReactToMessage(ctx context.Context, messageID int64, emoji string) (*models.Message, error) {
	if f.ReactToMessageFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ReactToMessageFunc(ctx, messageID, emoji)
}

// fakeAuth pins the identity a lifecycle test acts under.
type fakeAuth struct {
	id Identity
}

func (f *fakeAuth) Resolve(ctx context.Context) Identity { return f.id }
func (f *fakeAuth) Current() Identity                    { return f.id }
func (f *fakeAuth) Login(ctx context.Context, email, password string) (Identity, error) {
	return f.id, nil
}
func (f *fakeAuth) RegisterStudent(ctx context.Context, reg models.StudentRegistration) error {
	return nil
}
func (f *fakeAuth) RegisterTutor(ctx context.Context, reg models.TutorRegistration) error {
	return nil
}
func (f *fakeAuth) Logout(ctx context.Context) error { return nil }
func (f *fakeAuth) Invalidate(ctx context.Context)   {}

// fakeSessionsRepo is an in-memory sessions.Repository.
type fakeSessionsRepo struct {
	mu   sync.Mutex
	data map[string]models.Session
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{data: make(map[string]models.Session)}
}

func (r *fakeSessionsRepo) Upsert(ctx context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = *s
	return nil
}

func (r *fakeSessionsRepo) GetAll(ctx context.Context) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Session, 0, len(r.data))
	for _, s := range r.data {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionsRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *fakeSessionsRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

func (r *fakeSessionsRepo) ReplaceAll(ctx context.Context, all []models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string]models.Session, len(all))
	for _, s := range all {
		r.data[s.ID] = s
	}
	return nil
}

// fakeMetadataRepo is an in-memory metadata.Repository.
type fakeMetadataRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeMetadataRepo() *fakeMetadataRepo {
	return &fakeMetadataRepo{data: make(map[string]string)}
}

func (r *fakeMetadataRepo) Get(ctx context.Context, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[name]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}

func (r *fakeMetadataRepo) Set(ctx context.Context, name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[name] = value
	return nil
}

func (r *fakeMetadataRepo) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, name)
	return nil
}

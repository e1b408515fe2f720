package client

import (
	"context"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

// Client is the transport-agnostic contract against the TutorIT backend.
// The concrete implementation is RESTClient; tests provide fakes.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// Identity.
	Login(ctx context.Context, email, password string) (models.Role, error)
	RegisterStudent(ctx context.Context, reg models.StudentRegistration) error
	RegisterTutor(ctx context.Context, reg models.TutorRegistration) error
	Logout(ctx context.Context) error
	AuthStatus(ctx context.Context) (*models.AuthStatus, error)
	CurrentUser(ctx context.Context) (*models.User, error)

	// Tutor directory.
	ListTutors(ctx context.Context) ([]models.TutorProfile, error)
	GetTutor(ctx context.Context, id int64) (*models.TutorProfile, error)
	ReplaceTutor(ctx context.Context, t models.TutorProfile) (*models.TutorProfile, error)
	FeaturedTutors(ctx context.Context) ([]models.TutorProfile, error)
	TutorStats(ctx context.Context) (*models.TutorStats, error)

	// Tutoring sessions. ReplaceSession overwrites the whole record; callers
	// must submit a complete Session (see models.Session.MissingReplaceFields).
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	CreateSession(ctx context.Context, s models.Session) (*models.Session, error)
	ReplaceSession(ctx context.Context, s models.Session) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Dashboard aggregates (optional reads; 403/404 map to ErrNotFound).
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	ActiveSession(ctx context.Context) (*models.Session, error)

	// Conversations and messages. CreateConversation is idempotent by
	// participant pair; the bool result is true only when a new conversation
	// was actually created.
	CreateConversation(ctx context.Context, req models.ConversationRequest) (*models.Conversation, bool, error)
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID int64, text string) (*models.Message, error)
	DeleteMessage(ctx context.Context, messageID int64) error
	ReactToMessage(ctx context.Context, messageID int64, emoji string) (*models.Message, error)
}

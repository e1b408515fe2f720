package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// ConversationService manages the message threads of the current user: the
// conversation list, the messages of the selected thread, sending, the
// soft-delete rules and reaction toggling. Message state always follows the
// server's responses; the thread is re-rendered from local state afterwards.
type ConversationService interface {
	// CreateOrGet opens the thread with a tutor, creating it if it does not
	// exist yet. The bool result is true only on first creation.
	CreateOrGet(ctx context.Context, req models.ConversationRequest) (*models.Conversation, bool, error)

	Conversations(ctx context.Context) ([]models.Conversation, error)

	// Select makes a conversation the active thread and loads its messages.
	Select(ctx context.Context, conversationID int64) ([]models.Message, error)

	// RefreshMessages reloads the active thread.
	RefreshMessages(ctx context.Context) ([]models.Message, error)

	Messages() []models.Message
	Send(ctx context.Context, text string) (*models.Message, error)

	// Delete soft-deletes one of the user's own messages. The confirmed flag
	// must be set by the caller after an explicit prompt.
	Delete(ctx context.Context, messageID int64, confirmed bool) error

	// React toggles an emoji reaction on a message: same emoji removes it,
	// a different one replaces it.
	React(ctx context.Context, messageID int64, emoji string) (*models.Message, error)
}

type conversationService struct {
	client client.Client
	log    logging.Logger

	mu       sync.RWMutex
	activeID int64
	messages []models.Message
	gen      uint64
}

func NewConversationService(c client.Client, log logging.Logger) ConversationService {
	return &conversationService{client: c, log: log}
}

func (s *conversationService) CreateOrGet(ctx context.Context, req models.ConversationRequest) (*models.Conversation, bool, error) {
	conv, created, err := s.client.CreateConversation(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.Info(ctx, "conversation created", "id", conv.ID, "tutor", conv.Name)
	}
	return conv, created, nil
}

func (s *conversationService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	list, err := s.client.ListConversations(ctx)
	if err != nil {
		if client.IsOptionalMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (s *conversationService) Select(ctx context.Context, conversationID int64) ([]models.Message, error) {
	s.mu.Lock()
	s.activeID = conversationID
	s.messages = nil
	s.gen++
	s.mu.Unlock()
	return s.RefreshMessages(ctx)
}

// RefreshMessages reloads the active thread. A reload that finishes after
// the user has switched threads is discarded so a slow response can never
// overwrite the newer thread's messages.
func (s *conversationService) RefreshMessages(ctx context.Context) ([]models.Message, error) {
	s.mu.RLock()
	id := s.activeID
	gen := s.gen
	s.mu.RUnlock()
	if id == 0 {
		return nil, ErrNoActiveConversation
	}

	list, err := s.client.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return s.snapshotLocked(), nil
	}
	s.messages = list
	return s.snapshotLocked(), nil
}

// Messages returns the current thread snapshot.
func (s *conversationService) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *conversationService) snapshotLocked() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send posts a message to the active thread. Blank input never reaches the
// network. If the user switches threads while the send is in flight, the
// confirmed message is still returned but not appended to the newly selected
// thread.
func (s *conversationService) Send(ctx context.Context, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	s.mu.RLock()
	id := s.activeID
	gen := s.gen
	s.mu.RUnlock()
	if id == 0 {
		return nil, ErrNoActiveConversation
	}

	msg, err := s.client.SendMessage(ctx, id, text)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if gen == s.gen && id == s.activeID {
		s.messages = append(s.messages, *msg)
	}
	s.mu.Unlock()
	return msg, nil
}

// Delete soft-deletes one of the user's own messages after confirmation.
// The message keeps its position in the thread; its text becomes the fixed
// placeholder and any reaction is removed. Deleting an already deleted
// message or someone else's message is rejected locally.
func (s *conversationService) Delete(ctx context.Context, messageID int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	s.mu.RLock()
	idx := s.indexLocked(messageID)
	if idx < 0 {
		s.mu.RUnlock()
		return ErrMessageNotFound
	}
	msg := s.messages[idx]
	s.mu.RUnlock()

	if !msg.IsMe {
		return ErrNotOwnMessage
	}
	if msg.IsDeleted {
		return ErrMessageDeleted
	}

	if err := s.client.DeleteMessage(ctx, messageID); err != nil {
		return err
	}

	s.mu.Lock()
	if idx := s.indexLocked(messageID); idx >= 0 {
		s.messages[idx].MarkDeleted()
	}
	s.mu.Unlock()
	return nil
}

// React toggles a reaction. Reacting to a deleted message is rejected
// locally. The reaction endpoint stores the submitted emoji verbatim, with
// the empty string meaning "clear", so the toggle is decided here: repeating
// the message's current reaction sends the clear.
func (s *conversationService) React(ctx context.Context, messageID int64, emoji string) (*models.Message, error) {
	s.mu.RLock()
	idx := s.indexLocked(messageID)
	var current *models.Message
	if idx >= 0 {
		cp := s.messages[idx]
		current = &cp
	}
	s.mu.RUnlock()

	if current != nil && current.IsDeleted {
		return nil, ErrMessageDeleted
	}
	if current != nil && current.Reaction == emoji {
		emoji = ""
	}

	msg, err := s.client.ReactToMessage(ctx, messageID, emoji)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if idx := s.indexLocked(messageID); idx >= 0 {
		s.messages[idx] = *msg
	}
	s.mu.Unlock()
	return msg, nil
}

func (s *conversationService) indexLocked(messageID int64) int {
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			return i
		}
	}
	return -1
}

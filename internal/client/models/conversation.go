package models

// DeletedMessagePlaceholder replaces the text of a soft-deleted message.
// The counterpart still sees the message at its original position.
const DeletedMessagePlaceholder = "This message was deleted"

// Presence labels used by the conversation list.
const (
	PresenceOnline  = "Online now"
	PresenceOffline = "Offline"
)

// Conversation is a persistent messaging thread between the current user and
// a tutor. One conversation exists per (student, tutor) pair; creation is
// idempotent.
type Conversation struct {
	ID          int64  `json:"id"`
	TutorID     int64  `json:"tutorId"`
	Name        string `json:"name"`
	Role        string `json:"role"` // counterpart subject label, e.g. "Mathematics"
	Presence    string `json:"status"`
	LastMessage string `json:"lastMessage"`
	Time        string `json:"time"` // backend-formatted last-activity label
	Unread      int    `json:"unread"`
}

// Online reports whether the counterpart is shown as online. Presence is a
// point-in-time snapshot taken at fetch time.
func (c Conversation) Online() bool {
	return c.Presence == PresenceOnline
}

// Message is a single chat message. Messages are ordered by arrival as
// returned by the backend; a deleted message keeps its identifier and
// position but loses its text and reaction.
type Message struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversationId,omitempty"`
	Sender         string `json:"sender"`
	SenderType     string `json:"userType,omitempty"`
	Text           string `json:"text"`
	Time           string `json:"time"`
	IsMe           bool   `json:"isMe"`
	IsDeleted      bool   `json:"isDeleted,omitempty"`
	Reaction       string `json:"reaction,omitempty"`
}

// MarkDeleted applies the soft-delete invariant in place: the text becomes
// the fixed placeholder and the reaction is removed.
func (m *Message) MarkDeleted() {
	m.IsDeleted = true
	m.Text = DeletedMessagePlaceholder
	m.Reaction = ""
}

// ConversationRequest is the payload for creating (or re-fetching) the
// conversation with a tutor.
type ConversationRequest struct {
	TutorID      int64  `json:"tutorId"`
	TutorName    string `json:"tutorName"`
	TutorSubject string `json:"tutorSubject"`
}

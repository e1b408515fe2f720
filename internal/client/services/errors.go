package services

import "errors"

var (
	// Session lifecycle errors.
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrPartialUpdate     = errors.New("partial update against full-replace endpoint")
	ErrNotStartable      = errors.New("session is not joinable yet")
	ErrRoleNotAllowed    = errors.New("action not permitted for this role")

	// Conversation errors.
	ErrEmptyMessage         = errors.New("message text is empty")
	ErrNotConfirmed         = errors.New("destructive action requires confirmation")
	ErrNotOwnMessage        = errors.New("message belongs to another participant")
	ErrMessageDeleted       = errors.New("message is deleted")
	ErrMessageNotFound      = errors.New("message not found in conversation")
	ErrNoActiveConversation = errors.New("no conversation selected")

	// Identity errors.
	ErrNotLoggedIn = errors.New("not logged in")
)

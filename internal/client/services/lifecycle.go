package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/models"
	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// BookingRequest is the validated input of the booking form.
type BookingRequest struct {
	TutorID    int64  `validate:"required,gt=0"`
	TutorName  string `validate:"required"`
	HourlyRate decimal.Decimal
	Subject    string `validate:"required"`
	Topic      string
	Date       string `validate:"required,datetime=2006-01-02"`
	Time       string `validate:"required,datetime=15:04"`
	Duration   string `validate:"required"`
	Type       string `validate:"omitempty,oneof=Online In-person"`
	Notes      string
}

// EndResult reports the outcome of leaving the session room.
// CompensationCredited is true when the actor is the tutor: exiting the room
// is the moment the tutor's earnings for the lesson are credited, regardless
// of whether the student has rated yet.
type EndResult struct {
	Session              *models.Session
	CompensationCredited bool
}

// LifecycleService drives every session state transition. All writes follow
// the same shape: load the complete current record, change only the fields
// the transition owns, verify the result is still a complete record, send it
// to the full-replace endpoint, and install the server's response. The local
// state never flips ahead of the server.
type LifecycleService interface {
	Book(ctx context.Context, req BookingRequest) (*models.Session, error)
	Start(ctx context.Context, id string) (*models.Session, error)
	Cancel(ctx context.Context, id string) (*models.Session, error)
	DeleteScheduled(ctx context.Context, id string) error
	EndRoom(ctx context.Context, id string) (*EndResult, error)
	Rate(ctx context.Context, id string, rating int, feedback string) (*models.Session, error)
}

type lifecycleService struct {
	client   client.Client
	store    SessionService
	auth     AuthService
	calc     *Calculator
	validate *validator.Validate
	log      logging.Logger
	now      func() time.Time
}

func NewLifecycleService(c client.Client, store SessionService, auth AuthService, calc *Calculator, log logging.Logger) LifecycleService {
	return &lifecycleService{
		client:   c,
		store:    store,
		auth:     auth,
		calc:     calc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

// canTransition is the single source of truth for which status changes are
// legal and which role may request them.
func canTransition(from, to models.SessionStatus, actor models.Role) bool {
	switch to {
	case models.StatusActive:
		return actor == models.RoleTutor &&
			(from == models.StatusScheduled || from == models.StatusUpcoming)
	case models.StatusCancelled:
		switch from {
		case models.StatusScheduled, models.StatusUpcoming, models.StatusActive:
			return true
		}
		return false
	case models.StatusRoomCompleted:
		return from == models.StatusActive
	case models.StatusCompleted:
		return actor == models.RoleStudent &&
			(from == models.StatusRoomCompleted || from == models.StatusCompleted)
	}
	return false
}

// Book validates the form, prices the lesson and creates a new scheduled
// session. Only students book; the record enters the local snapshot only
// after the server has assigned it an ID.
func (s *lifecycleService) Book(ctx context.Context, req BookingRequest) (*models.Session, error) {
	id := s.auth.Current()
	if !id.Authenticated {
		return nil, ErrNotLoggedIn
	}
	if id.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: only students can book sessions", ErrRoleNotAllowed)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	when, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing session time: %w", err)
	}

	quote := s.calc.QuoteFor(ctx, req.HourlyRate, req.Duration)
	sess := models.Session{
		StudentID:   strconv.FormatInt(id.User.ID, 10),
		StudentName: id.User.Name,
		TutorID:     strconv.FormatInt(req.TutorID, 10),
		TutorName:   req.TutorName,
		Subject:     req.Subject,
		Topic:       req.Topic,
		DateTime:    when,
		Duration:    s.calc.Minutes(ctx, req.Duration),
		SessionType: req.Type,
		Notes:       req.Notes,
		Status:      models.StatusScheduled,
		Price:       &quote.Total,
	}

	created, err := s.client.CreateSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	s.store.Put(ctx, created)
	s.log.Info(ctx, "session booked", "id", created.ID, "tutor", created.TutorName)
	return created, nil
}

// Start moves a joinable session to active. The tutor drives this; a session
// is joinable when it is already active or scheduled for today.
func (s *lifecycleService) Start(ctx context.Context, id string) (*models.Session, error) {
	actor := s.auth.Current()
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status == models.StatusActive {
		return sess, nil
	}
	if !sess.CanStart(s.now()) {
		return nil, ErrNotStartable
	}
	if !canTransition(sess.Status, models.StatusActive, actor.Role) {
		return nil, fmt.Errorf("%w: %s to active as %s", ErrInvalidTransition, sess.Status, actor.Role)
	}
	return s.replaceWith(ctx, sess, func(next *models.Session) {
		next.Status = models.StatusActive
	})
}

// Cancel moves any pre-terminal session to cancelled. Cancelling an already
// cancelled session is a no-op rather than an error.
func (s *lifecycleService) Cancel(ctx context.Context, id string) (*models.Session, error) {
	actor := s.auth.Current()
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status == models.StatusCancelled {
		return sess, nil
	}
	if !canTransition(sess.Status, models.StatusCancelled, actor.Role) {
		return nil, fmt.Errorf("%w: %s to cancelled", ErrInvalidTransition, sess.Status)
	}
	return s.replaceWith(ctx, sess, func(next *models.Session) {
		next.Status = models.StatusCancelled
	})
}

// DeleteScheduled removes a session that never started from the backend
// entirely. It is the hard counterpart of Cancel and only applies before the
// session goes active.
func (s *lifecycleService) DeleteScheduled(ctx context.Context, id string) error {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	switch sess.Status {
	case models.StatusScheduled, models.StatusUpcoming:
	default:
		return fmt.Errorf("%w: only scheduled sessions can be removed, not %s", ErrInvalidTransition, sess.Status)
	}
	if err := s.client.DeleteSession(ctx, id); err != nil {
		return err
	}
	s.store.Remove(ctx, id)
	return nil
}

// EndRoom records the end of the live lesson. The session moves to
// room_completed; for the tutor this is also the point their compensation
// for the lesson is credited.
func (s *lifecycleService) EndRoom(ctx context.Context, id string) (*EndResult, error) {
	actor := s.auth.Current()
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(sess.Status, models.StatusRoomCompleted, actor.Role) {
		return nil, fmt.Errorf("%w: %s to room_completed", ErrInvalidTransition, sess.Status)
	}
	updated, err := s.replaceWith(ctx, sess, func(next *models.Session) {
		next.Status = models.StatusRoomCompleted
	})
	if err != nil {
		return nil, err
	}
	return &EndResult{
		Session:              updated,
		CompensationCredited: actor.Role == models.RoleTutor,
	}, nil
}

// Rate stores the student's rating and feedback and finalizes the session.
// Rating always lands the session in completed, including when the record
// was already completed and the student is amending the feedback.
func (s *lifecycleService) Rate(ctx context.Context, id string, rating int, feedback string) (*models.Session, error) {
	actor := s.auth.Current()
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(sess.Status, models.StatusCompleted, actor.Role) {
		return nil, fmt.Errorf("%w: %s to completed as %s", ErrInvalidTransition, sess.Status, actor.Role)
	}
	return s.replaceWith(ctx, sess, func(next *models.Session) {
		next.Status = models.StatusCompleted
		next.Rating = rating
		next.Feedback = feedback
	})
}

// replaceWith applies mutate to a copy of the current record and sends the
// whole record to the replace endpoint. It refuses to send a record that
// lost any required field: the backend would persist the gap.
func (s *lifecycleService) replaceWith(ctx context.Context, current *models.Session, mutate func(*models.Session)) (*models.Session, error) {
	next := *current
	mutate(&next)
	if missing := next.MissingReplaceFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrPartialUpdate, missing)
	}

	updated, err := s.client.ReplaceSession(ctx, next)
	if err != nil {
		return nil, err
	}
	s.store.Put(ctx, updated)
	s.log.Info(ctx, "session updated", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

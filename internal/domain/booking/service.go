package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/pkg/logger"
)

// Command is a wizard action that carries no payload.
type Command string

const (
	CommandNext           Command = "next"
	CommandBack           Command = "back"
	CommandIncrementHours Command = "hours_increment"
	CommandDecrementHours Command = "hours_decrement"
)

// Service hosts wizard sessions. Every mutation runs load, change and save
// under one lock, so a draft has a single writer at a time.
type Service struct {
	mu            sync.Mutex
	store         SessionStore
	confirmations *ConfirmationRegistry
	publisher     EventPublisher
	rules         Rules
}

// NewService creates the booking service. A nil publisher disables events.
func NewService(store SessionStore, confirmations *ConfirmationRegistry, publisher EventPublisher, rules Rules) *Service {
	return &Service{
		store:         store,
		confirmations: confirmations,
		publisher:     publisher,
		rules:         rules.withDefaults(),
	}
}

// Start opens a session with an empty draft.
func (s *Service) Start(ctx context.Context) (*View, error) {
	return s.open(ctx, State{Step: StepServiceDetails})
}

func (s *Service) open(ctx context.Context, st State) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	w := RestoreWizard(s.rules, st)
	if err := s.store.Save(ctx, id, w.State()); err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Booking session opened", "session_id", id, "step", w.Step())
	v := w.View(id)
	return &v, nil
}

// Get returns the current view of a session.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	v := w.View(id)
	return &v, nil
}

func (s *Service) ApplyServiceDetails(ctx context.Context, id string, p ServiceDetailsPatch) (*View, error) {
	return s.mutate(ctx, id, func(w *Wizard) error { return w.ApplyServiceDetails(p) })
}

func (s *Service) ApplySchedule(ctx context.Context, id string, p SchedulePatch) (*View, error) {
	return s.mutate(ctx, id, func(w *Wizard) error { return w.ApplySchedule(p) })
}

func (s *Service) ApplyPayment(ctx context.Context, id string, p PaymentPatch) (*View, error) {
	return s.mutate(ctx, id, func(w *Wizard) error { return w.ApplyPayment(p) })
}

// Step runs a navigation or stepper command.
func (s *Service) Step(ctx context.Context, id string, cmd Command) (*View, error) {
	var apply func(w *Wizard) error
	switch cmd {
	case CommandNext:
		apply = (*Wizard).Next
	case CommandBack:
		apply = (*Wizard).Back
	case CommandIncrementHours:
		apply = (*Wizard).IncrementHours
	case CommandDecrementHours:
		apply = (*Wizard).DecrementHours
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return s.mutate(ctx, id, apply)
}

func (s *Service) mutate(ctx context.Context, id string, fn func(w *Wizard) error) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, id, w.State()); err != nil {
		return nil, err
	}

	v := w.View(id)
	return &v, nil
}

func (s *Service) load(ctx context.Context, id string) (*Wizard, error) {
	st, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return RestoreWizard(s.rules, st), nil
}

// Submit confirms the draft and closes the session.
func (s *Service) Submit(ctx context.Context, id string) (*ConfirmedBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := w.Submit()
	if err != nil {
		return nil, err
	}

	s.confirmations.Add(booking)
	if err := s.store.Delete(ctx, id); err != nil {
		logger.LogWarn(ctx, "Failed to delete submitted session", "session_id", id, "error", err.Error())
	}

	logger.LogInfo(ctx, "Booking confirmed",
		"booking_id", booking.ID,
		"session_id", id,
		"total", booking.Breakdown.Total.String(),
	)
	s.publishConfirmed(ctx, booking)
	return booking, nil
}

// publishConfirmed never fails the submission; broker errors are only logged.
func (s *Service) publishConfirmed(ctx context.Context, b *ConfirmedBooking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, QueueBookingConfirmed, newBookingConfirmedEvent(b)); err != nil {
		logger.LogError(ctx, err, "Failed to publish booking event", "booking_id", b.ID)
	}
}

func (s *Service) GetConfirmation(_ context.Context, id string) (*ConfirmedBooking, error) {
	return s.confirmations.Get(id)
}

// Cancel cancels a confirmed booking.
func (s *Service) Cancel(ctx context.Context, id string) (*ConfirmedBooking, error) {
	now := s.rules.Now()
	b, err := s.confirmations.Update(id, func(b *ConfirmedBooking) error {
		return b.Cancel(now)
	})
	if err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Booking cancelled", "booking_id", id)
	return b, nil
}

// Modify opens a session pre-filled from a confirmed booking. The booking itself is unchanged.
func (s *Service) Modify(ctx context.Context, id string) (*View, error) {
	b, err := s.confirmations.Get(id)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, ModifyState(b))
}

// Recur opens a repeating session pre-filled from a confirmed booking.
func (s *Service) Recur(ctx context.Context, id string, req RecurRequest) (*View, error) {
	if !catalog.Valid(req.Frequency, catalog.Frequencies) {
		errs := FieldErrors{}
		errs.add("frequency", KindOutOfRange, "Unknown frequency")
		return nil, newStepError(StepScheduleAndLocation, errs)
	}

	b, err := s.confirmations.Get(id)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, RecurState(b, req))
}

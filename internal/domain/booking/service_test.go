package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
)

type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
	events []BookingConfirmedEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, queue string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queues = append(p.queues, queue)
	if e, ok := v.(BookingConfirmedEvent); ok {
		p.events = append(p.events, e)
	}
	return p.err
}

func newTestService(pub EventPublisher) (*Service, *MemoryStore) {
	store := NewMemoryStore(0)
	return NewService(store, NewConfirmationRegistry(), pub, testRules()), store
}

// submitBooking walks a fresh session to a cash-paid confirmation.
func submitBooking(t *testing.T, svc *Service) (*ConfirmedBooking, string) {
	t.Helper()
	ctx := context.Background()

	view, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.SessionID

	steps := []func() (*View, error){
		func() (*View, error) {
			return svc.ApplyServiceDetails(ctx, id, ServiceDetailsPatch{
				BookingType: ptr(catalog.BookingTypeOffice),
				OfficeSize:  ptr(catalog.Office100To150),
			})
		},
		func() (*View, error) { return svc.Step(ctx, id, CommandNext) },
		func() (*View, error) {
			return svc.ApplySchedule(ctx, id, SchedulePatch{
				Date:    ptr("2026-10-18"),
				Time:    ptr("14:30"),
				City:    ptr("Abu Dhabi"),
				Contact: &ContactPatch{Phone: ptr("0501112233"), Email: ptr("ops@acme.example")},
			})
		},
		func() (*View, error) { return svc.Step(ctx, id, CommandNext) },
		func() (*View, error) {
			return svc.ApplyPayment(ctx, id, PaymentPatch{Method: ptr(catalog.PaymentCash)})
		},
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	booking, err := svc.Submit(ctx, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return booking, id
}

func TestService_SubmitFlow(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newTestService(pub)

	booking, sessionID := submitBooking(t, svc)

	if !booking.Breakdown.Total.Equal(dec("158")) {
		t.Fatalf("expected office 3h total 158, got %s", booking.Breakdown.Total)
	}
	if _, err := svc.Get(context.Background(), sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session discarded, got %v", err)
	}

	got, err := svc.GetConfirmation(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("get confirmation: %v", err)
	}
	if got.Draft.City != "Abu Dhabi" {
		t.Fatalf("expected frozen city, got %q", got.Draft.City)
	}

	if len(pub.events) != 1 || pub.queues[0] != QueueBookingConfirmed {
		t.Fatalf("expected one booking.confirmed event, got %v", pub.queues)
	}
	if e := pub.events[0]; e.BookingID != booking.ID || e.Total != "158.00" || e.Method != "cash" {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestService_PublishFailureDoesNotFailSubmit(t *testing.T) {
	svc, _ := newTestService(&recordingPublisher{err: errors.New("broker down")})

	booking, _ := submitBooking(t, svc)
	if booking.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}
}

func TestService_RefusedPatchIsNotSaved(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	view, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err = svc.ApplyServiceDetails(ctx, view.SessionID, ServiceDetailsPatch{
		BookingType:  ptr(catalog.BookingTypeHome),
		BookingHours: ptr(0),
	})
	if AsStepError(err) == nil {
		t.Fatalf("expected step error, got %v", err)
	}

	st, err := store.Load(ctx, view.SessionID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Draft.BookingType != "" {
		t.Fatalf("expected stored draft untouched, got %q", st.Draft.BookingType)
	}
}

func TestService_UnknownCommand(t *testing.T) {
	svc, _ := newTestService(nil)
	view, _ := svc.Start(context.Background())

	if _, err := svc.Step(context.Background(), view.SessionID, "jump"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestService_CancelTwice(t *testing.T) {
	svc, _ := newTestService(nil)
	booking, _ := submitBooking(t, svc)
	ctx := context.Background()

	cancelled, err := svc.Cancel(ctx, booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled booking, got %+v", cancelled)
	}

	if _, err := svc.Cancel(ctx, booking.ID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if _, err := svc.Cancel(ctx, "missing"); !errors.Is(err, ErrConfirmationNotFound) {
		t.Fatalf("expected ErrConfirmationNotFound, got %v", err)
	}
}

func TestService_ModifyPrefillsWithoutPayment(t *testing.T) {
	svc, _ := newTestService(nil)
	booking, _ := submitBooking(t, svc)

	view, err := svc.Modify(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}

	if view.Step != StepServiceDetails {
		t.Fatalf("expected first step, got %s", view.Step)
	}
	if view.Draft.OfficeSize != catalog.Office100To150 || view.Draft.City != "Abu Dhabi" {
		t.Fatalf("expected prefilled draft, got %+v", view.Draft)
	}
	if view.Draft.Payment.Method() != "" {
		t.Fatalf("expected payment cleared, got %s", view.Draft.Payment.Method())
	}
	if !view.Breakdown.Total.Equal(booking.Breakdown.Total) {
		t.Fatalf("expected same price, got %s", view.Breakdown.Total)
	}

	original, _ := svc.GetConfirmation(context.Background(), booking.ID)
	if original.Status != StatusConfirmed {
		t.Fatalf("expected original untouched, got %s", original.Status)
	}
}

func TestService_Recur(t *testing.T) {
	svc, _ := newTestService(nil)
	booking, _ := submitBooking(t, svc)

	view, err := svc.Recur(context.Background(), booking.ID, RecurRequest{
		Frequency: catalog.FrequencyBiWeekly,
		Weekdays:  []string{"sat", "tue"},
	})
	if err != nil {
		t.Fatalf("recur: %v", err)
	}

	d := view.Draft
	if !d.RepeatService || d.Frequency != catalog.FrequencyBiWeekly {
		t.Fatalf("expected repeating bi-weekly draft, got %+v", d)
	}
	if len(d.Weekdays) != 2 || d.Weekdays[0] != "tue" {
		t.Fatalf("expected weekdays in week order, got %v", d.Weekdays)
	}

	if _, err := svc.Recur(context.Background(), booking.ID, RecurRequest{Frequency: "daily"}); AsStepError(err) == nil {
		t.Fatalf("expected unknown frequency refused, got %v", err)
	}
}

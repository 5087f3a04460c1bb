// Package booking implements the booking wizard: a draft walked through
// service details, schedule and location, and payment, with a price
// breakdown recomputed after every change.
package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/domain/duration"
	"github.com/tidyhome/tidyhome-api/internal/domain/pricing"
	"github.com/tidyhome/tidyhome-api/internal/pkg/widget"
)

const ironingMin = 0

// Rules are the collaborators a wizard prices and validates with.
type Rules struct {
	Engine     *pricing.Engine
	Resolver   *duration.Resolver
	SavedCards SavedCardLookup
	Now        func() time.Time
	NewID      func() string
}

func (r Rules) withDefaults() Rules {
	if r.Engine == nil {
		r.Engine = pricing.NewEngine(pricing.DefaultRates())
	}
	if r.Resolver == nil {
		r.Resolver = duration.NewResolver(nil, nil)
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.NewID == nil {
		r.NewID = func() string { return uuid.New().String() }
	}
	return r
}

// State is everything a wizard needs to be restored. The breakdown is not
// part of it; it is recomputed on restore.
type State struct {
	Step        Step  `json:"step"`
	Draft       Draft `json:"draft"`
	HoursEdited bool  `json:"hours_edited"`
}

// Wizard owns one draft. It is not safe for concurrent use.
type Wizard struct {
	rules     Rules
	state     State
	breakdown pricing.Breakdown
}

// NewWizard starts an empty draft at the first step.
func NewWizard(rules Rules) *Wizard {
	return RestoreWizard(rules, State{Step: StepServiceDetails})
}

// RestoreWizard resumes a saved state.
func RestoreWizard(rules Rules, st State) *Wizard {
	if st.Step.index() < 0 {
		st.Step = StepServiceDetails
	}
	st.Draft = st.Draft.clone()

	w := &Wizard{rules: rules.withDefaults(), state: st}
	w.reprice()
	return w
}

func (w *Wizard) Step() Step { return w.state.Step }

func (w *Wizard) Breakdown() pricing.Breakdown { return w.breakdown }

func (w *Wizard) Draft() Draft { return w.state.Draft.clone() }

// State returns a copy suitable for saving.
func (w *Wizard) State() State {
	st := w.state
	st.Draft = st.Draft.clone()
	return st
}

func (w *Wizard) reprice() {
	if w.state.Step == StepConfirmed {
		w.breakdown = pricing.Breakdown{}
		return
	}
	w.breakdown = w.rules.Engine.Calculate(w.state.Draft.pricingInput())
}

func (w *Wizard) requireStep(step Step) error {
	switch w.state.Step {
	case step:
		return nil
	case StepConfirmed:
		return ErrWizardClosed
	}
	return ErrStepNotActive
}

// ApplyServiceDetails updates the first step. Out-of-range values refuse the
// whole patch and leave the draft untouched.
func (w *Wizard) ApplyServiceDetails(p ServiceDetailsPatch) error {
	if err := w.requireStep(StepServiceDetails); err != nil {
		return err
	}

	next := w.state.Draft.clone()
	errs := FieldErrors{}

	before := sizeKey(&next)
	selectOption(errs, "booking_type", p.BookingType, catalog.BookingTypes, &next.BookingType)
	selectOption(errs, "apartment_type", p.ApartmentType, catalog.ApartmentTypes, &next.ApartmentType)
	selectOption(errs, "office_size", p.OfficeSize, catalog.OfficeSizes, &next.OfficeSize)
	selectOption(errs, "cleaning_materials", p.CleaningMaterials, catalog.MaterialsOptions, &next.CleaningMaterials)

	hoursEdited := w.state.HoursEdited
	if p.BookingHours != nil {
		if !widget.HoursStepper(next.BookingHours).InRange(*p.BookingHours) {
			errs.add("booking_hours", KindOutOfRange, "Hours must be between 1 and 12")
		} else {
			next.BookingHours = *p.BookingHours
			hoursEdited = true
		}
	}

	if p.IroningHours != nil {
		if !ironingStepper(next.AddOns.IroningHours).InRange(*p.IroningHours) {
			errs.add("ironing_hours", KindOutOfRange, "Ironing hours must be between 0 and 12")
		} else {
			next.AddOns.IroningHours = *p.IroningHours
		}
	}

	if len(errs) > 0 {
		return newStepError(StepServiceDetails, errs)
	}

	if !hoursEdited && sizeKey(&next) != before && next.SizeCode() != "" {
		next.BookingHours = w.rules.Resolver.Resolve(next.BookingType, next.SizeCode())
	}

	w.state.Draft = next
	w.state.HoursEdited = hoursEdited
	w.reprice()
	return nil
}

// ApplySchedule updates the schedule and location step.
func (w *Wizard) ApplySchedule(p SchedulePatch) error {
	if err := w.requireStep(StepScheduleAndLocation); err != nil {
		return err
	}

	now := w.rules.Now()
	next := w.state.Draft.clone()
	errs := FieldErrors{}

	if p.Date != nil {
		applyDate(errs, *p.Date, now, &next)
	}

	if p.Time != nil {
		if *p.Time == "" {
			next.Time = ""
		} else if slot, err := time.Parse(TimeSlotLayout, *p.Time); err != nil {
			errs.add("time", KindFormatMismatch, "Time must be HH:MM")
		} else {
			next.Time = slot.Format(TimeSlotLayout)
		}
	}

	if p.RepeatService != nil {
		next.RepeatService = *p.RepeatService
	}
	if p.ToggleRepeat {
		next.RepeatService = widget.Toggle(next.RepeatService)
	}
	selectOption(errs, "frequency", p.Frequency, catalog.Frequencies, &next.Frequency)

	if p.Weekdays != nil {
		for _, d := range p.Weekdays {
			if !widget.IsWeekday(d) {
				errs.add("weekdays", KindOutOfRange, "Unknown weekday "+d)
			}
		}
		next.Weekdays = widget.NormalizeWeekdays(p.Weekdays)
	}
	if p.ToggleWeekday != nil {
		if !widget.IsWeekday(*p.ToggleWeekday) {
			errs.add("toggle_weekday", KindOutOfRange, "Unknown weekday "+*p.ToggleWeekday)
		}
		next.Weekdays = widget.ToggleWeekday(next.Weekdays, *p.ToggleWeekday)
	}

	if p.City != nil {
		next.City = strings.TrimSpace(*p.City)
	}
	if p.Address != nil {
		next.Address = *p.Address
	}
	if p.Contact != nil {
		applyContact(p.Contact, &next.Contact)
	}
	if p.Instructions != nil {
		next.Instructions = *p.Instructions
	}

	if len(errs) > 0 {
		return newStepError(StepScheduleAndLocation, errs)
	}

	w.state.Draft = next
	w.reprice()
	return nil
}

func applyDate(errs FieldErrors, value string, now time.Time, d *Draft) {
	if value == "" {
		d.Date = ""
		return
	}

	day, err := widget.ParseISODate(value, now.Location())
	if err != nil {
		errs.add("date", KindFormatMismatch, "Date must be YYYY-MM-DD")
		return
	}

	picker := widget.DatePicker{Open: true, Value: d.Date}
	if !picker.Select(day, now) {
		errs.add("date", KindOutOfRange, "Date cannot be in the past")
		return
	}
	d.Date = picker.Value
}

func applyContact(p *ContactPatch, c *Contact) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		c.Phone = widget.SanitizePhone(*p.Phone)
	}
	if p.CountryCode != nil {
		c.CountryCode = *p.CountryCode
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
}

// ApplyPayment updates the payment step. Choosing another method discards
// the previous variant's fields.
func (w *Wizard) ApplyPayment(p PaymentPatch) error {
	if err := w.requireStep(StepPaymentConfirmation); err != nil {
		return err
	}

	payment := w.state.Draft.Payment
	errs := FieldErrors{}

	if p.Method != nil && *p.Method != payment.Method() {
		details, err := newPaymentDetails(*p.Method)
		if err != nil {
			errs.add("payment_method", KindOutOfRange, "Unknown payment method")
		} else {
			payment = Payment{Details: details}
		}
	}

	switch d := payment.Details.(type) {
	case SavedCardPayment:
		if p.SavedCardID != nil {
			if *p.SavedCardID != "" && w.rules.SavedCards != nil && !w.rules.SavedCards.HasSavedCard(*p.SavedCardID) {
				errs.add("payment.card_id", KindOutOfRange, "Unknown saved card")
			}
			d.CardID = *p.SavedCardID
		}
		if p.CVC != nil {
			d.CVC = *p.CVC
		}
		payment.Details = d
	case NewCardPayment:
		if p.CardNumber != nil {
			d.Number = widget.FormatCardNumber(*p.CardNumber)
		}
		if p.CardKey != nil {
			d.Number, _ = widget.TypeCardKey(d.Number, *p.CardKey)
		}
		if p.CardHolder != nil {
			d.Holder = strings.TrimSpace(*p.CardHolder)
		}
		if p.Expiry != nil {
			d.Expiry = strings.TrimSpace(*p.Expiry)
		}
		if p.CVC != nil {
			d.CVC = *p.CVC
		}
		if p.SaveCard != nil {
			d.SaveCard = *p.SaveCard
		}
		if p.Billing != nil {
			d.Billing = *p.Billing
		}
		payment.Details = d
	}

	if len(errs) > 0 {
		return newStepError(StepPaymentConfirmation, errs)
	}

	w.state.Draft.Payment = payment
	w.reprice()
	return nil
}

// IncrementHours steps booking hours up. At the upper bound it is a no-op.
func (w *Wizard) IncrementHours() error {
	if err := w.requireStep(StepServiceDetails); err != nil {
		return err
	}

	s := widget.HoursStepper(w.state.Draft.BookingHours)
	changed := s.Value != w.state.Draft.BookingHours
	if !changed {
		changed = s.Increment()
	}
	return w.setHours(s.Value, changed)
}

// DecrementHours steps booking hours down. At the lower bound it is a no-op.
func (w *Wizard) DecrementHours() error {
	if err := w.requireStep(StepServiceDetails); err != nil {
		return err
	}
	if w.state.Draft.BookingHours < widget.DefaultStepperMin {
		return nil
	}

	s := widget.HoursStepper(w.state.Draft.BookingHours)
	return w.setHours(s.Value, s.Decrement())
}

func (w *Wizard) setHours(hours int, changed bool) error {
	if !changed {
		return nil
	}
	w.state.Draft.BookingHours = hours
	w.state.HoursEdited = true
	w.reprice()
	return nil
}

// Errors validates every step up to and including the current one.
func (w *Wizard) Errors() FieldErrors {
	return w.validateThrough(w.state.Step)
}

func (w *Wizard) validateThrough(step Step) FieldErrors {
	errs := FieldErrors{}
	d := &w.state.Draft
	idx := step.index()

	if idx >= StepServiceDetails.index() {
		errs.merge(ValidateServiceDetails(d))
	}
	if idx >= StepScheduleAndLocation.index() {
		errs.merge(ValidateSchedule(d, w.rules.Now()))
	}
	if idx >= StepPaymentConfirmation.index() {
		errs.merge(ValidatePayment(d, w.rules.SavedCards, w.rules.Now()))
	}
	return errs
}

// Next advances one step once every step so far validates.
func (w *Wizard) Next() error {
	switch w.state.Step {
	case StepConfirmed:
		return ErrWizardClosed
	case StepPaymentConfirmation:
		return ErrNoNextStep
	}

	if errs := w.Errors(); len(errs) > 0 {
		return newStepError(w.state.Step, errs)
	}

	target := stepOrder[w.state.Step.index()+1]
	if target == StepPaymentConfirmation && w.breakdown.IsZero() {
		return ErrNothingPriced
	}

	w.state.Step = target
	return nil
}

// Back returns to the previous step. Data is kept.
func (w *Wizard) Back() error {
	switch w.state.Step {
	case StepConfirmed:
		return ErrWizardClosed
	case StepServiceDetails:
		return ErrNoPreviousStep
	}

	w.state.Step = stepOrder[w.state.Step.index()-1]
	return nil
}

// Submit freezes the draft into a confirmed booking and discards it.
func (w *Wizard) Submit() (*ConfirmedBooking, error) {
	if err := w.requireStep(StepPaymentConfirmation); err != nil {
		return nil, err
	}

	if errs := w.Errors(); len(errs) > 0 {
		return nil, newStepError(StepPaymentConfirmation, errs)
	}
	if w.breakdown.IsZero() {
		return nil, ErrNothingPriced
	}

	frozen := w.state.Draft.clone()
	frozen.Payment = frozen.Payment.sanitized()

	booking := &ConfirmedBooking{
		ID:          w.rules.NewID(),
		Draft:       frozen,
		Breakdown:   w.breakdown,
		ConfirmedAt: w.rules.Now().UTC(),
		Status:      StatusConfirmed,
	}

	w.state = State{Step: StepConfirmed}
	w.reprice()
	return booking, nil
}

// View renders the wizard for the UI.
func (w *Wizard) View(sessionID string) View {
	d := w.state.Draft
	hours := widget.HoursStepper(d.BookingHours)
	ironing := ironingStepper(d.AddOns.IroningHours)

	v := View{
		SessionID: sessionID,
		Step:      w.state.Step,
		Draft:     d.clone(),
		Breakdown: w.breakdown,
		ShowPrice: !w.breakdown.IsZero(),
		CanGoBack: w.state.Step != StepServiceDetails && w.state.Step != StepConfirmed,
		Hours:     stepperView(hours, d.BookingHours),
		Ironing:   stepperView(ironing, d.AddOns.IroningHours),
	}

	if w.state.Step != StepConfirmed {
		v.Errors = w.Errors()
		ready := len(v.Errors) == 0
		switch w.state.Step {
		case StepPaymentConfirmation:
			v.CanSubmit = ready && v.ShowPrice
		case StepScheduleAndLocation:
			v.CanGoNext = ready && v.ShowPrice
		default:
			v.CanGoNext = ready
		}
	}

	if card, ok := d.Payment.Details.(NewCardPayment); ok && card.Number != "" {
		v.CardNetwork = string(card.Network())
	}
	return v
}

func stepperView(s widget.Stepper, raw int) StepperView {
	return StepperView{
		Value:        raw,
		Min:          s.Min,
		Max:          s.Max,
		CanIncrement: s.CanIncrement() || raw < s.Min,
		CanDecrement: raw > s.Min,
	}
}

func ironingStepper(v int) widget.Stepper {
	return widget.NewStepper(ironingMin, widget.DefaultStepperMax, v)
}

// sizeKey changes whenever the type or the matching size field changes.
func sizeKey(d *Draft) string {
	return string(d.BookingType) + "/" + d.SizeCode()
}

// selectOption applies a radio choice. Unknown values are refused.
func selectOption[T ~string](errs FieldErrors, field string, v *T, options []T, dst *T) {
	if v == nil {
		return
	}

	group := widget.RadioGroup{Options: catalog.Strings(options), Value: string(*dst)}
	if !group.Select(string(*v)) {
		errs.add(field, KindOutOfRange, "Unknown "+strings.ReplaceAll(field, "_", " ")+" "+string(*v))
		return
	}
	*dst = T(group.Value)
}

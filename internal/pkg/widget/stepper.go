package widget

const (
	DefaultStepperMin = 1
	DefaultStepperMax = 12
)

// Stepper is a numeric input clamped to the inclusive range [Min, Max].
type Stepper struct {
	Min   int
	Max   int
	Value int
}

// NewStepper returns a stepper with value clamped into range.
func NewStepper(lo, hi, value int) Stepper {
	s := Stepper{Min: lo, Max: hi}
	s.Set(value)
	return s
}

// HoursStepper is the default [1,12] stepper.
func HoursStepper(value int) Stepper {
	return NewStepper(DefaultStepperMin, DefaultStepperMax, value)
}

func (s Stepper) CanIncrement() bool { return s.Value < s.Max }
func (s Stepper) CanDecrement() bool { return s.Value > s.Min }

// InRange reports whether v would be accepted without clamping.
func (s Stepper) InRange(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Increment is disabled at Max; it never wraps around.
func (s *Stepper) Increment() bool {
	if !s.CanIncrement() {
		return false
	}
	s.Value++
	return true
}

// Decrement is disabled at Min.
func (s *Stepper) Decrement() bool {
	if !s.CanDecrement() {
		return false
	}
	s.Value--
	return true
}

// Set clamps v into range.
func (s *Stepper) Set(v int) {
	switch {
	case v < s.Min:
		s.Value = s.Min
	case v > s.Max:
		s.Value = s.Max
	default:
		s.Value = v
	}
}

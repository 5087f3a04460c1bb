package widget

import (
	"reflect"
	"testing"
	"time"
)

func TestToggleWeekday_SetSemantics(t *testing.T) {
	var days []string
	days = ToggleWeekday(days, "fri")
	days = ToggleWeekday(days, "mon")
	if !reflect.DeepEqual(days, []string{"mon", "fri"}) {
		t.Fatalf("unexpected selection %v", days)
	}

	days = ToggleWeekday(days, "fri")
	if !reflect.DeepEqual(days, []string{"mon"}) {
		t.Fatalf("expected fri removed, got %v", days)
	}

	days = ToggleWeekday(days, "funday")
	if !reflect.DeepEqual(days, []string{"mon"}) {
		t.Fatalf("unknown token must be ignored, got %v", days)
	}
}

func TestNormalizeWeekdays_DropsDuplicates(t *testing.T) {
	got := NormalizeWeekdays([]string{"sun", "mon", "sun", "xyz"})
	if !reflect.DeepEqual(got, []string{"mon", "sun"}) {
		t.Fatalf("unexpected %v", got)
	}
}

func TestDatePicker_TodayAndYesterday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	p := DatePicker{Open: true}
	if !p.Select(now.Add(-10*time.Hour), now) {
		t.Fatal("expected today to be selectable")
	}
	if p.Value != "2026-03-10" || p.Open {
		t.Fatalf("expected closed picker with ISO value, got %+v", p)
	}

	p = DatePicker{Open: true, Value: "2026-03-12"}
	if p.Select(now.AddDate(0, 0, -1), now) {
		t.Fatal("expected yesterday to be disabled")
	}
	if p.Value != "2026-03-12" || !p.Open {
		t.Fatalf("expected no-op, got %+v", p)
	}
}

func TestStepper_Bounds(t *testing.T) {
	s := HoursStepper(12)
	if s.CanIncrement() || s.Increment() {
		t.Fatal("increment must be disabled at max")
	}
	if s.Value != 12 {
		t.Fatalf("expected 12, got %d", s.Value)
	}

	s = HoursStepper(1)
	if s.CanDecrement() || s.Decrement() {
		t.Fatal("decrement must be disabled at min")
	}
	if !s.Increment() || s.Value != 2 {
		t.Fatalf("expected 2, got %d", s.Value)
	}

	s.Set(40)
	if s.Value != 12 {
		t.Fatalf("expected clamp to 12, got %d", s.Value)
	}
	s.Set(-3)
	if s.Value != 1 {
		t.Fatalf("expected clamp to 1, got %d", s.Value)
	}
}

func TestRadioGroupAndToggle(t *testing.T) {
	g := RadioGroup{Options: []string{"needed", "not-needed"}}
	if !g.Select("needed") || g.Value != "needed" {
		t.Fatalf("unexpected %+v", g)
	}
	if g.Select("maybe") || g.Value != "needed" {
		t.Fatalf("unknown option must be a no-op, got %+v", g)
	}
	if !Toggle(false) || Toggle(true) {
		t.Fatal("toggle must flip")
	}
}

package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestScaleDigitChoosesDirectly(t *testing.T) {
	var got int
	s := NewScale([]string{"a", "b", "c", "d", "e"}, func(v int) tea.Cmd {
		got = v
		return nil
	})

	s, _ = s.Update(tea.KeyPressMsg{Code: '4', Text: "4"})

	if got != 4 {
		t.Errorf("expected choice 4, got %d", got)
	}
	if s.Selected != 3 {
		t.Errorf("expected selection to follow the digit, got %d", s.Selected)
	}
}

func TestScaleNavigateAndEnter(t *testing.T) {
	var got int
	s := NewScale([]string{"a", "b", "c", "d", "e"}, func(v int) tea.Cmd {
		got = v
		return nil
	})
	if s.Selected != 2 {
		t.Fatalf("expected middle option selected, got %d", s.Selected)
	}

	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got != 1 {
		t.Errorf("expected choice 1 after moving to top, got %d", got)
	}
}

func TestScaleIgnoresOutOfRangeDigits(t *testing.T) {
	called := false
	s := NewScale([]string{"a", "b", "c", "d", "e"}, func(int) tea.Cmd {
		called = true
		return nil
	})

	s.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	s.Update(tea.KeyPressMsg{Code: '0', Text: "0"})

	if called {
		t.Error("expected digits outside the scale to be ignored")
	}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "first", Disabled: true},
		{Label: "second", Action: func() tea.Cmd { ran = "second"; return nil }},
		{Label: "third", Disabled: true},
		{Label: "fourth", Action: func() tea.Cmd { ran = "fourth"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if ran != "fourth" {
		t.Errorf("expected 'fourth' action, got %q", ran)
	}
}

func TestMenuWrapsAround(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "first", Disabled: true},
		{Label: "second", Action: func() tea.Cmd { ran = "second"; return nil }},
		{Label: "third", Action: func() tea.Cmd { ran = "third"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Fatalf("expected up from the first enabled item to wrap to 2, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if ran != "second" {
		t.Errorf("expected 'second' action, got %q", ran)
	}
}

func TestBarsCaptions(t *testing.T) {
	if got := StepBar("Progresso", 3, 45, 40).View(); !strings.Contains(got, "3/45") {
		t.Errorf("step bar missing caption: %q", got)
	}
	if got := ScoreBar("Musical", 95, 40).View(); !strings.Contains(got, "95%") {
		t.Errorf("score bar missing caption: %q", got)
	}
	if got := StepBar("", 0, 0, 10).View(); !strings.Contains(got, "0/0") {
		t.Errorf("empty step bar missing caption: %q", got)
	}
}

package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestModal_ShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Error("modal should start hidden")
	}

	m.Show(NewHelpState())
	m.SetError("boom")
	if !m.IsVisible() || m.GetError() != "boom" {
		t.Error("modal should be visible with its error")
	}

	m.Show(NewHelpState())
	if m.GetError() != "" {
		t.Error("Show should clear a previous error")
	}

	m.Hide()
	if m.IsVisible() || m.View(80, 24) != "" {
		t.Error("hidden modal should render nothing")
	}
}

func TestHelpState_ListsAllSections(t *testing.T) {
	m := NewModal()
	m.Show(NewHelpState())

	view := stripANSI(m.View(100, 40))
	for _, want := range []string{"Keyboard Shortcuts", "Conversations", "Thread", "General", "Go to page", "Copy thread to clipboard"} {
		if !strings.Contains(view, want) {
			t.Errorf("help should contain %q", want)
		}
	}
}

func typeInto(m *Modal, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestGoToPageState_Page(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr string
	}{
		{"3", 3, ""},
		{"10", 10, ""},
		{"", 0, "enter a page number"},
		{"abc", 0, "not a page number"},
		{"0", 0, "between 1 and 10"},
		{"11", 0, "between 1 and 10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := NewModal()
			state := NewGoToPageState(1, 10)
			m.Show(state)
			typeInto(m, tt.input)

			page, err := state.Page()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Page() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Page() error = %v", err)
			}
			if page != tt.want {
				t.Errorf("Page() = %d, want %d", page, tt.want)
			}
		})
	}
}

func TestGoToPageState_Render(t *testing.T) {
	m := NewModal()
	m.Show(NewGoToPageState(4, 10))

	view := stripANSI(m.View(80, 24))
	if !strings.Contains(view, "Go to Page") || !strings.Contains(view, "page 4 of 10") {
		t.Errorf("go-to-page modal should show title and current page\n%s", view)
	}
}

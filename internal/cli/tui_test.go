package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/core/stage"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

func samplePlan() *pipeline.Plan {
	return &pipeline.Plan{
		Pacotes: model.Contents{"soap": 24},
		Caixas: map[model.ContainerID]model.Contents{
			1: {"wine": 9},
			2: {"apple": 64},
			3: {"candle": 3, "match": 2},
		},
		Origins: map[model.ContainerID]pipeline.Origin{
			1: {Partition: 0, Stage: stage.KindCrate, Box: "rack"},
			2: {Partition: 0, Stage: stage.KindBox, Box: "carton"},
			3: {Partition: 1, Stage: stage.KindBox, Box: "carton"},
		},
		NotPalletized: model.Contents{"ghost": 4},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m PlanBrowserModel, keys ...string) (PlanBrowserModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(PlanBrowserModel)
	}
	return m, cmd
}

func TestPlanBrowserNavigation(t *testing.T) {
	m := NewPlanBrowserModel(samplePlan())

	m, _ = press(m, "down", "down", "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped at the last container)", m.Cursor)
	}
	m, _ = press(m, "up", "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	if view := m.View(); !strings.Contains(view, "rack") || !strings.Contains(view, "[1/3]") {
		t.Errorf("list view missing rows or position:\n%s", view)
	}
}

func TestPlanBrowserDetail(t *testing.T) {
	m := NewPlanBrowserModel(samplePlan())
	m, _ = press(m, "j", "j", "enter")
	if !m.Open {
		t.Fatal("enter should open the container")
	}
	view := m.View()
	for _, want := range []string{"Container 3", "candle", "match", "partition 1", "5 units"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(m, "down")
	if m.Cursor != 2 {
		t.Error("navigation should be ignored while a container is open")
	}
	m, cmd := press(m, "esc")
	if m.Open || cmd != nil {
		t.Error("esc should go back to the list without quitting")
	}
	if _, cmd := press(m, "esc"); cmd == nil {
		t.Error("esc on the list should quit")
	}
}

func TestPlanBrowserScroll(t *testing.T) {
	m := NewPlanBrowserModel(samplePlan())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	m = next.(PlanBrowserModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want the minimum 5", m.Height)
	}
	m.Height = 1
	m, _ = press(m, "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
}

func TestPlanBrowserEmpty(t *testing.T) {
	m := NewPlanBrowserModel(&pipeline.Plan{})
	m, _ = press(m, "enter")
	if m.Open {
		t.Error("an empty plan has nothing to open")
	}
	if !strings.Contains(m.View(), "no containers") {
		t.Errorf("unexpected empty view:\n%s", m.View())
	}
}

func TestPlanTable(t *testing.T) {
	out := planTable(samplePlan())
	for _, want := range []string{"Box", "rack", "crate", "apple×64", "candle×3, match×2"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan table missing %q:\n%s", want, out)
		}
	}
}

func TestSummarizeContents(t *testing.T) {
	c := model.Contents{"d": 4, "a": 1, "c": 3, "b": 2}
	tests := []struct {
		limit int
		want  string
	}{
		{0, "a×1, b×2, c×3, d×4"},
		{2, "a×1, b×2, +2 more"},
		{4, "a×1, b×2, c×3, d×4"},
	}
	for _, tt := range tests {
		if got := summarizeContents(c, tt.limit); got != tt.want {
			t.Errorf("summarizeContents(limit=%d) = %q, want %q", tt.limit, got, tt.want)
		}
	}
}

package ui

import (
	"strings"
	"testing"

	"borrowck/internal/driver"
)

func keys(m *progressModel) []string {
	out := make([]string, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item.key.file+"/"+item.key.body)
	}
	return out
}

func TestBodyRowsFollowTheirFile(t *testing.T) {
	m := NewProgressModel("borrowck", []string{"a.toml", "b.toml"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.toml", Body: "f", Stage: driver.StageCheck, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.toml", Body: "h", Stage: driver.StageCheck, Status: driver.StatusQueued})
	m.applyEvent(driver.Event{File: "a.toml", Body: "g", Stage: driver.StageCheck, Status: driver.StatusQueued})

	want := []string{"a.toml/", "a.toml/f", "a.toml/g", "b.toml/", "b.toml/h"}
	got := keys(m)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i, item := range m.items {
		if m.index[item.key] != i {
			t.Fatalf("index of %v = %d, want %d", item.key, m.index[item.key], i)
		}
	}
	if m.items[1].status != "checking" {
		t.Fatalf("status = %q", m.items[1].status)
	}
}

func TestPercent(t *testing.T) {
	m := NewProgressModel("t", []string{"a", "b"}, nil).(*progressModel)
	if p := m.percent(); p != 0 {
		t.Fatalf("initial percent = %v", p)
	}
	m.applyEvent(driver.Event{File: "a", Stage: driver.StageReport, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b", Stage: driver.StageCheck, Status: driver.StatusWorking})
	// (1 + 0.5) / 2
	if p := m.percent(); p != 0.75 {
		t.Fatalf("percent = %v, want 0.75", p)
	}
	m.applyEvent(driver.Event{File: "b", Stage: driver.StageReport, Status: driver.StatusError, Errors: 3})
	if p := m.percent(); p != 1 {
		t.Fatalf("percent = %v, want 1", p)
	}
	if m.items[1].errors != 3 || m.items[1].status != "error" {
		t.Fatalf("row = %+v", m.items[1])
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageLoad, driver.StatusWorking, "loading"},
		{driver.StageValidate, driver.StatusWorking, "validating"},
		{driver.StageCheck, driver.StatusWorking, "checking"},
		{driver.StageReport, driver.StatusWorking, "reporting"},
		{driver.StageCheck, driver.StatusDone, "done"},
		{driver.StageCheck, driver.StatusError, "error"},
		{driver.StageCheck, driver.Status("?"), ""},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestUnknownStatusKeepsLabel(t *testing.T) {
	m := NewProgressModel("t", []string{"a"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a", Stage: driver.StageLoad, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "a", Stage: driver.StageCheck, Status: driver.Status("?")})
	if m.items[0].status != "loading" || m.items[0].stage != driver.StageLoad {
		t.Fatalf("row = %+v", m.items[0])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "mu..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
		{"日本語の名前", 9, "日..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestViewListsRows(t *testing.T) {
	m := NewProgressModel("checking 1 file", []string{"a.toml"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.toml", Body: "main", Stage: driver.StageReport, Status: driver.StatusError, Errors: 2})
	m.done = true
	view := m.View()
	for _, want := range []string{"done: checking 1 file", "a.toml", "  main (2)", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

package textinput

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/ui/testutil"
)

const testContext = "open-recording"

func newTestInput(title, initialText string, context any) *testutil.PopupHarness {
	m := New()
	m.Start(title, initialText, context, 60, 10)
	return testutil.NewPopupHarness(&m)
}

func getResult(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	actionMsg, ok := h.Emitted()
	if !ok {
		t.Fatal("expected an action from the last command")
	}
	if actionMsg.Source != "textinput" {
		t.Errorf("Source = %q, want textinput", actionMsg.Source)
	}
	result, ok := actionMsg.Action.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", actionMsg.Action)
	}
	return result
}

func TestTextInput_TypeAndConfirm(t *testing.T) {
	h := newTestInput("Open capture", "", testContext)

	h.Type("/tmp/dis.pcap")
	h.SendEnter()

	result := getResult(t, h)
	if result.Text != "/tmp/dis.pcap" {
		t.Errorf("Text = %q, want %q", result.Text, "/tmp/dis.pcap")
	}
	if result.Canceled {
		t.Error("expected Canceled=false")
	}
	if result.Context != testContext {
		t.Errorf("Context = %v, want %q", result.Context, testContext)
	}
}

func TestTextInput_InitialTextIsEditable(t *testing.T) {
	h := newTestInput("Open capture", "/captures/", nil)

	h.Type("run1.pcapng")
	h.SendEnter()

	if got := getResult(t, h).Text; got != "/captures/run1.pcapng" {
		t.Errorf("Text = %q", got)
	}
}

func TestTextInput_Backspace(t *testing.T) {
	h := newTestInput("Open capture", "abc", nil)

	h.Press(tea.KeyBackspace)
	h.SendEnter()

	if got := getResult(t, h).Text; got != "ab" {
		t.Errorf("Text = %q, want ab", got)
	}
}

func TestTextInput_TrimsSurroundingSpace(t *testing.T) {
	h := newTestInput("Open capture", "  /tmp/x.pcap  ", nil)

	h.SendEnter()

	if got := getResult(t, h).Text; got != "/tmp/x.pcap" {
		t.Errorf("Text = %q", got)
	}
}

func TestTextInput_EscapeCancels(t *testing.T) {
	h := newTestInput("Open capture", "/tmp/x.pcap", testContext)

	h.SendEscape()

	result := getResult(t, h)
	if !result.Canceled {
		t.Error("expected Canceled=true")
	}
	if result.Context != testContext {
		t.Errorf("Context = %v, want %q", result.Context, testContext)
	}
}

func TestTextInput_View(t *testing.T) {
	h := newTestInput("Open capture", "/tmp/x.pcap", nil)

	view := testutil.StripANSI(h.View())
	if !strings.Contains(view, "Open capture") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "/tmp/x.pcap") {
		t.Error("view missing value")
	}
	if !strings.Contains(view, "Esc: cancel") {
		t.Error("view missing hint")
	}

	empty := New()
	if empty.View() != "" {
		t.Error("unsized view should be empty")
	}
}

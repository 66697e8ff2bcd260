package editor

import (
	"testing"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

type recordingHandler struct {
	events *[]string
	name   string
}

func (h recordingHandler) PointerDown(edimg.Point) { *h.events = append(*h.events, h.name+":down") }
func (h recordingHandler) PointerMove(edimg.Point) { *h.events = append(*h.events, h.name+":move") }
func (h recordingHandler) PointerUp(edimg.Point)   { *h.events = append(*h.events, h.name+":up") }

// createRecordingController registers every mode with actions that log to events.
func createRecordingController(events *[]string) *ModeController {
	c := NewModeController()
	for _, m := range []Mode{ModeDraw, ModeCrop, ModeMosaic, ModeText} {
		name := m.String()
		c.Register(m, ModeActions{
			Enter:   func() { *events = append(*events, "enter:"+name) },
			Exit:    func() { *events = append(*events, "exit:"+name) },
			Pointer: recordingHandler{events: events, name: name},
		})
	}
	return c
}

func equalEvents(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestModeController_Transitions(t *testing.T) {
	var events []string
	c := createRecordingController(&events)

	if c.Current() != ModeNone || c.Pointer() != nil {
		t.Fatal("controller should start in ModeNone with no pointer handler")
	}

	c.Enter(ModeDraw)
	c.Enter(ModeCrop)
	c.Enter(ModeCrop)

	want := []string{"enter:draw", "exit:draw", "enter:crop", "exit:crop"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if c.Current() != ModeNone {
		t.Errorf("re-entering the active mode left %s active", c.Current())
	}
}

func TestModeController_ExitRunsOnce(t *testing.T) {
	var events []string
	c := createRecordingController(&events)

	c.Enter(ModeMosaic)
	c.Exit()
	c.Exit()
	c.Enter(ModeNone)

	want := []string{"enter:mosaic", "exit:mosaic"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestModeController_PointerFollowsMode(t *testing.T) {
	var events []string
	c := createRecordingController(&events)

	c.Enter(ModeText)
	c.Pointer().PointerDown(edimg.Point{})
	c.Enter(ModeDraw)
	c.Pointer().PointerMove(edimg.Point{})
	c.Exit()

	if c.Pointer() != nil {
		t.Error("pointer handler still attached in ModeNone")
	}

	want := []string{"enter:text", "text:down", "exit:text", "enter:draw", "draw:move", "exit:draw"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestModeController_OnTransition(t *testing.T) {
	c := NewModeController()
	var got [][2]Mode
	c.OnTransition = func(from, to Mode) { got = append(got, [2]Mode{from, to}) }

	c.Enter(ModeDraw)
	c.Enter(ModeMosaic)
	c.Enter(ModeMosaic)

	want := [][2]Mode{{ModeNone, ModeDraw}, {ModeDraw, ModeMosaic}, {ModeMosaic, ModeNone}}
	if len(got) != len(want) {
		t.Fatalf("got %d transitions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeNone, ModeDraw, ModeCrop, ModeMosaic, ModeText} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMode(%q) = %v, want %v", m.String(), got, m)
		}
	}

	if _, err := ParseMode("erase"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if s := Mode(42).String(); s != "Mode(42)" {
		t.Errorf("String() = %q for unknown mode", s)
	}
}

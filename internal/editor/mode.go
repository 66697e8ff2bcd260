package editor

import (
	"fmt"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Mode is the active editing behavior.
type Mode int

const (
	ModeNone Mode = iota
	ModeDraw
	ModeCrop
	ModeMosaic
	ModeText
)

var modeNames = map[Mode]string{
	ModeNone:   "none",
	ModeDraw:   "draw",
	ModeCrop:   "crop",
	ModeMosaic: "mosaic",
	ModeText:   "text",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unknown mode: %s", s)
}

// PointerHandler receives canvas-space pointer events while its mode is active.
type PointerHandler interface {
	PointerDown(p edimg.Point)
	PointerMove(p edimg.Point)
	PointerUp(p edimg.Point)
}

// ModeActions are the behaviors bound to one mode. Exit undoes whatever Enter did.
type ModeActions struct {
	Enter   func()
	Exit    func()
	Pointer PointerHandler
}

// ModeController is the state machine over Mode. Entry and exit actions are
// owned by the controller, which runs each exit exactly once for every entry.
type ModeController struct {
	current Mode
	actions map[Mode]ModeActions

	// OnTransition, if set, is called after every completed transition.
	OnTransition func(from, to Mode)
}

// NewModeController returns a controller in ModeNone with no actions registered.
func NewModeController() *ModeController {
	return &ModeController{actions: make(map[Mode]ModeActions)}
}

// Register binds actions to m. ModeNone has no actions.
func (c *ModeController) Register(m Mode, a ModeActions) {
	if m == ModeNone {
		return
	}
	c.actions[m] = a
}

// Current returns the active mode.
func (c *ModeController) Current() Mode { return c.current }

// Active reports whether m is the active mode.
func (c *ModeController) Active(m Mode) bool { return c.current == m }

// Enter switches to m. Entering the active mode toggles back to ModeNone.
// It returns the mode that is active afterwards.
func (c *ModeController) Enter(m Mode) Mode {
	target := m
	if m == c.current {
		target = ModeNone
	}
	c.transition(target)
	return c.current
}

// Exit returns to ModeNone, running the active mode's exit action.
func (c *ModeController) Exit() {
	c.transition(ModeNone)
}

// Pointer returns the active mode's pointer handler, or nil.
func (c *ModeController) Pointer() PointerHandler {
	return c.actions[c.current].Pointer
}

func (c *ModeController) transition(target Mode) {
	from := c.current
	if from == target {
		return
	}

	if exit := c.actions[from].Exit; exit != nil {
		exit()
	}
	c.current = ModeNone

	if enter := c.actions[target].Enter; enter != nil {
		enter()
	}
	c.current = target

	if c.OnTransition != nil {
		c.OnTransition(from, target)
	}
}

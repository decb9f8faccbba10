package player

// Dispatcher maps raw key presses to transport commands on one
// engine. Unrecognized keys are ignored.
type Dispatcher struct {
	engine *Engine
}

func NewDispatcher(e *Engine) *Dispatcher {
	return &Dispatcher{engine: e}
}

// HandleKey applies the command bound to key, if any. Returns false
// when the key requests quitting the player (q, Esc or Ctrl+C).
func (d *Dispatcher) HandleKey(key byte) bool {
	switch key {
	case 'p':
		d.engine.Apply(TogglePlayPause)
	case 'j':
		d.engine.Apply(PrevTrack)
	case 'k':
		d.engine.Apply(NextTrack)
	case 'q', 27, 3: // q, ESC, Ctrl+C
		return false
	}
	return true
}

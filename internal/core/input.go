package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keys onto actions so the game flow works with intents.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow
	ActionDown              // S, Down arrow
	ActionLeft              // A, Left arrow
	ActionRight             // D, Right arrow
	ActionStartPause        // Space - start a new game when ended, otherwise pause/unpause
	ActionExit              // Escape - stop timers and leave
	ActionConfirm           // Y, Enter - accept the play-again prompt
	ActionDecline           // N - decline the play-again prompt
	ActionQuit              // Q, Ctrl+C - exit immediately
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStartPause:
		return "StartPause"
	case ActionExit:
		return "Exit"
	case ActionConfirm:
		return "Confirm"
	case ActionDecline:
		return "Decline"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the action steers the snake.
func (a Action) IsDirectional() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

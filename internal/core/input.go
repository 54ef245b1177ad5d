package core

// Action is a player intent, decoupled from the key that triggered it.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionDown
	ActionRotateRight
	ActionRotateLeft
	ActionNewPiece
	ActionRestart
	ActionHelp
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotateRight:
		return "RotateRight"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionNewPiece:
		return "NewPiece"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Gameplay reports whether a sends a request to the game.
func (a Action) Gameplay() bool {
	switch a {
	case ActionLeft, ActionRight, ActionDown, ActionRotateRight, ActionRotateLeft, ActionNewPiece:
		return true
	}
	return false
}

// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionHelp        Action = "help"

	// Recording actions
	ActionOpen         Action = "open"          // o - open path prompt
	ActionEditSettings Action = "edit_settings" // e - settings form
	ActionUnload       Action = "unload"        // u

	// Playback actions
	ActionPlayPause Action = "play_pause"
	ActionRewind    Action = "rewind"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Selection/activation actions
	ActionSelect Action = "select" // enter - activate button or open recent
	ActionDelete Action = "delete" // d/delete - forget a recent recording
	ActionCancel Action = "cancel" // esc - close prompt or form
)

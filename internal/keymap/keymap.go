// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "controls", "recents", "form"
}

// Bindings contains all key bindings, used both for dispatch and help.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionOpen, []string{"o"}, "Open capture file", "global"},
	{ActionEditSettings, []string{"e"}, "Edit destination settings", "global"},
	{ActionUnload, []string{"u"}, "Unload recording", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{"p", " "}, "Play/pause", "playback"},
	{ActionRewind, []string{"r"}, "Rewind", "playback"},

	// Transport buttons
	{ActionMoveLeft, []string{"h", "left"}, "Previous button", "controls"},
	{ActionMoveRight, []string{"l", "right"}, "Next button", "controls"},
	{ActionSelect, []string{"enter"}, "Activate button", "controls"},

	// Recent recordings
	{ActionMoveUp, []string{"k", "up"}, "Move up", "recents"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "recents"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "recents"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "recents"},
	{ActionSelect, []string{"enter"}, "Open recording", "recents"},
	{ActionDelete, []string{"d", "delete"}, "Forget recording", "recents"},

	// Prompts and forms
	{ActionCancel, []string{"esc"}, "Cancel", "form"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts lists binding contexts in help display order.
var Contexts = []string{"global", "playback", "controls", "recents", "form"}

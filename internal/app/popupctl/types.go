// Package popupctl tracks the modal popup shown over the player.
package popupctl

// Type identifies which popup is currently active.
type Type int

const (
	None Type = iota
	Help
	OpenFile
	Settings
	Confirm
)

// String returns the popup name used in logs.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Help:
		return "help"
	case OpenFile:
		return "open"
	case Settings:
		return "settings"
	case Confirm:
		return "confirm"
	}
	return "unknown"
}

package app

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/packetplay/internal/app/popupctl"
	"github.com/llehouerou/packetplay/internal/keymap"
	"github.com/llehouerou/packetplay/internal/model"
	"github.com/llehouerou/packetplay/internal/playback"
	"github.com/llehouerou/packetplay/internal/state"
	"github.com/llehouerou/packetplay/internal/ui/controls"
	"github.com/llehouerou/packetplay/internal/ui/recents"
)

// FocusTarget is the panel receiving navigation keys.
type FocusTarget int

const (
	FocusControls FocusTarget = iota
	FocusRecents
)

// Options configures a new Model.
type Options struct {
	Service       playback.Service
	State         state.Interface
	Logger        *slog.Logger
	DefaultFolder string // prefilled in the open prompt
	InitialPath   string // opened on start when set
}

// details is the part of the loaded recording shown in the info panel that
// RecordingInfo does not carry.
type details struct {
	Packets int
	Skipped int
	Format  string
	Link    string
	Size    int64
}

// Model is the root application model.
type Model struct {
	svc   playback.Service
	state state.Interface
	keys  *keymap.Resolver
	log   *slog.Logger
	sub   *playback.Subscription

	defaultFolder string
	initialPath   string
	lastPath      string

	playerState model.PlayerState
	position    model.PlayerPosition
	recording   model.RecordingInfo
	details     details
	settings    model.Settings

	focus    FocusTarget
	selected controls.Button
	recents  recents.Model
	popups   *popupctl.Manager

	status    string
	statusErr bool

	width  int
	height int
}

// New creates the model and subscribes to svc.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		svc:           opts.Service,
		state:         opts.State,
		keys:          keymap.NewResolver(keymap.Bindings),
		log:           log,
		sub:           opts.Service.Subscribe(),
		defaultFolder: opts.DefaultFolder,
		initialPath:   opts.InitialPath,
		playerState:   opts.Service.State(),
		position:      opts.Service.Position(),
		recording:     opts.Service.Recording(),
		settings:      opts.Service.Settings(),
		recents:       recents.New(),
		popups:        popupctl.New(),
	}
	m.refreshDetails()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.WatchServiceEvents(), loadRecentsCmd(m.state)}
	if m.initialPath != "" {
		cmds = append(cmds, openCmd(m.svc, m.initialPath))
	}
	return tea.Batch(cmds...)
}

// refreshDetails reads packet and file details of the loaded recording.
func (m *Model) refreshDetails() {
	rec := m.svc.Capture()
	if rec == nil {
		m.details = details{}
		return
	}
	m.details = details{
		Packets: rec.Len(),
		Skipped: rec.Skipped,
		Format:  string(rec.Format),
		Link:    rec.LinkType.String(),
		Size:    rec.Size,
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = msg != ""
}

// quit stops listening to the service. The caller owns the service and
// closes it once the program returns.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.sub != nil {
		m.svc.Unsubscribe(m.sub)
	}
	return m, tea.Quit
}

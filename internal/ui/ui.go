package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/medley/internal/models"
	"github.com/desertthunder/medley/internal/player"
	"github.com/desertthunder/medley/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistView ViewState = iota
	NowPlayingView
)

// Model represents the TUI application state.
type Model struct {
	view         ViewState
	username     string
	player       *player.Player
	logger       *log.Logger
	width        int
	height       int
	playlistList list.Model
	songList     list.Model
	elapsed      time.Duration
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a TUI model over the user's playlists, driving p.
func NewModel(username string, playlists []*models.Playlist, p *player.Player, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	playlistList := list.New(playlistItems(playlists), list.NewDefaultDelegate(), 0, 0)
	playlistList.Title = fmt.Sprintf("%s's playlists", username)

	songList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	songList.SetFilteringEnabled(false)

	m := &Model{
		view:         PlaylistView,
		username:     username,
		player:       p,
		logger:       logger,
		playlistList: playlistList,
		songList:     songList,
		help:         help.New(),
		keys:         newKeyMap(),
	}

	// A player loaded by the caller opens on its playlist.
	if pl := p.Playlist(); pl != nil {
		m.view = NowPlayingView
		m.songList.Title = pl.Name
		m.syncSongs()
	}
	return m
}

// Init starts the playback clock.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.songList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.view {
		case PlaylistView:
			return m.handlePlaylistKeys(msg)
		case NowPlayingView:
			return m.handleNowPlayingKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgTick:
			m.advanceClock()
			return m, tick()
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case PlaylistView:
		body = m.renderPlaylists()
	case NowPlayingView:
		body = m.renderNowPlaying()
	}
	return fmt.Sprintf("%s\n%s\n\n%s", body, m.renderStatus(), m.help.View(m.keys))
}

// View state accessors, mostly for tests and the command layer.
func (m *Model) ViewState() ViewState { return m.view }
func (m *Model) Elapsed() time.Duration { return m.elapsed }
func (m *Model) Err() error { return m.err }
func (m *Model) Player() *player.Player { return m.player }

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.loadAndPlay(item.playlist)
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		m.togglePlayback()
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleNowPlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistView
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		m.togglePlayback()
	case key.Matches(msg, m.keys.next):
		m.step(m.player.Next)
	case key.Matches(msg, m.keys.prev):
		m.step(m.player.Previous)
	case key.Matches(msg, m.keys.stop):
		m.player.Stop()
		m.elapsed = 0
		m.setStatus("Playback stopped.")
	case key.Matches(msg, m.keys.enter):
		m.seekSelected()
	default:
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		return m, cmd
	}

	m.syncSongs()
	return m, nil
}

func (m *Model) loadAndPlay(pl *models.Playlist) {
	if err := m.player.Load(pl); err != nil {
		m.fail(err)
		return
	}
	m.logger.Debug("playlist loaded", "playlist", pl.Name, "songs", pl.Len())

	if _, err := m.player.Play(); err != nil {
		m.fail(err)
		return
	}

	m.elapsed = 0
	m.view = NowPlayingView
	m.songList.Title = pl.Name
	m.setStatus(fmt.Sprintf("Playlist '%s' loaded.", pl.Name))
	m.syncSongs()
}

func (m *Model) togglePlayback() {
	if m.player.IsPlaying() {
		m.player.Pause()
		m.setStatus("Playback paused.")
		return
	}

	song, err := m.player.Play()
	if err != nil {
		m.fail(err)
		return
	}
	m.setStatus("Now playing: " + song.String())
}

func (m *Model) step(move func() (*models.Song, error)) {
	song, err := move()
	if err != nil {
		m.fail(err)
		return
	}
	m.elapsed = 0
	m.setStatus("Now playing: " + song.String())
}

func (m *Model) seekSelected() {
	i := m.songList.Index()
	if err := m.player.Seek(i); err != nil {
		m.fail(err)
		return
	}
	song, err := m.player.Play()
	if err != nil {
		m.fail(err)
		return
	}
	m.elapsed = 0
	m.setStatus("Now playing: " + song.String())
}

// advanceClock moves the song clock forward and rolls over to the next song at its end.
func (m *Model) advanceClock() {
	song := m.player.CurrentSong()
	if !m.player.IsPlaying() || song == nil {
		return
	}

	m.elapsed += tickInterval
	if m.elapsed < songLength(*song) {
		return
	}

	m.logger.Debug("song finished", "title", song.Title)
	m.step(m.player.Next)
	m.syncSongs()
}

func (m *Model) syncSongs() {
	m.songList.SetItems(songItems(m.player.Playlist(), m.player.Index()))
	m.songList.Select(m.player.Index())
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.err = nil
}

func (m *Model) fail(err error) {
	m.logger.Warn("player error", "error", err)
	m.err = err
	m.status = ""
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case NowPlayingView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) renderPlaylists() string {
	if len(m.playlistList.Items()) == 0 {
		return styles.title.Render(m.playlistList.Title) + "\n" + styles.muted.Render("No playlists available.")
	}
	return m.playlistList.View()
}

func (m *Model) renderNowPlaying() string {
	var b strings.Builder

	if song := m.player.CurrentSong(); song != nil {
		badge := styles.stateStyle(m.player.IsPlaying()).Render(strings.ToUpper(m.player.State().String()))
		b.WriteString(fmt.Sprintf("%s %s\n", badge, styles.title.Render(song.Title)))
		b.WriteString(fmt.Sprintf("%s • %s\n", song.Artist, song.Album))
		b.WriteString(fmt.Sprintf("%s / %s\n\n", shared.FormatDuration(m.elapsed.Minutes()), shared.FormatDuration(song.Duration)))
	} else {
		b.WriteString(styles.paused.Render(strings.ToUpper(m.player.State().String())) + "\n\n")
	}

	b.WriteString(m.songList.View())
	return b.String()
}

func (m *Model) renderStatus() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}
	return styles.muted.Render(m.status)
}

// songLength converts a song's minutes to a duration; zero-length songs last one tick.
func songLength(s models.Song) time.Duration {
	d := time.Duration(s.Duration * float64(time.Minute))
	if d < tickInterval {
		return tickInterval
	}
	return d
}

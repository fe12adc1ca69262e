package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"topspot/internal/models"
	"topspot/internal/services"
	"topspot/internal/tasks"
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	spotify *services.SpotifyService

	artists *tasks.CacheManager[models.RankedArtist]
	tracks  *tasks.CacheManager[models.RankedTrack]
	kind    models.ItemKind

	list    list.Model
	width   int
	height  int
	loading bool
	err     error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, spotify *services.SpotifyService) *Model {
	return &Model{
		ctx:     ctx,
		spotify: spotify,
		artists: tasks.NewArtistCache(),
		tracks:  tasks.NewTrackCache(),
		kind:    models.KindArtists,
		loading: true,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init kicks off the initial fetch of all spans for both item kinds.
func (m *Model) Init() tea.Cmd {
	return m.fetchAll()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		if msg.kind == MsgDatasetsFetched {
			data := msg.data.(fetchedData)
			m.loading = false
			if data.err != nil {
				m.err = data.err
				return m, nil
			}
			m.err = nil
			if err := m.artists.Install(data.artists); err != nil {
				m.err = err
				return m, nil
			}
			if err := m.tracks.Install(data.tracks); err != nil {
				m.err = err
				return m, nil
			}
			m.rebuildList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list with a status line and contextual help.
func (m *Model) View() string {
	if m.loading {
		return styles.title.Render("Loading top items...")
	}
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	return fmt.Sprintf("%s\n\n%s", m.list.View(), m.help.View(m.keys))
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.span1):
		m.setSpan(models.SpanLast4Weeks)
		return m, nil
	case key.Matches(msg, m.keys.span2):
		m.setSpan(models.SpanLast6Months)
		return m, nil
	case key.Matches(msg, m.keys.span3):
		m.setSpan(models.SpanLastYear)
		return m, nil
	case key.Matches(msg, m.keys.sort):
		m.cycleSort()
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if m.kind == models.KindArtists {
			m.kind = models.KindTracks
		} else {
			m.kind = models.KindArtists
		}
		m.rebuildList()
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.loading = true
		m.err = nil
		return m, m.fetchAll()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setSpan(span models.Span) {
	if m.kind == models.KindArtists {
		m.artists.SetActive(span)
	} else {
		m.tracks.SetActive(span)
	}
	m.rebuildList()
}

// cycleSort advances to the next sort key valid for the current item kind.
func (m *Model) cycleSort() {
	keys := models.SortKeysFor(m.kind)
	current := m.activeSort()
	next := keys[0]
	for i, k := range keys {
		if k == current {
			next = keys[(i+1)%len(keys)]
			break
		}
	}

	if m.kind == models.KindArtists {
		m.artists.SortBy(next)
	} else {
		m.tracks.SortBy(next)
	}
	m.rebuildList()
}

func (m *Model) activeSort() models.SortKey {
	if m.kind == models.KindArtists {
		return m.artists.ActiveSort()
	}
	return m.tracks.ActiveSort()
}

func (m *Model) activeSpan() models.Span {
	if m.kind == models.KindArtists {
		return m.artists.ActiveSpan()
	}
	return m.tracks.ActiveSpan()
}

// rebuildList rebuilds the bubbles list from the active dataset of the
// current kind, preserving nothing but window size.
func (m *Model) rebuildList() {
	var items []list.Item
	var title string

	if m.kind == models.KindArtists {
		if dataset, ok := m.artists.Active(); ok {
			items = make([]list.Item, len(dataset.Items))
			for i, artist := range dataset.Items {
				items[i] = artistItem{artist: artist}
			}
		}
		title = "Top Artists"
	} else {
		if dataset, ok := m.tracks.Active(); ok {
			items = make([]list.Item, len(dataset.Items))
			for i, track := range dataset.Items {
				items[i] = trackItem{track: track}
			}
		}
		title = "Top Tracks"
	}

	m.list = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.list.Title = fmt.Sprintf("%s • %s • by %s", title, m.activeSpan().Label(), m.activeSort())
	m.list.SetShowHelp(false)
	m.list.SetSize(m.width-4, m.height-8)
}

// fetchAll loads every span for both kinds in one command so the caches
// land fully populated or not at all.
func (m *Model) fetchAll() tea.Cmd {
	return func() tea.Msg {
		artists, err := m.spotify.AllTopArtists(m.ctx)
		if err != nil {
			return datasetsFetchedMsg(nil, nil, err)
		}
		tracks, err := m.spotify.AllTopTracks(m.ctx)
		if err != nil {
			return datasetsFetchedMsg(nil, nil, err)
		}
		return datasetsFetchedMsg(artists, tracks, nil)
	}
}

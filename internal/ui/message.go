package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"topspot/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgDatasetsFetched MsgKind = iota
)

type fetchedData struct {
	artists []models.SpanDataset[models.RankedArtist]
	tracks  []models.SpanDataset[models.RankedTrack]
	err     error
}

// datasetsFetchedMsg is the constructor for [MsgDatasetsFetched]
func datasetsFetchedMsg(artists []models.SpanDataset[models.RankedArtist], tracks []models.SpanDataset[models.RankedTrack], err error) Msg {
	return Msg{kind: MsgDatasetsFetched, data: fetchedData{artists, tracks, err}}
}

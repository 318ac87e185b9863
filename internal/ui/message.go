package ui

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/slidex/internal/color"
	"github.com/desertthunder/slidex/internal/models"
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
	MsgSlidesFetched MsgKind = iota
	MsgSlideFetched
	MsgImageLoaded
	MsgStateChanged
	MsgLaunched
)

type slidesFetched struct {
	slides []models.Slide
	err    error
}

type slideFetched struct {
	id    string // requested id, compared against the current request on arrival
	slide *models.Slide
	err   error
}

type imageLoaded struct {
	slideID models.ID
	index   int
	sample  color.Sample
	img     image.Image
	err     error
}

// slidesFetchedMsg is the constructor for [MsgSlidesFetched]
func slidesFetchedMsg(slides []models.Slide, err error) Msg {
	return Msg{kind: MsgSlidesFetched, data: slidesFetched{slides, err}}
}

// slideFetchedMsg is the constructor for [MsgSlideFetched]
func slideFetchedMsg(id string, slide *models.Slide, err error) Msg {
	return Msg{kind: MsgSlideFetched, data: slideFetched{id, slide, err}}
}

// imageLoadedMsg is the constructor for [MsgImageLoaded]
func imageLoadedMsg(loaded imageLoaded) Msg {
	return Msg{kind: MsgImageLoaded, data: loaded}
}

// stateChangedMsg is the constructor for [MsgStateChanged]. It carries no state; the model reads the
// controller when it arrives.
func stateChangedMsg() Msg {
	return Msg{kind: MsgStateChanged}
}

// launchedMsg is the constructor for [MsgLaunched]
func launchedMsg(name string, err error) Msg {
	return Msg{kind: MsgLaunched, data: launched{name, err}}
}

type launched struct {
	name string
	err  error
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	playing lipgloss.Style
	err     lipgloss.Style
	paused  lipgloss.Style
	muted   lipgloss.Style
}

// NewPalette builds a [Palette] from title, playing, error, paused and muted foreground colors.
func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		playing: NewBold(s),
		err:     NewBold(e),
		paused:  NewStyle(w),
		muted:   NewEm(h),
	}
}

// stateStyle picks the style used for the status badge of a player state.
func (p *Palette) stateStyle(playing bool) lipgloss.Style {
	if playing {
		return p.playing
	}
	return p.paused
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Package ui implements the interactive player using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [PlaylistView] : Browse the logged-in user's playlists and load one
//  2. [NowPlayingView] : The loaded playlist's songs with the current song highlighted
//
// Every transition goes through [player.Player]; the model only mirrors its state. Player errors
// (empty playlist, nothing loaded) are rendered in the status line and never end the program.
//
// A one-second tick advances the elapsed time of the current song and moves to the next song when
// the song's duration has passed. Nothing is decoded or played back; the clock is the whole show.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, space, n/p, s, esc, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/medley/internal/library"
	"github.com/desertthunder/medley/internal/player"
	"github.com/desertthunder/medley/internal/shared"
	"github.com/desertthunder/medley/internal/ui"
)

// Play launches the playback TUI over the user's playlists.
//
// With --playlist the named playlist is loaded and started before the UI opens.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command, user *library.User) error {
	if !r.prompter.Interactive() {
		return fmt.Errorf("%w: play needs an interactive terminal", shared.ErrInvalidInput)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.TUIFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	p := player.New()
	if name := cmd.String("playlist"); name != "" {
		pl, err := user.Playlist(name)
		if err != nil {
			return err
		}
		if err := p.Load(pl); err != nil {
			return err
		}
		if _, err := p.Play(); err != nil {
			return err
		}
	}

	model := ui.NewModel(user.Username(), user.Playlists(), p, fileLogger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

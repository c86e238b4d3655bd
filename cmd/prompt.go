package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/desertthunder/medley/internal/shared"
)

// Prompter asks the user for corrected or missing input.
//
// Commands only prompt when Interactive reports a terminal; otherwise they return the error.
type Prompter interface {
	Interactive() bool
	Input(title string, validate func(string) error) (string, error)
	Password(title string) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter implements [Prompter] with charmbracelet/huh fields.
type HuhPrompter struct{}

// Interactive reports whether stdin and stdout are terminals.
func (HuhPrompter) Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (HuhPrompter) Input(title string, validate func(string) error) (string, error) {
	var value string
	input := huh.NewInput().Title(title).Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	if err := input.Run(); err != nil {
		return "", promptError(err)
	}
	return value, nil
}

func (HuhPrompter) Password(title string) (string, error) {
	var value string
	if err := huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&value).Run(); err != nil {
		return "", promptError(err)
	}
	return value, nil
}

func (HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	if err := huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok).Run(); err != nil {
		return false, promptError(err)
	}
	return ok, nil
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("%w: prompt cancelled", shared.ErrInvalidInput)
	}
	return fmt.Errorf("prompt failed: %w", err)
}

// notEmpty is a huh validator for required fields.
func notEmpty(s string) error {
	if s == "" {
		return errors.New("a value is required")
	}
	return nil
}

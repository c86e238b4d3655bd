package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrUnknownDriver = fmt.Errorf("unknown store driver")

	// Account errors
	ErrUsernameTaken      = fmt.Errorf("username already exists")
	ErrEmailTaken         = fmt.Errorf("email address already in use")
	ErrInvalidEmail       = fmt.Errorf("invalid email address")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrAccountNotFound    = fmt.Errorf("account not found")

	// Library errors
	ErrDuplicateSong    = fmt.Errorf("song with the same title already exists")
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrPlaylistExists   = fmt.Errorf("playlist already exists")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

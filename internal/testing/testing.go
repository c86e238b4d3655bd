// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/medley/internal/models"
)

// MockStore is a test double for [repositories.AccountStore] that records saves and can be made to fail.
type MockStore struct {
	mu       sync.Mutex
	Accounts []models.Account
	LoadErr  error
	SaveErr  error
	Saves    int
}

// NewMockStore creates a [MockStore] seeded with accounts.
func NewMockStore(accounts ...models.Account) *MockStore {
	return &MockStore{Accounts: append([]models.Account{}, accounts...)}
}

func (m *MockStore) Load() ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]models.Account{}, m.Accounts...), nil
}

func (m *MockStore) Save(accounts []models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Accounts = append([]models.Account{}, accounts...)
	return nil
}

// SaveCount returns how many saves succeeded.
func (m *MockStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves
}

// ScriptedPrompter answers prompts from canned responses, in order.
//
// Running out of answers returns an error so a test can't loop forever.
type ScriptedPrompter struct {
	TTY      bool
	Answers  []string
	Confirms []bool
	Asked    []string
}

func (p *ScriptedPrompter) Interactive() bool { return p.TTY }

func (p *ScriptedPrompter) Input(title string, validate func(string) error) (string, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Answers) == 0 {
		return "", errors.New("no scripted answer for " + title)
	}

	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (p *ScriptedPrompter) Password(title string) (string, error) {
	return p.Input(title, nil)
}

func (p *ScriptedPrompter) Confirm(title string) (bool, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Confirms) == 0 {
		return false, errors.New("no scripted confirmation for " + title)
	}

	ok := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return ok, nil
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *log.Logger {
	return log.New(io.Discard)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Package users provides the optional fan-out allowlist for recsweep
package users

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Allowlist restricts which enumerated account users are fanned out during a
// meetings search. An empty file path disables filtering: every user is
// allowed. The backing file holds one email per line, with # comments.
type Allowlist struct {
	config    Config
	emails    map[string]bool
	mutex     sync.RWMutex
	watcher   *fsnotify.Watcher
	stopWatch chan struct{}
	stats     Stats
}

// Config holds configuration for the allowlist
type Config struct {
	FilePath  string // Path to the allowlist file (empty disables filtering)
	WatchFile bool   // Whether to watch the file for changes
}

// Stats provides statistics about the loaded allowlist
type Stats struct {
	TotalUsers  int
	LastUpdated time.Time
	FilePath    string
	IsWatching  bool
}

// Email validation regex (basic validation) - allows underscores in domain
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9._-]+\.[a-zA-Z]{2,}$`)

// NewAllowlist creates a new allowlist, loading the file if one is configured
func NewAllowlist(config Config) (*Allowlist, error) {
	a := &Allowlist{
		config:    config,
		emails:    make(map[string]bool),
		stopWatch: make(chan struct{}),
		stats: Stats{
			FilePath:   config.FilePath,
			IsWatching: config.WatchFile,
		},
	}

	// No file path means no filtering, all users are allowed
	if config.FilePath == "" {
		return a, nil
	}

	if err := a.load(); err != nil {
		return nil, fmt.Errorf("failed to load allowlist: %w", err)
	}

	if config.WatchFile {
		if err := a.setupFileWatcher(); err != nil {
			return nil, fmt.Errorf("failed to setup file watcher: %w", err)
		}
	}

	return a, nil
}

// Allowed reports whether a user email may be fanned out. Comparison is
// case-insensitive.
func (a *Allowlist) Allowed(email string) bool {
	if a.config.FilePath == "" {
		return true
	}

	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.emails[strings.ToLower(email)]
}

// GetStats returns statistics about the loaded allowlist
func (a *Allowlist) GetStats() Stats {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.stats
}

// Reload reloads the allowlist from the file
func (a *Allowlist) Reload() error {
	if a.config.FilePath == "" {
		return nil
	}
	return a.load()
}

// Close closes the allowlist and cleans up resources
func (a *Allowlist) Close() error {
	if a.config.WatchFile && a.watcher != nil {
		close(a.stopWatch)
		return a.watcher.Close()
	}
	return nil
}

// load reads the allowlist file into the email set
func (a *Allowlist) load() error {
	file, err := os.Open(a.config.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open allowlist file: %w", err)
	}
	defer file.Close()

	newEmails := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !isValidEmail(line) {
			continue
		}

		newEmails[strings.ToLower(line)] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading allowlist file: %w", err)
	}

	a.mutex.Lock()
	a.emails = newEmails
	a.stats.TotalUsers = len(newEmails)
	a.stats.LastUpdated = time.Now()
	a.mutex.Unlock()

	return nil
}

// setupFileWatcher sets up file system watching for the allowlist file
func (a *Allowlist) setupFileWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(a.config.FilePath); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch file: %w", err)
	}

	a.watcher = watcher
	go a.watchFileChanges()

	return nil
}

// watchFileChanges handles file system events for the allowlist file
func (a *Allowlist) watchFileChanges() {
	for {
		select {
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				// Small delay to ensure file write is complete
				time.Sleep(10 * time.Millisecond)
				if err := a.load(); err != nil {
					continue
				}
			}

		case _, ok := <-a.watcher.Errors:
			if !ok {
				return
			}

		case <-a.stopWatch:
			return
		}
	}
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	if email == "" || len(email) > 320 {
		return false
	}
	if strings.TrimSpace(email) != email {
		return false
	}
	return emailRegex.MatchString(email)
}

// Package lockfile keeps two colony processes from writing the same SQLite
// database at once. The lock is a file holding the owner's PID; a lock left
// behind by a dead process is taken over.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrLocked is returned when a live process already holds the lock
type ErrLocked struct {
	Path string
	PID  int
}

func (e *ErrLocked) Error() string {
	return fmt.Sprintf("database is in use by another colony process (PID %d, lock %s)", e.PID, e.Path)
}

// LockFile is a PID lock at a fixed path
type LockFile struct {
	path string
	held bool
}

// New creates a lock at path. Nothing is written until Acquire.
func New(path string) *LockFile {
	return &LockFile{path: path}
}

// ForDatabase returns the lock guarding the SQLite file at dbPath
func ForDatabase(dbPath string) *LockFile {
	return New(dbPath + ".lock")
}

// Path returns the lock file location
func (l *LockFile) Path() string {
	return l.path
}

// Acquire takes the lock, clearing a stale one first
func (l *LockFile) Acquire() error {
	if data, err := os.ReadFile(l.path); err == nil {
		pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err == nil && isProcessRunning(pid) {
			return &ErrLocked{Path: l.path, PID: pid}
		}
		_ = os.Remove(l.path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	// O_EXCL so a racing process that also found no lock loses here
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return &ErrLocked{Path: l.path}
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		_ = os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	l.held = true
	return nil
}

// Release removes the lock if this LockFile holds it
func (l *LockFile) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// isProcessRunning sends signal 0, which only checks the process exists
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM: the process exists but belongs to someone else
	return errors.Is(err, syscall.EPERM)
}

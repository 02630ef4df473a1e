package log

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

type OperationType string

const (
	OpRename    OperationType = "rename"
	OpCreateDir OperationType = "create_dir"
)

// Operation is one filesystem change attempted during a run. Source is
// empty for created directories.
type Operation struct {
	Type   OperationType `json:"type"`
	Source string        `json:"source,omitempty"`
	Target string        `json:"target"`
	Time   time.Time     `json:"time"`
	Error  string        `json:"error,omitempty"`
}

// Applied reports whether the change reached the filesystem.
func (o Operation) Applied() bool {
	return o.Error == ""
}

// Session records one movies or shows run.
type Session struct {
	ID         string      `json:"id"`
	Mode       string      `json:"mode"`
	Args       []string    `json:"args,omitempty"`
	Started    time.Time   `json:"started"`
	Operations []Operation `json:"operations"`

	path string
}

// Path is the log file the session was read from or written to.
func (s *Session) Path() string {
	return s.path
}

// Counts returns how many operations were applied and how many failed.
func (s *Session) Counts() (applied, failed int) {
	for _, op := range s.Operations {
		if op.Applied() {
			applied++
		} else {
			failed++
		}
	}
	return applied, failed
}

// sessionIDLayout sorts chronologically and doubles as the file name.
const sessionIDLayout = "2006-01-02_150405.000"

var (
	mu      sync.Mutex
	current *Session
	enabled = true

	// dirOverride replaces the default log directory when set.
	dirOverride string
)

// Initialize turns session logging on or off and removes logs older than
// retentionDays.
func Initialize(enable bool, retentionDays int) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if enable && retentionDays > 0 {
		if err := prune(time.Now().AddDate(0, 0, -retentionDays)); err != nil {
			Logger().WithError(err).Warn("failed to clean up old logs")
		}
	}
}

// StartSession begins recording a run in mode.
func StartSession(mode string, args []string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	now := time.Now()
	current = &Session{
		ID:         now.Format(sessionIDLayout),
		Mode:       mode,
		Args:       args,
		Started:    now,
		Operations: []Operation{},
	}
}

// EndSession writes the current session to the log directory. A run that
// changed nothing leaves no log.
func EndSession() error {
	mu.Lock()
	defer mu.Unlock()

	s := current
	current = nil
	if s == nil || len(s.Operations) == 0 {
		return nil
	}
	return writeSession(s)
}

// LogRename records moving src to dst. A non-nil err marks the attempt
// as failed.
func LogRename(src, dst string, err error) {
	record(OpRename, src, dst, err)
}

// LogCreateDir records creating dir.
func LogCreateDir(dir string, err error) {
	record(OpCreateDir, "", dir, err)
}

func record(typ OperationType, source, target string, err error) {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		return
	}
	op := Operation{Type: typ, Source: source, Target: target, Time: time.Now()}
	if err != nil {
		op.Error = err.Error()
	}
	current.Operations = append(current.Operations, op)
}

// LogDir returns the directory session logs are written to,
// ~/.video-clerk/logs by default.
func LogDir() (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".video-clerk", "logs"), nil
}

func writeSession(s *Session) error {
	dir, err := LogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}
	path := filepath.Join(dir, s.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	s.path = path
	return nil
}

func readSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.path = path
	return &s, nil
}

// sessionFiles lists session log files, newest first.
func sessionFiles() ([]string, error) {
	dir, err := LogDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// ReadSessions returns up to limit sessions, newest first. Unreadable
// files are skipped and do not count toward limit. A limit of zero or
// less reads every session.
func ReadSessions(limit int) ([]*Session, error) {
	files, err := sessionFiles()
	if err != nil {
		return nil, err
	}

	var sessions []*Session
	for _, file := range files {
		if limit > 0 && len(sessions) == limit {
			break
		}
		s, err := readSession(file)
		if err != nil {
			Logger().WithError(err).Debug("skipping unreadable session log")
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// RemoveSession deletes the log file of s.
func RemoveSession(s *Session) error {
	if s.path == "" {
		return fmt.Errorf("session %s has no log file", s.ID)
	}
	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("failed to remove log file: %w", err)
	}
	return nil
}

// prune removes session logs last written before cutoff. The caller holds mu.
func prune(cutoff time.Time) error {
	files, err := sessionFiles()
	if err != nil {
		return err
	}
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(file); err != nil {
			Logger().WithError(err).WithField("file", file).Warn("failed to remove old log file")
		}
	}
	return nil
}

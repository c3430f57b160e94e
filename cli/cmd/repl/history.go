package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/ardnew/litcfg/pkg"
)

// HistoryFile is the base name of the history file in the cache directory.
const HistoryFile = "history.utf8"

const (
	historyFileMode fs.FileMode = 0o600
	historyDirMode  fs.FileMode = 0o700
)

// ErrHistory is returned when the history file cannot be read or written.
var ErrHistory = pkg.NewError("history file")

// History is the list of entered lines, oldest first, persisted one per
// line.
type History struct {
	fs      afero.Fs
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory returns an empty history stored at path on fsys. An empty
// path keeps the history in memory only.
func NewHistory(fsys afero.Fs, path string) *History {
	return &History{fs: fsys, path: path}
}

// Load replaces the entries with those in the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := h.fs.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return ErrHistory.Wrap(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrHistory.Wrap(err)
	}

	return nil
}

// Add appends line, moving an earlier copy of it to the end.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return nil
	}

	i := slices.Index(h.entries, line)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, line)

	if h.path == "" {
		return nil
	}

	if i >= 0 {
		return h.rewrite()
	}

	return h.write(os.O_APPEND|os.O_CREATE|os.O_WRONLY, line)
}

// At returns the entry at index i; 0 is the oldest.
func (h *History) At(i int) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", false
	}

	return h.entries[i], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// rewrite writes every entry to the file. Must be called with h.mu held.
func (h *History) rewrite() error {
	return h.write(os.O_TRUNC|os.O_CREATE|os.O_WRONLY, h.entries...)
}

func (h *History) write(flag int, lines ...string) error {
	if err := h.fs.MkdirAll(filepath.Dir(h.path), historyDirMode); err != nil {
		return ErrHistory.Wrap(err)
	}

	file, err := h.fs.OpenFile(h.path, flag, historyFileMode)
	if err != nil {
		return ErrHistory.Wrap(err)
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			return ErrHistory.Wrap(err)
		}
	}

	return nil
}

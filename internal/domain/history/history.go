package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// DefaultLimit is the number of recent projects kept
const DefaultLimit = 5

// Push returns entries with entry moved to the front. Earlier entries with the
// same URL are removed and the result is truncated to limit. The input slice
// is not modified.
func Push(entries []types.HistoryEntry, entry types.HistoryEntry, limit int) []types.HistoryEntry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]types.HistoryEntry, 0, min(len(entries)+1, limit))
	out = append(out, entry)
	for _, e := range entries {
		if len(out) == limit {
			break
		}
		if e.URL == entry.URL {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Store persists the recent project list as a JSON array
type Store struct {
	path   string
	limit  int
	logger *logging.Logger

	mu sync.Mutex
}

// NewStore creates a store backed by the file at path
func NewStore(path string, limit int, logger *logging.Logger) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{path: path, limit: limit, logger: logger}
}

// List returns the stored entries, most recent first. A missing file is an
// empty history.
func (s *Store) List() ([]types.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Record pushes entry and writes the list back atomically
func (s *Store) Record(entry types.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking new entries.
		s.logger.Warn("Discarding unreadable history", zap.String("path", s.path), zap.Error(err))
		entries = nil
	}

	if err := s.save(Push(entries, entry, s.limit)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (s *Store) load() ([]types.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []types.HistoryEntry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries, nil
}

func (s *Store) save(entries []types.HistoryEntry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := sonic.ConfigStd.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

package channels

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

// Record is the persisted channel configuration. Nil means unset and is
// written as JSON null.
type Record struct {
	LogChannel       *string `json:"logChannel"`
	WhitelistChannel *string `json:"whitelistChannel"`
}

// Configured reports whether both channels are known.
func (r Record) Configured() bool {
	return r.LogChannel != nil && *r.LogChannel != "" &&
		r.WhitelistChannel != nil && *r.WhitelistChannel != ""
}

func (r Record) LogChannelID() string       { return deref(r.LogChannel) }
func (r Record) WhitelistChannelID() string { return deref(r.WhitelistChannel) }

type Store struct {
	mu   sync.Mutex
	path string
	rec  Record
}

// Open loads the record at path. A missing file yields an empty record; it is
// created on the first write.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.L().Info("channel config not found, starting unconfigured", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read channel config: %w", err)
	}
	if err := json.Unmarshal(data, &s.rec); err != nil {
		return nil, fmt.Errorf("parse channel config %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

// Get returns a copy of the current record.
func (s *Store) Get() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Record{
		LogChannel:       clone(s.rec.LogChannel),
		WhitelistChannel: clone(s.rec.WhitelistChannel),
	}
}

func (s *Store) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Configured()
}

// CaptureIfUnset stores both ids when either channel is unset and reports
// whether the record changed. A configured record is never overwritten. On a
// failed write the in-memory record is left as it was.
func (s *Store) CaptureIfUnset(logID, whitelistID string) (bool, error) {
	if logID == "" || whitelistID == "" {
		return false, errors.New("channel ids must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec.Configured() {
		return false, nil
	}

	next := Record{LogChannel: &logID, WhitelistChannel: &whitelistID}
	if err := s.write(next); err != nil {
		return false, err
	}
	s.rec = next
	logging.L().Info("channel config saved", "path", s.path, "log_channel", logID, "whitelist_channel", whitelistID)
	return true, nil
}

func (s *Store) write(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal channel config: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes to a temp file in the target directory, syncs it and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

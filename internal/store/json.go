package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/amishk599/autoapply/internal/model"
)

// ErrLocked is returned by Lock when another process holds the state lock.
var ErrLocked = errors.New("state file is locked by another run")

// JSONStore keeps applied records in a single pretty-printed JSON array.
// Every append rewrites the whole file through a temp file and rename.
type JSONStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

var _ model.AppliedStore = (*JSONStore)(nil)

// NewJSONStore returns a store backed by the file at path. The file and its
// directory are created on the first append.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	return &JSONStore{path: path, logger: logger, now: time.Now}
}

// Path returns the state file location.
func (s *JSONStore) Path() string { return s.path }

// Load reads every record. A missing file yields an empty list; an unreadable
// or malformed file is logged and also yields an empty list.
func (s *JSONStore) Load() []model.AppliedRecord {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		s.logger.Warn("could not read state file, starting fresh", "path", s.path, "error", err)
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("malformed state file, starting fresh", "path", s.path, "error", err)
		return nil
	}

	records := make([]model.AppliedRecord, 0, len(items))
	dropped := 0
	for _, item := range items {
		rec, ok := decodeRecord(item)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		s.logger.Warn("ignored unreadable state records", "path", s.path, "count", dropped)
	}
	return records
}

// decodeRecord decodes one record. Records written by older versions may
// carry numeric ids or odd timestamps; those keep their job_url so the
// duplicate check still works.
func decodeRecord(item json.RawMessage) (model.AppliedRecord, bool) {
	var rec model.AppliedRecord
	if err := json.Unmarshal(item, &rec); err == nil {
		return rec, rec.JobURL != ""
	}
	var loose struct {
		Source  any    `json:"source"`
		JobID   any    `json:"job_id"`
		JobURL  string `json:"job_url"`
		Company any    `json:"company"`
	}
	if err := json.Unmarshal(item, &loose); err != nil || loose.JobURL == "" {
		return model.AppliedRecord{}, false
	}
	return model.AppliedRecord{
		Source:  stringify(loose.Source),
		JobID:   stringify(loose.JobID),
		JobURL:  loose.JobURL,
		Company: stringify(loose.Company),
	}, true
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsApplied reports whether url matches a record's job_url exactly.
func IsApplied(url string, records []model.AppliedRecord) bool {
	for _, r := range records {
		if r.JobURL == url {
			return true
		}
	}
	return false
}

// Append adds rec to records and persists the full collection. AppliedAt is
// stamped in UTC when unset. The returned slice includes rec even when the
// write fails, so the caller's in-memory view stays current.
func (s *JSONStore) Append(rec model.AppliedRecord, records []model.AppliedRecord) ([]model.AppliedRecord, error) {
	if rec.AppliedAt.IsZero() {
		rec.AppliedAt = s.now().UTC().Truncate(time.Second)
	}
	records = append(records, rec)
	if err := s.write(records); err != nil {
		return records, fmt.Errorf("saving applied record for %s: %w", rec.JobURL, err)
	}
	return records, nil
}

func (s *JSONStore) write(records []model.AppliedRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if records == nil {
		records = []model.AppliedRecord{}
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		return fmt.Errorf("encode records: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Lock takes an advisory lock next to the state file so two runs cannot
// interleave appends. It fails fast with ErrLocked instead of waiting.
func (s *JSONStore) Lock() (unlock func() error, err error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	fl := flock.New(s.path + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock state file: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl.Unlock, nil
}

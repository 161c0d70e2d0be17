package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"gtdone/internal/model"
)

const (
	// DefaultQuotaBytes mirrors the ~5 MiB a browser grants local storage.
	DefaultQuotaBytes = 5 << 20

	// DefaultWarnFraction is the usage fraction that triggers proactive
	// archive eviction before a write.
	DefaultWarnFraction = 0.8
)

type Options struct {
	QuotaBytes   int64
	WarnFraction float64
	Logger       *zap.Logger
}

// Bolt persists the collections in a single-bucket bbolt file.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
	quota  int64
	warn   float64
	log    *zap.Logger
}

// Open initializes the database file and ensures the bucket exists.
func Open(path string, opts Options) (*Bolt, error) {
	if opts.QuotaBytes == 0 {
		opts.QuotaBytes = DefaultQuotaBytes
	}
	if opts.WarnFraction <= 0 || opts.WarnFraction >= 1 {
		opts.WarnFraction = DefaultWarnFraction
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte("gtd")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{
		db:     db,
		bucket: bucket,
		quota:  opts.QuotaBytes,
		warn:   opts.WarnFraction,
		log:    opts.Logger,
	}, nil
}

func (s *Bolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// load leaves dst untouched (empty) for missing or corrupted keys.
func (s *Bolt) load(key string, dst any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			s.log.Warn("discarding corrupted storage entry",
				zap.String("key", key), zap.Error(err))
		}
		return nil
	})
}

// save enforces the soft quota: crossing the warning threshold evicts the
// oldest archived tasks first; a write that would still not fit triggers a
// larger eviction pass and one retry before reporting ErrQuotaExceeded.
func (s *Bolt) save(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)

		projected := s.projectedBytes(b, key, int64(len(payload)))
		warnLimit := int64(s.warn * float64(s.quota))

		if projected > warnLimit && key != keyArchive {
			s.evictArchive(b, projected-warnLimit)
			projected = s.projectedBytes(b, key, int64(len(payload)))
		}
		if projected > s.quota && key != keyArchive {
			// Larger pass: give up on the archive entirely if needed.
			s.evictArchive(b, projected)
			projected = s.projectedBytes(b, key, int64(len(payload)))
		}
		if projected > s.quota {
			return ErrQuotaExceeded
		}
		return b.Put([]byte(key), payload)
	})
}

// projectedBytes estimates total stored bytes with key replaced by a value
// of newLen bytes.
func (s *Bolt) projectedBytes(b *bolt.Bucket, key string, newLen int64) int64 {
	total := newLen
	_ = b.ForEach(func(k, v []byte) error {
		if string(k) != key {
			total += int64(len(v))
		}
		return nil
	})
	return total
}

// evictArchive drops archived tasks oldest-first until roughly freeBytes
// have been reclaimed, or the archive is empty.
func (s *Bolt) evictArchive(b *bolt.Bucket, freeBytes int64) {
	raw := b.Get([]byte(keyArchive))
	if raw == nil {
		return
	}
	var archive []model.ArchivedTask
	if err := json.Unmarshal(raw, &archive); err != nil {
		// A corrupted archive frees its whole footprint.
		_ = b.Delete([]byte(keyArchive))
		s.log.Warn("dropped corrupted archive during eviction", zap.Error(err))
		return
	}

	sort.Slice(archive, func(i, j int) bool {
		return archive[i].ArchivedAt.Before(archive[j].ArchivedAt)
	})

	before := int64(len(raw))
	evicted := 0
	for len(archive) > 0 {
		next, err := json.Marshal(archive)
		if err != nil {
			return
		}
		if before-int64(len(next)) >= freeBytes {
			break
		}
		archive = archive[1:]
		evicted++
	}

	next, err := json.Marshal(archive)
	if err != nil {
		return
	}
	if err := b.Put([]byte(keyArchive), next); err != nil {
		return
	}
	if evicted > 0 {
		s.log.Info("evicted archived tasks to reclaim storage",
			zap.Int("evicted", evicted))
	}
}

func (s *Bolt) LoadTasks() ([]model.Task, error) {
	var out []model.Task
	err := s.load(keyTasks, &out)
	return out, err
}

func (s *Bolt) SaveTasks(tasks []model.Task) error {
	return s.save(keyTasks, emptyNotNil(tasks))
}

func (s *Bolt) LoadProjects() ([]model.Project, error) {
	var out []model.Project
	err := s.load(keyProjects, &out)
	return out, err
}

func (s *Bolt) SaveProjects(projects []model.Project) error {
	return s.save(keyProjects, emptyNotNil(projects))
}

func (s *Bolt) LoadTemplates() ([]model.Template, error) {
	var out []model.Template
	err := s.load(keyTemplates, &out)
	return out, err
}

func (s *Bolt) SaveTemplates(templates []model.Template) error {
	return s.save(keyTemplates, emptyNotNil(templates))
}

func (s *Bolt) LoadArchive() ([]model.ArchivedTask, error) {
	var out []model.ArchivedTask
	err := s.load(keyArchive, &out)
	return out, err
}

func (s *Bolt) SaveArchive(archive []model.ArchivedTask) error {
	return s.save(keyArchive, emptyNotNil(archive))
}

func (s *Bolt) LoadReferences() ([]model.Reference, error) {
	var out []model.Reference
	err := s.load(keyReferences, &out)
	return out, err
}

func (s *Bolt) SaveReferences(refs []model.Reference) error {
	return s.save(keyReferences, emptyNotNil(refs))
}

func (s *Bolt) LoadSettings() (model.Settings, error) {
	out := model.DefaultSettings()
	err := s.load(keySettings, &out)
	return out, err
}

func (s *Bolt) SaveSettings(settings model.Settings) error {
	return s.save(keySettings, settings)
}

func (s *Bolt) SaveAll(tasks []model.Task, projects []model.Project, templates []model.Template) error {
	if err := s.SaveTasks(tasks); err != nil {
		return err
	}
	if err := s.SaveProjects(projects); err != nil {
		return err
	}
	return s.SaveTemplates(templates)
}

func (s *Bolt) Usage() (Usage, error) {
	u := Usage{Quota: s.quota}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			u.Bytes += int64(len(v))
			return nil
		})
	})
	return u, err
}

// emptyNotNil keeps persisted collections as [] rather than null.
func emptyNotNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

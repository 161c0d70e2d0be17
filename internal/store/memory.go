package store

import (
	"encoding/json"
	"sort"
	"sync"

	"gtdone/internal/model"
)

// Memory is a map-backed Store with the same quota semantics as Bolt, for
// tests and the no-persistence mode.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int64
	warn  float64
}

func NewMemory() *Memory {
	return &Memory{
		data:  map[string][]byte{},
		quota: DefaultQuotaBytes,
		warn:  DefaultWarnFraction,
	}
}

// NewMemoryWithQuota is used by quota tests; quota <= 0 means unlimited.
func NewMemoryWithQuota(quota int64) *Memory {
	m := NewMemory()
	m.quota = quota
	return m
}

func (m *Memory) Close() error { return nil }

func (m *Memory) load(key string, dst any) error {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	// Corrupted entries are discarded, matching Bolt.
	_ = json.Unmarshal(raw, dst)
	return nil
}

func (m *Memory) save(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		warnLimit := int64(m.warn * float64(m.quota))
		if m.projectedLocked(key, int64(len(payload))) > warnLimit && key != keyArchive {
			m.evictArchiveLocked(m.projectedLocked(key, int64(len(payload))) - warnLimit)
		}
		if m.projectedLocked(key, int64(len(payload))) > m.quota && key != keyArchive {
			m.evictArchiveLocked(m.projectedLocked(key, int64(len(payload))))
		}
		if m.projectedLocked(key, int64(len(payload))) > m.quota {
			return ErrQuotaExceeded
		}
	}

	m.data[key] = payload
	return nil
}

func (m *Memory) projectedLocked(key string, newLen int64) int64 {
	total := newLen
	for k, v := range m.data {
		if k != key {
			total += int64(len(v))
		}
	}
	return total
}

func (m *Memory) evictArchiveLocked(freeBytes int64) {
	raw, ok := m.data[keyArchive]
	if !ok {
		return
	}
	var archive []model.ArchivedTask
	if err := json.Unmarshal(raw, &archive); err != nil {
		delete(m.data, keyArchive)
		return
	}
	sort.Slice(archive, func(i, j int) bool {
		return archive[i].ArchivedAt.Before(archive[j].ArchivedAt)
	})

	before := int64(len(raw))
	for len(archive) > 0 {
		next, err := json.Marshal(archive)
		if err != nil {
			return
		}
		if before-int64(len(next)) >= freeBytes {
			break
		}
		archive = archive[1:]
	}
	next, err := json.Marshal(archive)
	if err != nil {
		return
	}
	m.data[keyArchive] = next
}

// Corrupt overwrites a key with invalid JSON, for recovery tests.
func (m *Memory) Corrupt(key string) {
	m.mu.Lock()
	m.data[key] = []byte("{not json")
	m.mu.Unlock()
}

func (m *Memory) LoadTasks() ([]model.Task, error) {
	var out []model.Task
	err := m.load(keyTasks, &out)
	return out, err
}

func (m *Memory) SaveTasks(tasks []model.Task) error {
	return m.save(keyTasks, emptyNotNil(tasks))
}

func (m *Memory) LoadProjects() ([]model.Project, error) {
	var out []model.Project
	err := m.load(keyProjects, &out)
	return out, err
}

func (m *Memory) SaveProjects(projects []model.Project) error {
	return m.save(keyProjects, emptyNotNil(projects))
}

func (m *Memory) LoadTemplates() ([]model.Template, error) {
	var out []model.Template
	err := m.load(keyTemplates, &out)
	return out, err
}

func (m *Memory) SaveTemplates(templates []model.Template) error {
	return m.save(keyTemplates, emptyNotNil(templates))
}

func (m *Memory) LoadArchive() ([]model.ArchivedTask, error) {
	var out []model.ArchivedTask
	err := m.load(keyArchive, &out)
	return out, err
}

func (m *Memory) SaveArchive(archive []model.ArchivedTask) error {
	return m.save(keyArchive, emptyNotNil(archive))
}

func (m *Memory) LoadReferences() ([]model.Reference, error) {
	var out []model.Reference
	err := m.load(keyReferences, &out)
	return out, err
}

func (m *Memory) SaveReferences(refs []model.Reference) error {
	return m.save(keyReferences, emptyNotNil(refs))
}

func (m *Memory) LoadSettings() (model.Settings, error) {
	out := model.DefaultSettings()
	err := m.load(keySettings, &out)
	return out, err
}

func (m *Memory) SaveSettings(settings model.Settings) error {
	return m.save(keySettings, settings)
}

func (m *Memory) SaveAll(tasks []model.Task, projects []model.Project, templates []model.Template) error {
	if err := m.SaveTasks(tasks); err != nil {
		return err
	}
	if err := m.SaveProjects(projects); err != nil {
		return err
	}
	return m.SaveTemplates(templates)
}

func (m *Memory) Usage() (Usage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u := Usage{Quota: m.quota}
	for _, v := range m.data {
		u.Bytes += int64(len(v))
	}
	return u, nil
}

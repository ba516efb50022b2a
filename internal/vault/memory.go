package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"lignee/internal/lignee"
)

type memoryArchive struct {
	data       []byte
	modifiedAt time.Time
}

// MemoryVault keeps archives in memory. It is safe for concurrent use.
type MemoryVault struct {
	name     string
	archives map[string]memoryArchive
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:     name,
		archives: make(map[string]memoryArchive),
		now:      time.Now,
	}
}

// PutArchive stores an archive, replacing any previous one with the same name.
func (m *MemoryVault) PutArchive(name string, r io.Reader, size int64) error {
	if err := checkName(name); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.archives[name] = memoryArchive{data: data, modifiedAt: m.now()}
	return nil
}

// GetArchive writes the named archive to w.
func (m *MemoryVault) GetArchive(name string, w io.Writer) error {
	m.mu.RLock()
	a, ok := m.archives[name]
	m.mu.RUnlock()

	if !ok {
		return notFound(name)
	}
	if _, err := io.Copy(w, bytes.NewReader(a.data)); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// ListArchives returns every stored archive, newest first.
func (m *MemoryVault) ListArchives() ([]lignee.ArchiveInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	archives := make([]lignee.ArchiveInfo, 0, len(m.archives))
	for name, a := range m.archives {
		archives = append(archives, lignee.ArchiveInfo{
			Name:       name,
			Size:       int64(len(a.data)),
			ModifiedAt: a.modifiedAt,
		})
	}
	sortNewestFirst(archives)
	return archives, nil
}

// DeleteArchive removes the named archive.
func (m *MemoryVault) DeleteArchive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.archives[name]; !ok {
		return notFound(name)
	}
	delete(m.archives, name)
	return nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

var _ lignee.Vault = (*MemoryVault)(nil)

package lignee

import (
	"errors"
	"io"
	"time"
)

// ArchiveInfo describes one stored GEDCOM archive.
type ArchiveInfo struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// Vault stores GEDCOM archives produced by backups.
// All operations stream through io.Reader/io.Writer.
type Vault interface {
	// PutArchive stores an archive under name, replacing any previous one.
	// size is the number of bytes that will be read from r.
	PutArchive(name string, r io.Reader, size int64) error

	// GetArchive writes the named archive to w.
	GetArchive(name string, w io.Writer) error

	// ListArchives returns every stored archive, newest first.
	ListArchives() ([]ArchiveInfo, error)

	// DeleteArchive removes the named archive.
	DeleteArchive(name string) error

	// ValidateSetup verifies that the vault is accessible and properly configured.
	ValidateSetup() error
}

// ErrArchiveNotFound is returned by vaults when the named archive does not exist.
var ErrArchiveNotFound = errors.New("archive not found")

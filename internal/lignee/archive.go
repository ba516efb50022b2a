package lignee

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	archivePrefix = "backup_"
	archiveLayout = "2006-01-02_15-04-05"
	encryptedExt  = ".age"
)

var (
	// ErrArchiveLocked is returned when an encrypted archive is read without a
	// decryption context.
	ErrArchiveLocked = errors.New("archive is encrypted")

	// ErrUnsupportedFormat is returned for archives that are not GEDCOM files.
	ErrUnsupportedFormat = errors.New("unsupported archive format")
)

// IsEncryptedArchive reports whether name refers to an age-encrypted archive.
func IsEncryptedArchive(name string) bool {
	return strings.HasSuffix(name, encryptedExt)
}

// checkArchiveName accepts "*.ged" and "*.gedcom", optionally followed by ".age".
func checkArchiveName(name string) error {
	base := strings.TrimSuffix(name, encryptedExt)
	if strings.HasSuffix(base, ".ged") || strings.HasSuffix(base, ".gedcom") {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Backup exports the graph into a new archive in the vault and returns its name.
// When an encryptor is configured the archive is encrypted and named *.ged.age.
func (s *LigneeService) Backup() (string, error) {
	var plain bytes.Buffer
	if _, err := s.ExportGEDCOM(&plain); err != nil {
		return "", err
	}

	name := archivePrefix + s.clock.Now().Format(archiveLayout) + ".ged"
	data := &plain

	if s.encryptor != nil {
		var sealed bytes.Buffer
		if err := s.encryptor.Encrypt(&plain, &sealed); err != nil {
			return "", fmt.Errorf("encrypting archive: %w", err)
		}
		data = &sealed
		name += encryptedExt
	}

	size := int64(data.Len())
	if err := s.vault.PutArchive(name, data, size); err != nil {
		return "", fmt.Errorf("storing archive: %w", err)
	}

	s.logger.Info("archive stored", "name", name, "size", size)
	return name, nil
}

// Restore imports the named archive, replacing the whole graph.
// decryptCtx is required for encrypted archives and ignored otherwise.
func (s *LigneeService) Restore(name string, decryptCtx DecryptionContext) (*ImportResult, error) {
	s.logger.Info("restore started", "name", name)

	var plain bytes.Buffer
	if err := s.readArchive(name, &plain, decryptCtx); err != nil {
		return nil, err
	}

	return s.ImportGEDCOM(&plain)
}

// DownloadArchive writes the plaintext GEDCOM of the named archive to w.
func (s *LigneeService) DownloadArchive(name string, w io.Writer, decryptCtx DecryptionContext) error {
	return s.readArchive(name, w, decryptCtx)
}

func (s *LigneeService) readArchive(name string, w io.Writer, decryptCtx DecryptionContext) error {
	if err := checkArchiveName(name); err != nil {
		return err
	}

	encrypted := IsEncryptedArchive(name)
	if encrypted && decryptCtx == nil {
		return fmt.Errorf("%w: %s", ErrArchiveLocked, name)
	}

	if !encrypted {
		if err := s.vault.GetArchive(name, w); err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		return nil
	}

	var sealed bytes.Buffer
	if err := s.vault.GetArchive(name, &sealed); err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	if err := decryptCtx.Decrypt(&sealed, w); err != nil {
		return fmt.Errorf("decrypting archive: %w", err)
	}
	return nil
}

// ListArchives returns the stored archives, newest first.
func (s *LigneeService) ListArchives() ([]ArchiveInfo, error) {
	archives, err := s.vault.ListArchives()
	if err != nil {
		return nil, fmt.Errorf("listing archives: %w", err)
	}
	return archives, nil
}

// DeleteArchive removes the named archive from the vault.
func (s *LigneeService) DeleteArchive(name string) error {
	if err := s.vault.DeleteArchive(name); err != nil {
		return fmt.Errorf("deleting archive: %w", err)
	}
	s.logger.Info("archive deleted", "name", name)
	return nil
}

// FormatSize renders a byte count with binary units, e.g. "1.5 KB".
func FormatSize(n int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(max(n, 0))
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", int64(size), units[i])
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}

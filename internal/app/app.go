package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lignee/internal/config"
	"lignee/internal/database"
	"lignee/internal/database/sqlc"
	"lignee/internal/encryption"
	"lignee/internal/gedcom"
	"lignee/internal/lignee"
	"lignee/internal/model"
	"lignee/internal/vault"
)

// LigneeApp is the application layer between the CLI and LigneeService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw paths and names, and records mutating commands in the
// operations table.
type LigneeApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	vault     lignee.Vault
	encryptor lignee.Encryptor
	service   *lignee.LigneeService
	op        *Operation
	logFile   *os.File
}

// NewLigneeApp creates a fully wired LigneeApp from the given config.
// operation names the CLI command being run (e.g. "import", "backup").
// The caller must call Close when done.
func NewLigneeApp(cfg *config.Config, operation string) (*LigneeApp, error) {
	return newLigneeApp(cfg, operation, os.Stderr, lignee.RealClock{})
}

func newLigneeApp(cfg *config.Config, operation string, stderr io.Writer, clock lignee.Clock) (*LigneeApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	v, err := vault.NewVaultFromConfig(cfg.Vaults[0])
	if err != nil {
		return nil, fmt.Errorf("creating vault: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.HostID)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, stderr)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	encoder := gedcom.NewEncoder(cfg.Gedcom.SourceName, cfg.Gedcom.SourceVersion)
	svc := lignee.NewLigneeService(db, v, enc, encoder, &slogAdapter{l: logger}, clock)

	return &LigneeApp{
		cfg:       cfg,
		db:        db,
		vault:     v,
		encryptor: enc,
		service:   svc,
		op:        NewOperation(operation, ""),
		logFile:   logFile,
	}, nil
}

// persistOperation saves the operation to the database, giving it an id.
// Only commands that change the graph or the vault call it.
func (a *LigneeApp) persistOperation(parameters string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Parameters = parameters
	dbOp, err := a.db.CreateOperation(a.op.Name, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// ExportGEDCOM writes the graph as GEDCOM to path, or to w when path is "" or "-".
func (a *LigneeApp) ExportGEDCOM(path string, w io.Writer) (model.GraphCounts, error) {
	if path == "" || path == "-" {
		return a.service.ExportGEDCOM(w)
	}

	f, err := os.Create(path)
	if err != nil {
		return model.GraphCounts{}, fmt.Errorf("creating %s: %w", path, err)
	}

	counts, err := a.service.ExportGEDCOM(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", path, cerr)
	}
	if err != nil {
		os.Remove(path)
		return model.GraphCounts{}, err
	}
	return counts, nil
}

// ImportGEDCOM replaces the graph with the content of the GEDCOM file at path.
func (a *LigneeApp) ImportGEDCOM(path string) (*lignee.ImportResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if err := a.persistOperation(absPath); err != nil {
		return nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, a.op.Record(fmt.Errorf("opening %s: %w", path, err))
	}
	defer f.Close()

	res, err := a.service.ImportGEDCOM(f)
	return res, a.op.Record(err)
}

// Backup stores a new archive of the graph in the vault and returns its name.
func (a *LigneeApp) Backup() (string, error) {
	if err := a.persistOperation(""); err != nil {
		return "", err
	}
	name, err := a.service.Backup()
	return name, a.op.Record(err)
}

// ListArchives returns the archives in the vault, newest first.
func (a *LigneeApp) ListArchives() ([]lignee.ArchiveInfo, error) {
	return a.service.ListArchives()
}

// NeedsPassphrase reports whether reading the named archive requires unlocking the key.
func (a *LigneeApp) NeedsPassphrase(name string) bool {
	return lignee.IsEncryptedArchive(name)
}

// Restore replaces the graph with the content of the named archive.
// passphrase is only used for encrypted archives.
func (a *LigneeApp) Restore(name, passphrase string) (*lignee.ImportResult, error) {
	if err := a.persistOperation(name); err != nil {
		return nil, err
	}

	decryptCtx, err := a.unlockFor(name, passphrase)
	if err != nil {
		return nil, a.op.Record(err)
	}

	res, err := a.service.Restore(name, decryptCtx)
	return res, a.op.Record(err)
}

// DownloadArchive writes the plaintext GEDCOM of the named archive to destPath.
func (a *LigneeApp) DownloadArchive(name, destPath, passphrase string) error {
	decryptCtx, err := a.unlockFor(name, passphrase)
	if err != nil {
		return err
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}

	err = a.service.DownloadArchive(name, f, decryptCtx)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %s: %w", destPath, cerr)
	}
	if err != nil {
		os.Remove(destPath)
		return err
	}
	return nil
}

// DeleteArchive removes the named archive from the vault.
func (a *LigneeApp) DeleteArchive(name string) error {
	if err := a.persistOperation(name); err != nil {
		return err
	}
	return a.op.Record(a.service.DeleteArchive(name))
}

// unlockFor returns a decryption context for encrypted archive names and nil
// otherwise. Archives sealed with age stay readable after encryption has been
// switched off, as long as the key files are still configured.
func (a *LigneeApp) unlockFor(name, passphrase string) (lignee.DecryptionContext, error) {
	if !lignee.IsEncryptedArchive(name) {
		return nil, nil
	}

	enc := a.encryptor
	if enc == nil {
		enc = encryption.NewAgeEncryptor(a.cfg.Encryption)
	}
	if !enc.IsConfigured() {
		return nil, fmt.Errorf("%w: no keys configured to decrypt %s", lignee.ErrArchiveLocked, name)
	}

	ctx, err := enc.Unlock(passphrase)
	if err != nil {
		return nil, fmt.Errorf("unlocking key: %w", err)
	}
	return ctx, nil
}

// ValidateVault checks that the configured vault is reachable.
func (a *LigneeApp) ValidateVault() error {
	return a.vault.ValidateSetup()
}

// Stats returns the number of persons, marriages and relations.
func (a *LigneeApp) Stats() (model.GraphCounts, error) {
	return a.service.Stats()
}

// GetHistory returns the most recent operations.
func (a *LigneeApp) GetHistory(limit int) ([]*sqlc.Operation, error) {
	return a.service.GetHistory(limit)
}

// ListPersons returns every stored person.
func (a *LigneeApp) ListPersons() ([]model.Person, error) {
	return a.service.ListPersons()
}

// AddPerson stores a new person.
func (a *LigneeApp) AddPerson(p *model.Person) (*model.Person, error) {
	if err := a.persistOperation(p.GivenNames + " " + p.Surname); err != nil {
		return nil, err
	}
	created, err := a.service.AddPerson(p)
	return created, a.op.Record(err)
}

// AddMarriage stores a new marriage between the given spouses.
func (a *LigneeApp) AddMarriage(m *model.Marriage) (*model.Marriage, error) {
	if err := a.persistOperation(spouseParams(m)); err != nil {
		return nil, err
	}
	created, err := a.service.AddMarriage(m)
	return created, a.op.Record(err)
}

// AddParent links a child to a parent, optionally within a marriage.
func (a *LigneeApp) AddParent(childID, parentID int64, marriageID *int64) (*model.Relation, error) {
	params := fmt.Sprintf("child=%d parent=%d", childID, parentID)
	if err := a.persistOperation(params); err != nil {
		return nil, err
	}
	rel, err := a.service.AddParent(childID, parentID, marriageID)
	return rel, a.op.Record(err)
}

// AddSiblings links two persons as siblings.
func (a *LigneeApp) AddSiblings(x, y int64) error {
	if err := a.persistOperation(fmt.Sprintf("%d %d", x, y)); err != nil {
		return err
	}
	return a.op.Record(a.service.AddSiblings(x, y))
}

// SnapshotDatabase writes a consistent copy of the SQLite database to destPath.
func (a *LigneeApp) SnapshotDatabase(destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("%s already exists", destPath)
	}
	return a.db.BackupTo(destPath)
}

// Close finishes the operation record, if any, and releases resources.
func (a *LigneeApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// MigrateDatabase opens the configured database and applies pending migrations.
func MigrateDatabase(cfg *config.Config) error {
	db, err := database.NewDatabaseFromConfig(cfg.Database, cfg.HostID)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	return db.Migrate()
}

// SetupKeys generates the age key pair named in the encryption config.
func SetupKeys(cfg *config.Config, passphrase string) error {
	return encryption.NewAgeEncryptor(cfg.Encryption).Setup(passphrase)
}

func spouseParams(m *model.Marriage) string {
	format := func(id *int64) string {
		if id == nil {
			return "-"
		}
		return strconv.FormatInt(*id, 10)
	}
	return "husband=" + format(m.HusbandID) + " wife=" + format(m.WifeID)
}

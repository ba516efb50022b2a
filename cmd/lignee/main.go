package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"lignee/internal/app"
	"lignee/internal/config"
	"lignee/internal/lignee"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file named by the application defaults.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates a LigneeApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "import", "backup").
func newApp(operation string) (*app.LigneeApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewLigneeApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts on stderr and reads a line from the terminal without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

var rootCmd = &cobra.Command{
	Use:          "lignee",
	Short:        "Family tree keeper with GEDCOM import, export and archives",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		hostID := uuid.New().String()
		cfg := config.NewConfig(hostID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID: %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Println("Run 'lignee db migrate' to create the database.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Host ID:    %s\n", cfg.HostID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		for _, v := range cfg.Vaults {
			switch v.Type {
			case "s3":
				fmt.Printf("Vault:      %s (s3://%s/%s)\n", v.Name, v.S3Bucket, v.S3Prefix)
			case "filesystem":
				fmt.Printf("Vault:      %s (%s)\n", v.Name, v.FSVaultRoot)
			default:
				fmt.Printf("Vault:      %s (%s)\n", v.Name, v.Type)
			}
		}
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Generate the archive encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		passphrase, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return errors.New("passphrases do not match")
		}

		if err := app.SetupKeys(cfg, passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		if cfg.Encryption.Type != "age" {
			fmt.Println("Set encryption.type = \"age\" in the config to encrypt new archives.")
		}
		return nil
	},
}

var configVaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Check that the configured vault is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ValidateVault")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ValidateVault(); err != nil {
			return fmt.Errorf("vault check failed: %w", err)
		}
		fmt.Println("Vault OK")
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := app.MigrateDatabase(cfg); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		fmt.Println("Database is up to date.")
		return nil
	},
}

var dbSnapshotCmd = &cobra.Command{
	Use:   "snapshot FILE",
	Short: "Write a consistent copy of the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("snapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SnapshotDatabase(args[0]); err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		fmt.Printf("Database copied to %s\n", args[0])
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export the family graph as GEDCOM (stdout when FILE is omitted or -)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("export")
		if err != nil {
			return err
		}
		defer a.Close()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		counts, err := a.ExportGEDCOM(path, os.Stdout)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if path != "" && path != "-" {
			fmt.Printf("Exported %d person(s) and %d marriage(s) to %s\n", counts.Persons, counts.Marriages, path)
		}
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the family graph with a GEDCOM file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("import")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.ImportGEDCOM(args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d person(s), %d marriage(s), %d relation(s)\n",
			res.Counts.Persons, res.Counts.Marriages, res.Counts.Relations)
		if res.Decode.DroppedFamilies > 0 {
			fmt.Printf("Dropped %d family record(s) without a known spouse\n", res.Decode.DroppedFamilies)
		}
		if res.Decode.Unterminated {
			fmt.Println("Warning: the file does not end with TRLR; its last record was not imported")
		}
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Store a GEDCOM archive of the family graph in the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("backup")
		if err != nil {
			return err
		}
		defer a.Close()

		name, err := a.Backup()
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		fmt.Printf("Stored archive %s\n", name)
		return nil
	},
}

// archives command
var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List archives in the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListArchives")
		if err != nil {
			return err
		}
		defer a.Close()

		archives, err := a.ListArchives()
		if err != nil {
			return err
		}

		if len(archives) == 0 {
			fmt.Println("No archives stored.")
			return nil
		}

		for _, ar := range archives {
			fmt.Printf("%-40s  %10s  %s\n",
				ar.Name,
				lignee.FormatSize(ar.Size),
				ar.ModifiedAt.Local().Format("2006-01-02 15:04:05"),
			)
		}
		return nil
	},
}

var archivesGetCmd = &cobra.Command{
	Use:   "get NAME FILE",
	Short: "Download an archive as plain GEDCOM",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DownloadArchive")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := passphraseFor(a, args[0])
		if err != nil {
			return err
		}

		if err := a.DownloadArchive(args[0], args[1], passphrase); err != nil {
			return fmt.Errorf("download failed: %w", err)
		}
		fmt.Printf("Wrote %s\n", args[1])
		return nil
	},
}

var archivesRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete an archive from the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("delete-archive")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteArchive(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore NAME",
	Short: "Replace the family graph with an archive from the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("restore")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := passphraseFor(a, args[0])
		if err != nil {
			return err
		}

		res, err := a.Restore(args[0], passphrase)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		fmt.Printf("Restored %d person(s), %d marriage(s), %d relation(s) from %s\n",
			res.Counts.Persons, res.Counts.Marriages, res.Counts.Relations, args[0])
		return nil
	},
}

// passphraseFor prompts for the key passphrase when the archive is encrypted.
func passphraseFor(a *app.LigneeApp, name string) (string, error) {
	if !a.NeedsPassphrase(name) {
		return "", nil
	}
	return readPassphrase("Passphrase: ")
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the size of the family graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Stats")
		if err != nil {
			return err
		}
		defer a.Close()

		counts, err := a.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Persons:   %d\n", counts.Persons)
		fmt.Printf("Marriages: %d\n", counts.Marriages)
		fmt.Printf("Relations: %d\n", counts.Relations)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-15s  %s  %-10s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configVaultCmd)

	// db subcommands
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbSnapshotCmd)

	// archives subcommands
	archivesCmd.AddCommand(archivesGetCmd)
	archivesCmd.AddCommand(archivesRmCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(archivesCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(personsCmd)
	rootCmd.AddCommand(addCmd)
}

package vault

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"lignee/internal/lignee"
)

// checkName rejects archive names that could escape the vault's namespace.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid archive name %q", name)
	}
	return nil
}

// sortNewestFirst orders archives by modification time, newest first.
// Ties are broken by name, which embeds the backup timestamp.
func sortNewestFirst(archives []lignee.ArchiveInfo) {
	slices.SortFunc(archives, func(a, b lignee.ArchiveInfo) int {
		if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.Name, a.Name)
	})
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", lignee.ErrArchiveNotFound, name)
}

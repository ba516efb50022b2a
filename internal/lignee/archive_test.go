package lignee_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lignee/internal/lignee"
	"lignee/internal/testutil"
)

func TestLigneeService_BackupRestore(t *testing.T) {
	svc, _, v := newTestService(t, nil)
	_, err := svc.ImportGEDCOM(strings.NewReader(familyGED))
	require.NoError(t, err)

	name, err := svc.Backup()
	require.NoError(t, err)
	assert.Equal(t, "backup_2024-01-15_10-30-00.ged", name)

	var stored bytes.Buffer
	require.NoError(t, v.GetArchive(name, &stored))
	assert.True(t, strings.HasPrefix(stored.String(), "0 HEAD\n"))

	_, err = svc.ImportGEDCOM(strings.NewReader("0 HEAD\n0 TRLR\n"))
	require.NoError(t, err)

	res, err := svc.Restore(name, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Counts.Persons)
	assert.Equal(t, int64(1), res.Counts.Marriages)
}

func TestLigneeService_EncryptedBackup(t *testing.T) {
	enc := testutil.NewTestEncryptor()
	svc, _, v := newTestService(t, enc)
	_, err := svc.ImportGEDCOM(strings.NewReader(familyGED))
	require.NoError(t, err)

	name, err := svc.Backup()
	require.NoError(t, err)
	assert.Equal(t, "backup_2024-01-15_10-30-00.ged.age", name)
	assert.True(t, lignee.IsEncryptedArchive(name))

	var stored bytes.Buffer
	require.NoError(t, v.GetArchive(name, &stored))
	assert.False(t, strings.HasPrefix(stored.String(), "0 HEAD"))

	_, err = svc.Restore(name, nil)
	assert.ErrorIs(t, err, lignee.ErrArchiveLocked)

	ctx, err := enc.Unlock("")
	require.NoError(t, err)

	var plain bytes.Buffer
	require.NoError(t, svc.DownloadArchive(name, &plain, ctx))
	assert.True(t, strings.HasPrefix(plain.String(), "0 HEAD\n"))

	res, err := svc.Restore(name, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Counts.Persons)
}

func TestLigneeService_RestoreUnsupportedFormat(t *testing.T) {
	svc, _, v := newTestService(t, nil)
	require.NoError(t, v.PutArchive("family.zip", strings.NewReader("PK"), 2))

	_, err := svc.Restore("family.zip", nil)
	assert.ErrorIs(t, err, lignee.ErrUnsupportedFormat)

	_, err = svc.Restore("family.zip.age", nil)
	assert.ErrorIs(t, err, lignee.ErrUnsupportedFormat)
}

func TestLigneeService_RestoreAcceptsGedcomExtension(t *testing.T) {
	svc, _, v := newTestService(t, nil)
	doc := "0 HEAD\n0 @I1@ INDI\n1 NAME Jean /Martin/\n0 TRLR\n"
	require.NoError(t, v.PutArchive("export.gedcom", strings.NewReader(doc), int64(len(doc))))

	res, err := svc.Restore("export.gedcom", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Counts.Persons)
}

func TestLigneeService_RestoreMissingArchive(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	_, err := svc.ImportGEDCOM(strings.NewReader(familyGED))
	require.NoError(t, err)

	_, err = svc.Restore("backup_1999-01-01_00-00-00.ged", nil)
	assert.ErrorIs(t, err, lignee.ErrArchiveNotFound)

	counts, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Persons)
}

func TestLigneeService_ListAndDeleteArchives(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	v := testutil.NewTestVault()
	clock := testutil.FixedClock()
	svc := lignee.NewLigneeService(db, v, nil, nil, lignee.NewNopLogger(), clock)

	first, err := svc.Backup()
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := svc.Backup()
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	archives, err := svc.ListArchives()
	require.NoError(t, err)
	require.Len(t, archives, 2)

	require.NoError(t, svc.DeleteArchive(first))
	archives, err = svc.ListArchives()
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, second, archives[0].Name)

	err = svc.DeleteArchive(first)
	assert.True(t, errors.Is(err, lignee.ErrArchiveNotFound), "got %v", err)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1023, "1023 B"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5120.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lignee.FormatSize(tt.n), "FormatSize(%d)", tt.n)
	}
}

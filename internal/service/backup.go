package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nelsoncalle/nutricion/internal/db"
)

const checksumSuffix = ".sha256"

var ErrBackupUnverified = errors.New("backup cannot be verified")

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type RestoreOptions struct {
	// Force replaces an existing database file.
	Force bool
	// SkipChecksum restores a backup that has no checksum sidecar. The
	// schema check still runs.
	SkipChecksum bool
}

// CreateBackup snapshots the open database into outPath with VACUUM INTO,
// which is consistent even while other statements use the connection, and
// writes a checksum sidecar next to it.
func CreateBackup(ctx context.Context, sqldb *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := sqldb.ExecContext(ctx, `VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	sum, err := checksumOf(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+checksumSuffix, []byte(sum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum sidecar: %w", err)
	}
	return describeBackup(outPath, sum)
}

// RestoreBackup replaces the database at dbPath with backupPath after
// checking the sidecar checksum and that the file holds the record tables.
// The target is swapped in with a rename, so a failed restore leaves it as
// it was.
func RestoreBackup(ctx context.Context, backupPath, dbPath string, opts RestoreOptions) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("stat backup: %w", err)
	}
	if !opts.Force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if err := verifyChecksum(backupPath, opts.SkipChecksum); err != nil {
		return err
	}
	if err := verifyBackupSchema(ctx, backupPath); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return replaceFile(backupPath, dbPath)
}

func verifyChecksum(backupPath string, skip bool) error {
	want, err := os.ReadFile(backupPath + checksumSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		if skip {
			return nil
		}
		return fmt.Errorf("%w: no %s sidecar for %s (use --no-verify to restore anyway)", ErrBackupUnverified, checksumSuffix, backupPath)
	}
	if err != nil {
		return fmt.Errorf("read checksum sidecar: %w", err)
	}
	got, err := checksumOf(backupPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(want)) != got {
		return fmt.Errorf("%w: checksum mismatch for %s", ErrBackupUnverified, backupPath)
	}
	return nil
}

func verifyBackupSchema(ctx context.Context, backupPath string) error {
	candidate, err := db.Open(backupPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackupUnverified, err)
	}
	defer candidate.Close()

	for _, table := range db.Tables {
		var n int
		err := candidate.QueryRowContext(ctx, `SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		if err != nil {
			return fmt.Errorf("%w: read schema of %s: %v", ErrBackupUnverified, backupPath, err)
		}
		if n != 1 {
			return fmt.Errorf("%w: %s has no %s table", ErrBackupUnverified, backupPath, table)
		}
	}
	return nil
}

// ListBackups returns the .db files in dir, newest first. Checksum is empty
// for backups without a sidecar.
func ListBackups(dir string) ([]BackupInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.db"))
	if err != nil {
		return nil, fmt.Errorf("scan backup dir: %w", err)
	}
	items := make([]BackupInfo, 0, len(paths))
	for _, p := range paths {
		sum := ""
		if b, err := os.ReadFile(p + checksumSuffix); err == nil {
			sum = strings.TrimSpace(string(b))
		}
		info, err := describeBackup(p, sum)
		if err != nil {
			continue
		}
		items = append(items, info)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func describeBackup(path, sum string) (BackupInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	if st.IsDir() {
		return BackupInfo{}, fmt.Errorf("%s is a directory", path)
	}
	return BackupInfo{Path: path, Checksum: sum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// replaceFile copies src next to dst and renames it into place.
func replaceFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".restore-*")
	if err != nil {
		return fmt.Errorf("create restore temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("copy backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync restore temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close restore temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("install restored db: %w", err)
	}
	return nil
}

func checksumOf(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

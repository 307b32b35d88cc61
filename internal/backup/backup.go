// Package backup keeps rotating copies of a local store file next to it.
// SQLite stores are copied with VACUUM INTO; JSON stores are copied as is.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/storage"
)

const stampFormat = "20060102-150405"

// Info describes one backup file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int
}

type Manager struct {
	storePath string
	backupDir string
	ext       string
	now       func() time.Time
}

// NewManager returns a manager for the store file at storePath. Backups go
// to a "backups" directory beside it and keep the store's extension.
func NewManager(storePath string) *Manager {
	ext := filepath.Ext(storePath)
	if ext == "" {
		ext = ".db"
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
		ext:       ext,
		now:       time.Now,
	}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.backupDir
}

func (m *Manager) isJSON() bool {
	return strings.EqualFold(m.ext, ".json")
}

// Create writes a new backup and prunes the oldest ones beyond
// constants.MaxBackups.
func (m *Manager) Create() (string, error) {
	return m.create(true)
}

func (m *Manager) create(rotate bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	dst, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := m.snapshot(dst); err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}
	logger.Debug("Backup created", "path", dst)

	if rotate {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return dst, nil
}

// nextPath picks an unused file name for the current second, adding a
// sequence suffix when several backups land in the same second.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampFormat)
	for seq := 0; seq <= 100; seq++ {
		name := constants.BackupFilePrefix + stamp
		if seq > 0 {
			name += "-" + strconv.Itoa(seq)
		}
		path := filepath.Join(m.backupDir, name+m.ext)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

func (m *Manager) snapshot(dst string) error {
	if m.isJSON() {
		if err := verifyJSON(m.storePath); err != nil {
			return fmt.Errorf("store appears to be corrupted: %w", err)
		}
		return copyFile(m.storePath, dst)
	}

	db, err := sql.Open("sqlite", m.storePath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	if err := pingSQLite(db); err != nil {
		return fmt.Errorf("store appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Warn("VACUUM INTO failed, copying file instead", "error", err)
		db.Close()
		return copyFile(m.storePath, dst)
	}
	return nil
}

func (m *Manager) namePattern() *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(constants.BackupFilePrefix) +
		`(\d{8}-\d{6})(?:-(\d+))?` + regexp.QuoteMeta(m.ext) + `$`)
}

// List returns the backups on disk, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	pattern := m.namePattern()
	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := pattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		ts, err := time.ParseInLocation(stampFormat, match[1], time.Local)
		if err != nil {
			continue
		}
		seq := 0
		if match[2] != "" {
			seq, _ = strconv.Atoi(match[2])
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].seq > backups[j].seq
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the store file with backupPath. The current store is
// backed up first, so a restore can itself be undone. The store must be
// closed while this runs.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.storePath); err == nil {
		previous, err = m.create(false)
		if err != nil {
			return "", fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	if !m.isJSON() {
		// Journal files from the replaced database must not replay onto the restored one.
		for _, suffix := range []string{"-wal", "-shm"} {
			if err := os.Remove(m.storePath + suffix); err != nil && !os.IsNotExist(err) {
				return "", fmt.Errorf("failed to remove stale journal: %w", err)
			}
		}
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore store: %w", err)
	}

	logger.Info("Store restored", "from", backupPath, "previous", previous)
	return previous, nil
}

func (m *Manager) verify(path string) error {
	if m.isJSON() {
		return verifyJSON(path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	return pingSQLite(db)
}

func pingSQLite(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyJSON(path string) error {
	s := storage.NewJSONStore(path)
	defer s.Close()
	return s.Load()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

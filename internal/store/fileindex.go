package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// FileIndex tracks scan state for one file.
type FileIndex struct {
	FilePath  string
	ScanHash  string
	ScannedAt time.Time
}

// HashSource computes the scan hash for file content. Files whose hash
// matches the indexed one are skipped on incremental runs.
func HashSource(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:8])
}

// SetFileScanned records that a file has been scanned with the given hash.
func (s *Store) SetFileScanned(path, hash string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
        REPLACE INTO file_index (file_path, scan_hash, scanned_at)
        VALUES (?, ?, ?)`, path, hash, now)
	if err != nil {
		return fmt.Errorf("set file scanned %s: %w", path, err)
	}
	return nil
}

// GetFileHash retrieves the last scan hash for a file.
// Returns sql.ErrNoRows if the file has not been scanned.
func (s *Store) GetFileHash(path string) (string, error) {
	var hash string
	err := s.db.QueryRow("SELECT scan_hash FROM file_index WHERE file_path = ?", path).Scan(&hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}

// ClearFileIndex removes all scan state, forcing a full re-extraction on
// the next run.
func (s *Store) ClearFileIndex() error {
	_, err := s.db.Exec("DELETE FROM file_index")
	if err != nil {
		return fmt.Errorf("clear file index: %w", err)
	}
	return nil
}

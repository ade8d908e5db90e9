package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stonkbot/internal/board"
)

// ErrNotFound reports that an expected snapshot file does not exist yet.
// Callers decide whether that is fatal (a query) or a no-op (a scheduled
// task waiting on the refresher).
var ErrNotFound = errors.New("snapshot file not found")

// Store reads and writes leaderboard captures under a single data root,
// using the same layout the external refresher writes into:
//
//	<root>/leaderboards/leaderboard-latest.json
//	<root>/leaderboards/snapshots/leaderboard-snapshot.json
//	<root>/leaderboards/snapshots/morning-snapshot.json
//	<root>/leaderboards/in_time/*.json
//	<root>/portfolios/usernames.txt
//
// The refresher is the only writer of leaderboard-latest; this process owns
// the snapshots directory.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) latestPath() string {
	return filepath.Join(s.root, "leaderboards", "leaderboard-latest.json")
}

func (s *Store) rollingPath() string {
	return filepath.Join(s.root, "leaderboards", "snapshots", "leaderboard-snapshot.json")
}

func (s *Store) morningPath() string {
	return filepath.Join(s.root, "leaderboards", "snapshots", "morning-snapshot.json")
}

func (s *Store) inTimeDir() string {
	return filepath.Join(s.root, "leaderboards", "in_time")
}

func (s *Store) usernamesPath() string {
	return filepath.Join(s.root, "portfolios", "usernames.txt")
}

func (s *Store) ReadLatest() (board.Snapshot, error) {
	return s.readSnapshot(s.latestPath())
}

func (s *Store) ReadRolling() (board.Snapshot, error) {
	return s.readSnapshot(s.rollingPath())
}

func (s *Store) WriteRolling(snap board.Snapshot) error {
	return s.writeSnapshot(s.rollingPath(), snap)
}

func (s *Store) ReadMorning() (board.Snapshot, error) {
	return s.readSnapshot(s.morningPath())
}

func (s *Store) WriteMorning(snap board.Snapshot) error {
	return s.writeSnapshot(s.morningPath(), snap)
}

// ReadLatestInTime returns the newest timestamped capture from the in_time
// directory, by modification time. ErrNotFound when the directory is empty
// or absent.
func (s *Store) ReadLatestInTime() (board.Snapshot, error) {
	entries, err := os.ReadDir(s.inTimeDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.inTimeDir())
		}
		return nil, err
	}
	newest := ""
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = entry.Name()
			newestMod = info.ModTime().UnixNano()
		}
	}
	if newest == "" {
		return nil, fmt.Errorf("%w: no captures in %s", ErrNotFound, s.inTimeDir())
	}
	return s.readSnapshot(filepath.Join(s.inTimeDir(), newest))
}

// Usernames loads the autocomplete list, one name per line, blank lines
// skipped.
func (s *Store) Usernames() ([]string, error) {
	raw, err := os.ReadFile(s.usernamesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.usernamesPath())
		}
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

func (s *Store) readSnapshot(path string) (board.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	var snap board.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		if errors.Is(err, board.ErrMalformed) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%s: %w: %v", path, board.ErrMalformed, err)
	}
	return snap, nil
}

// writeSnapshot stages into a temp file and renames so a concurrent reader
// never sees a partial capture.
func (s *Store) writeSnapshot(path string, snap board.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"stonkbot/internal/board"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReadLatest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "leaderboards", "leaderboard-latest.json"),
		`{"alice": [1000, "", [["AAPL", 10, "x"]]]}`)

	s := New(root)
	snap, err := s.ReadLatest()
	if err != nil {
		t.Fatalf("read latest: %v", err)
	}
	if snap["alice"].Balance != 1000 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestReadLatestMissing(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.ReadLatest()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadLatestMalformed(t *testing.T) {
	root := t.TempDir()
	tests := []string{
		`{"alice": [1000, "", [["AAPL"`, // torn write
		`{"alice": ["oops", "", []]}`,   // non-numeric balance
	}
	s := New(root)
	for _, content := range tests {
		writeFile(t, filepath.Join(root, "leaderboards", "leaderboard-latest.json"), content)
		_, err := s.ReadLatest()
		if !errors.Is(err, board.ErrMalformed) {
			t.Fatalf("content %q: expected ErrMalformed, got %v", content, err)
		}
	}
}

func TestRollingRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.ReadRolling(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}

	snap := board.Snapshot{
		"alice": {Balance: 1200, Holdings: []board.Holding{{Symbol: "AAPL", Quantity: "10", ValueLabel: "x"}}},
	}
	if err := s.WriteRolling(snap); err != nil {
		t.Fatalf("write rolling: %v", err)
	}
	back, err := s.ReadRolling()
	if err != nil {
		t.Fatalf("read rolling: %v", err)
	}
	if !reflect.DeepEqual(back, board.Snapshot{
		"alice": {Balance: 1200, Holdings: []board.Holding{{Symbol: "AAPL", Quantity: "10", ValueLabel: "x"}}},
	}) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestMorningRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	snap := board.Snapshot{"bob": {Balance: 500}}
	if err := s.WriteMorning(snap); err != nil {
		t.Fatalf("write morning: %v", err)
	}
	back, err := s.ReadMorning()
	if err != nil {
		t.Fatalf("read morning: %v", err)
	}
	if back["bob"].Balance != 500 {
		t.Fatalf("unexpected morning snapshot: %+v", back)
	}
}

func TestReadLatestInTime(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "leaderboards", "in_time")
	writeFile(t, filepath.Join(dir, "leaderboard-0900.json"), `{"alice": [100, "", []]}`)
	writeFile(t, filepath.Join(dir, "leaderboard-1500.json"), `{"alice": [900, "", []]}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "leaderboard-0900.json"), old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	s := New(root)
	snap, err := s.ReadLatestInTime()
	if err != nil {
		t.Fatalf("read latest in_time: %v", err)
	}
	if snap["alice"].Balance != 900 {
		t.Fatalf("expected newest capture, got %+v", snap)
	}
}

func TestReadLatestInTimeEmpty(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	if _, err := s.ReadLatestInTime(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing dir, got %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "leaderboards", "in_time"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := s.ReadLatestInTime(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty dir, got %v", err)
	}
}

func TestUsernames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "portfolios", "usernames.txt"), "alice\n\nbob\n  carol  \n")

	s := New(root)
	names, err := s.Usernames()
	if err != nil {
		t.Fatalf("usernames: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("usernames got %v want %v", names, want)
	}

	if _, err := New(t.TempDir()).Usernames(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing usernames file, got %v", err)
	}
}

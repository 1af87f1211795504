package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckExists(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		setup     func(string) error
		wantExist bool
		wantError bool
	}{
		{
			name: "database exists",
			setup: func(dbPath string) error {
				f, err := os.Create(dbPath)
				if err != nil {
					return err
				}
				return f.Close()
			},
			wantExist: true,
			wantError: false,
		},
		{
			name: "database does not exist",
			setup: func(dbPath string) error {
				return nil
			},
			wantExist: false,
			wantError: false,
		},
		{
			name: "database path is directory",
			setup: func(dbPath string) error {
				return os.Mkdir(dbPath, 0755)
			},
			wantExist: false,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDir := filepath.Join(tmpDir, tt.name)
			if err := os.Mkdir(testDir, 0755); err != nil {
				t.Fatalf("failed to create test dir: %v", err)
			}
			dbPath := filepath.Join(testDir, DefaultDBFile)

			if err := tt.setup(dbPath); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			exists, err := CheckExists(dbPath)

			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if exists != tt.wantExist {
				t.Errorf("got exists=%v, want %v", exists, tt.wantExist)
			}
		})
	}
}

func TestGetDBPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.db")

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "empty", location: "", want: DefaultDBFile},
		{name: "directory", location: dir, want: filepath.Join(dir, DefaultDBFile)},
		{name: "file", location: file, want: file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetDBPath(tt.location); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()

	if m.FirstLaunchDate() != NotSet || m.LaunchCount() != 0 || m.DoNotShowAgain() {
		t.Fatalf("new record is not empty: %+v", m)
	}

	m.SetFirstLaunchDate(1_700_000_000_000)
	m.SetLaunchCount(4)
	m.SetDoNotShowAgain(true)

	if got := m.FirstLaunchDate(); got != 1_700_000_000_000 {
		t.Errorf("first launch: got %d", got)
	}
	if got := m.LaunchCount(); got != 4 {
		t.Errorf("launch count: got %d", got)
	}
	if !m.DoNotShowAgain() {
		t.Error("do not show again: got false")
	}
}

func TestStoreStateString(t *testing.T) {
	if got := StateReady.String(); got != "ready" {
		t.Errorf("got %q, want %q", got, "ready")
	}
	if got := StoreState(42).String(); got != "unknown" {
		t.Errorf("got %q, want %q", got, "unknown")
	}
}

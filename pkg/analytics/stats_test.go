package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"smartlink/pkg/errors"
)

func writeStats(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write stats file: %v", err)
	}
	return path
}

func TestLoadSnapshot_Rows(t *testing.T) {
	path := writeStats(t, `links:
  - name: docs
    url: https://sl.ink/docs
    clicks: 0
  - name: launch
    url: https://sl.ink/launch
    clicks: 3000
  - name: blog
    url: https://sl.ink/blog
    clicks: 1000
`)

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() returned error: %v", err)
	}
	if snap.Total() != 4000 {
		t.Errorf("Total() = %d, want 4000", snap.Total())
	}

	rows := snap.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	want := []struct {
		name, clicks, share string
	}{
		{"launch", "3,000", "75.0%"},
		{"blog", "1,000", "25.0%"},
		{"docs", "0", "0.0%"},
	}
	for i, w := range want {
		if rows[i].Name != w.name || rows[i].ClicksText != w.clicks || rows[i].ShareText != w.share {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestSnapshot_EmptyTotal(t *testing.T) {
	snap := &Snapshot{Links: []LinkStats{{Name: "new", Clicks: 0}}}
	rows := snap.Rows()
	if rows[0].ShareText != "0%" || rows[0].Share != 0 {
		t.Errorf("row = %+v, want 0%% share", rows[0])
	}
}

func TestLoadSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode errors.ExitCode
	}{
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") },
			wantCode: errors.ExitCodeFileOperation,
		},
		{
			name:     "malformed",
			path:     func(t *testing.T) string { return writeStats(t, "links: {oops") },
			wantCode: errors.ExitCodeValidation,
		},
		{
			name:     "negative clicks",
			path:     func(t *testing.T) string { return writeStats(t, "links:\n  - name: x\n    clicks: -4\n") },
			wantCode: errors.ExitCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot(tt.path(t))
			if !errors.IsExitCode(err, tt.wantCode) {
				t.Errorf("err = %v, want exit code %d", err, tt.wantCode)
			}
		})
	}
}

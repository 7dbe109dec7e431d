package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMediaKindOf(t *testing.T) {
	tests := []struct {
		name string
		want MediaKind
	}{
		{"IMG-20250102-WA0001.jpg", MediaImage},
		{"img-20250102-wa0001.jpg", MediaImage},
		{"VID-20250102-WA0002.mp4", MediaVideo},
		{"PTT-20250102-WA0003.opus", MediaAudio},
		{"AUD-20250102-WA0004.m4a", MediaAudio},
		{"STK-20250102-WA0005.webp", MediaSticker},
		{"DOC-20250102-WA0006.pdf", MediaDocument},
		{"00000012-PHOTO-2025-01-02-09-02-40.jpg", MediaImage},
		{"00000013-VIDEO-2025-01-02-09-02-40.mp4", MediaVideo},
		{"00000014-AUDIO-2025-01-02-09-02-40.opus", MediaAudio},
		{"00000015-STICKER-2025-01-02-09-02-40.webp", MediaSticker},
		{"media/IMG-20250102-WA0007.jpg", MediaImage},
		{"receta.pdf", MediaOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MediaKindOf(tt.name); got != tt.want {
				t.Errorf("MediaKindOf(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoadDurationIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durations.yaml")
	content := "PTT-20250102-WA0003.opus: 12.5\nAUD-20250102-WA0004.m4a: 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write index: %v", err)
	}

	idx, err := LoadDurationIndex(path)
	if err != nil {
		t.Fatalf("LoadDurationIndex() error = %v", err)
	}
	if got := idx.Duration("PTT-20250102-WA0003.opus"); got != 12.5 {
		t.Errorf("Duration() = %v, want 12.5", got)
	}
	if got := idx.Duration("chat/AUD-20250102-WA0004.m4a"); got != 3 {
		t.Errorf("Duration() by base name = %v, want 3", got)
	}
	if got := idx.Duration("PTT-unknown.opus"); got != 0 {
		t.Errorf("Duration() unknown = %v, want 0", got)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- not a map"), 0644); err != nil {
		t.Fatalf("Failed to write index: %v", err)
	}
	var se *StorageError
	if _, err := LoadDurationIndex(bad); !errors.As(err, &se) {
		t.Errorf("LoadDurationIndex() error = %v, want StorageError", err)
	}
}

func TestMediaDir_Size(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "IMG-1.jpg"), make([]byte, 42), 0644); err != nil {
		t.Fatalf("Failed to write media: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "IMG-2.jpg"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	tests := []struct {
		dir    MediaDir
		name   string
		want   int64
		wantOK bool
	}{
		{MediaDir(dir), "IMG-1.jpg", 42, true},
		{MediaDir(dir), "exports/IMG-1.jpg", 42, true},
		{MediaDir(dir), "IMG-2.jpg", 0, false},
		{MediaDir(dir), "IMG-3.jpg", 0, false},
		{MediaDir(dir), "", 0, false},
		{MediaDir(""), "IMG-1.jpg", 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.dir.Size(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Size(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

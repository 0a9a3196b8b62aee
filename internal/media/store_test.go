package media

import (
	"io"
	"strings"
	"testing"

	"github.com/chirpnet/chirp/pkg/config"
)

func TestSavePostImage(t *testing.T) {
	store := NewStore(&config.MediaConfig{Root: t.TempDir()})

	relPath, err := store.SavePostImage(strings.NewReader("image bytes"), "photo.png")
	if err != nil {
		t.Fatalf("SavePostImage() error: %v", err)
	}
	if !strings.HasPrefix(relPath, "posts/") {
		t.Errorf("relative path = %q, want a posts/ path", relPath)
	}
	if !strings.HasSuffix(relPath, ".png") {
		t.Errorf("relative path = %q, want the original extension kept", relPath)
	}
	if strings.Contains(relPath, "photo") {
		t.Errorf("relative path = %q, want the original name discarded", relPath)
	}

	f, err := store.Open(relPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("stored contents = %q", data)
	}
}

func TestSavePostImageUniqueNames(t *testing.T) {
	store := NewStore(&config.MediaConfig{Root: t.TempDir()})

	first, err := store.SavePostImage(strings.NewReader("a"), "same.jpg")
	if err != nil {
		t.Fatalf("SavePostImage() error: %v", err)
	}
	second, err := store.SavePostImage(strings.NewReader("b"), "same.jpg")
	if err != nil {
		t.Fatalf("SavePostImage() error: %v", err)
	}
	if first == second {
		t.Errorf("two uploads of %q share the stored path %q", "same.jpg", first)
	}
}

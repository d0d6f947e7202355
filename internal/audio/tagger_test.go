package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func TestTagReader_ReadTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	tag.SetTitle("Training Season")
	tag.SetArtist("Dua Lipa")
	tag.SetAlbum("Radical Optimism")
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	tag.Close()

	tags, err := NewTagReader().ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags error: %v", err)
	}
	want := Tags{Title: "Training Season", Artist: "Dua Lipa", Album: "Radical Optimism"}
	if tags != want {
		t.Errorf("ReadTags = %+v, want %+v", tags, want)
	}
}

func TestTagReader_Untagged(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "plain.mp3")
	wavPath := filepath.Join(dir, "plain.wav")
	for _, p := range []string{mp3, wavPath} {
		if err := os.WriteFile(p, []byte("no tags here"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for _, p := range []string{mp3, wavPath} {
		tags, err := NewTagReader().ReadTags(p)
		if err != nil {
			t.Errorf("ReadTags(%s) error: %v", filepath.Base(p), err)
		}
		if tags != (Tags{}) {
			t.Errorf("ReadTags(%s) = %+v, want empty", filepath.Base(p), tags)
		}
	}
}

func TestTagReader_Missing(t *testing.T) {
	if _, err := NewTagReader().ReadTags(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Error("ReadTags of a missing file should fail")
	}
}

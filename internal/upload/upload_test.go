package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("CusProfile", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("CusProfile")
	if err != nil {
		t.Fatal(err)
	}
	return fh
}

func TestSaveProfileImageRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	public, err := store.SaveProfileImage(fileHeader(t, "me.png", pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(public, "/uploads/profiles/") {
		t.Fatalf("unexpected public path %q", public)
	}
	if !strings.HasSuffix(public, ".png") {
		t.Fatalf("extension not preserved: %q", public)
	}
	if !store.Exists(public) {
		t.Fatal("stored image not retrievable")
	}

	store.Remove(public)
	if store.Exists(public) {
		t.Fatal("image still retrievable after Remove")
	}
}

func TestSaveRejectsWrongExtension(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.SaveProfileImage(fileHeader(t, "notes.txt", []byte("hello"))); err != ErrUnsupportedType {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSaveRejectsMismatchedContent(t *testing.T) {
	store := NewStore(t.TempDir())
	// .png name but plain-text bytes; the sniff must catch it
	if _, err := store.SaveProfileImage(fileHeader(t, "fake.png", []byte("just some text, no image magic"))); err != ErrUnsupportedType {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store := NewStore(t.TempDir())
	big := make([]byte, MaxImageSize+1)
	copy(big, pngHeader)
	if _, err := store.SaveProfileImage(fileHeader(t, "big.png", big)); err != ErrTooLarge {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestRemoveLeavesDefaultAndForeignPathsAlone(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	marker := filepath.Join(dir, "marker")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store.Remove(DefaultProfileImage)
	store.Remove("/etc/passwd")
	store.Remove("/uploads/../marker")

	if _, err := os.Stat(marker); err != nil {
		t.Fatal("Remove escaped the uploads tree")
	}
}

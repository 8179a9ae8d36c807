package tourbook

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// LoadBook reads the book from its single durable slot. The read is
// best-effort by contract: a missing file yields an empty book, and a file
// that fails to decode yields an empty book with a logged warning. It never
// returns an error to the caller.
func LoadBook(path string) *Book {
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("could not read book file %q (starting empty): %v", path, err)
		}
		return NewBook()
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return NewBook()
	}
	b, err := DecodeBook(bytes.NewReader(content))
	if err != nil {
		log.Printf("could not decode book file %q (starting empty): %v", path, err)
		return NewBook()
	}
	return b
}

// SaveBook snapshots the whole book into its slot. The write goes through a
// temp file in the same directory and a rename, so a crash mid-write leaves
// the previous snapshot intact.
func SaveBook(path string, b *Book) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file for book %q: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := EncodeBook(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file for book %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not replace book file %q: %w", path, err)
	}
	return nil
}

package store

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/heyvito/oxio/internal/codec"
	kerrors "github.com/heyvito/oxio/internal/errors"
)

const (
	// IndexFilename is the reserved name of the index file.
	IndexFilename = ".index"
	// IgnoreFilename is the reserved name of the git ignore file.
	IgnoreFilename = ".gitignore"

	itemFields = 3
	filePerm   = 0o600
	dirPerm    = 0o700
)

// Store is a content-addressed item store rooted at a single directory.
type Store struct {
	root string
}

// New returns a Store rooted at root. The directory is not created until
// it is first needed.
func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the absolute path of filename inside the store root.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.root, filename)
}

// EnsureRoot creates the store root if it does not exist. It fails when the
// path exists but is not a directory.
func (s *Store) EnsureRoot() error {
	info, err := os.Stat(s.root)
	if err == nil {
		if !info.IsDir() {
			return &kerrors.Error{
				Kind:   kerrors.KindAlreadyExists,
				Op:     "ensure store root",
				Path:   s.root,
				Detail: "path exists and is not a directory",
			}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return kerrors.IO("stat store root", s.root, err)
	}
	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		return kerrors.IO("create store root", s.root, err)
	}
	return nil
}

// Exists reports whether the store root is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.root)
	return err == nil
}

// Address returns the content address of an encoded item.
func Address(encoded []byte) string {
	sum := sha1.Sum(encoded)
	return hex.EncodeToString(sum[:])
}

// Create stores value under (group, name), replacing any live item with the
// same key, and rebuilds the index. The name is lower-cased first.
func (s *Store) Create(group, name, value string) (Item, error) {
	name = NormalizeName(name)
	if group == "" || name == "" {
		return Item{}, kerrors.New(kerrors.KindInvalidInput, "create item", "group and name must not be empty")
	}
	for _, f := range []string{group, name, value} {
		if err := codec.Validate(f); err != nil {
			return Item{}, kerrors.Wrap(kerrors.KindInvalidInput, "create item", err)
		}
	}

	if err := s.EnsureRoot(); err != nil {
		return Item{}, err
	}

	// The index must be current before it is used to find the old file.
	if _, err := s.Reindex(); err != nil {
		return Item{}, err
	}
	if _, err := s.deleteKey(group, name); err != nil {
		return Item{}, err
	}

	encoded := codec.Encode(group, name, value)
	filename := Address(encoded)
	path := s.Path(filename)
	if err := os.WriteFile(path, encoded, filePerm); err != nil {
		return Item{}, kerrors.IO("write item", path, err)
	}

	if _, err := s.Reindex(); err != nil {
		return Item{}, err
	}
	return Item{Group: group, Name: name, Value: value, Filename: filename}, nil
}

// Read decodes the item stored in filename. The value may end at the end of
// the file without a terminator, as older oxio versions wrote it.
func (s *Store) Read(filename string) (Item, error) {
	path := s.Path(filename)
	f, err := os.Open(path)
	if err != nil {
		return Item{}, kerrors.IO("open item", path, err)
	}
	defer f.Close()

	r := codec.NewReader(f, path)
	fields := make([]string, 0, itemFields)
	for len(fields) < itemFields-1 {
		field, err := r.Next()
		if kerrors.Is(err, io.EOF) {
			return Item{}, kerrors.CorruptEntry(path, itemFields, len(fields), "short record")
		}
		if err != nil {
			return Item{}, err
		}
		fields = append(fields, field)
	}
	value, err := r.Last()
	if err != nil {
		return Item{}, err
	}
	fields = append(fields, value)

	return Item{
		Group:    fields[0],
		Name:     fields[1],
		Value:    fields[2],
		Filename: filepath.Base(filename),
	}, nil
}

// Fill loads the value of an item obtained from the index.
func (s *Store) Fill(it *Item) error {
	full, err := s.Read(it.Filename)
	if err != nil {
		return fmt.Errorf("loading %s: %w", it.Filename, err)
	}
	it.Value = full.Value
	return nil
}

// Delete removes the file backing it. A file that is already gone is not an
// error. The index is not rebuilt; callers do that once they are done.
func (s *Store) Delete(it Item) error {
	path := s.Path(it.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return kerrors.IO("delete item", path, err)
	}
	return nil
}

// DeleteItem removes the live item (group, name) and rebuilds the index. It
// reports whether an item was found.
func (s *Store) DeleteItem(group, name string) (bool, error) {
	n, err := s.deleteKey(group, NormalizeName(name))
	if err != nil || n == 0 {
		return false, err
	}
	if _, err := s.Reindex(); err != nil {
		return false, err
	}
	return true, nil
}

// deleteKey removes every file indexed under (group, name) without
// rebuilding the index.
func (s *Store) deleteKey(group, name string) (int, error) {
	items, err := s.FindAll(group, name)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		if err := s.Delete(it); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

// DeleteGroup removes every item in group and rebuilds the index. It
// returns the number of items removed.
func (s *Store) DeleteGroup(group string) (int, error) {
	items, err := s.GroupAll(group)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	for _, it := range items {
		if err := s.Delete(it); err != nil {
			return 0, err
		}
	}
	if _, err := s.Reindex(); err != nil {
		return 0, err
	}
	return len(items), nil
}

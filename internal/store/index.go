package store

import (
	"io"
	"os"
	"sort"

	"github.com/heyvito/oxio/internal/codec"
	kerrors "github.com/heyvito/oxio/internal/errors"
)

// IndexPath returns the location of the index file.
func (s *Store) IndexPath() string {
	return s.Path(IndexFilename)
}

// scan returns the item filenames in the store root, in listing order.
func (s *Store) scan() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, kerrors.IO("list store root", s.root, err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if e.Name() == IndexFilename || e.Name() == IgnoreFilename {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Reindex rebuilds the index from a scan of the store root and returns the
// number of indexed items. Every item file is opened exactly once.
func (s *Store) Reindex() (int, error) {
	if err := s.EnsureRoot(); err != nil {
		return 0, err
	}
	files, err := s.scan()
	if err != nil {
		return 0, err
	}

	items := make([]Item, 0, len(files))
	size := 0
	for _, name := range files {
		it, err := s.Read(name)
		if err != nil {
			return 0, err
		}
		items = append(items, it)
		size += len(it.Group) + len(it.Name) + len(it.Filename) + 3
	}

	buf := make([]byte, 0, size)
	for _, it := range items {
		buf = codec.AppendField(buf, it.Group)
		buf = codec.AppendField(buf, it.Name)
		buf = codec.AppendField(buf, it.Filename)
	}

	path := s.IndexPath()
	if err := os.WriteFile(path, buf, filePerm); err != nil {
		return 0, kerrors.IO("write index", path, err)
	}
	return len(items), nil
}

// LoadAll returns every item recorded in the index, with empty values. A
// missing index yields an empty result.
func (s *Store) LoadAll() ([]Item, error) {
	path := s.IndexPath()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Item{}, nil
		}
		return nil, kerrors.IO("open index", path, err)
	}
	defer f.Close()

	r := codec.NewReader(f, path)
	var items []Item
	for {
		fields, err := r.Fields(itemFields)
		if kerrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Group: fields[0], Name: fields[1], Filename: fields[2]})
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Find returns the live item with exactly this group and name. Names are
// compared as given; callers normalise them with NormalizeName.
func (s *Store) Find(group, name string) (Item, bool, error) {
	items, err := s.LoadAll()
	if err != nil {
		return Item{}, false, err
	}
	for _, it := range items {
		if it.Group == group && it.Name == name {
			return it, true, nil
		}
	}
	return Item{}, false, nil
}

// FindAll returns every live item with exactly this group and name. More
// than one only happens when two machines created the same key and synced.
func (s *Store) FindAll(group, name string) ([]Item, error) {
	items, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	var out []Item
	for _, it := range items {
		if it.Group == group && it.Name == name {
			out = append(out, it)
		}
	}
	return out, nil
}

// GroupAll returns the items whose group is exactly group.
func (s *Store) GroupAll(group string) ([]Item, error) {
	items, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	var out []Item
	for _, it := range items {
		if it.Group == group {
			out = append(out, it)
		}
	}
	return out, nil
}

// IndexReport compares the index with the files on disk.
type IndexReport struct {
	Indexed int
	OnDisk  int
	// Missing lists files present on disk but absent from the index.
	Missing []string
	// Stale lists index entries whose file no longer exists.
	Stale []string
}

// Fresh reports whether the index matches the directory listing.
func (r IndexReport) Fresh() bool {
	return len(r.Missing) == 0 && len(r.Stale) == 0
}

// Verify compares the index with a fresh scan without rewriting it.
func (s *Store) Verify() (*IndexReport, error) {
	indexed, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	files, err := s.scan()
	if err != nil {
		return nil, err
	}

	inIndex := make(map[string]bool, len(indexed))
	for _, it := range indexed {
		inIndex[it.Filename] = true
	}
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f] = true
	}

	report := &IndexReport{Indexed: len(indexed), OnDisk: len(files)}
	for _, f := range files {
		if !inIndex[f] {
			report.Missing = append(report.Missing, f)
		}
	}
	for _, it := range indexed {
		if !onDisk[it.Filename] {
			report.Stale = append(report.Stale, it.Filename)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Stale)
	return report, nil
}

// Files lists the item filenames in the store root, in listing order.
func (s *Store) Files() ([]string, error) {
	return s.scan()
}

// Check reads filename and confirms it is named after its content.
func (s *Store) Check(filename string) error {
	it, err := s.Read(filename)
	if err != nil {
		return err
	}
	encoded := codec.Encode(it.Group, it.Name, it.Value)
	// Older files leave the value unterminated and are addressed that way.
	if Address(encoded) != filename && Address(encoded[:len(encoded)-1]) != filename {
		return &kerrors.Error{
			Kind:   kerrors.KindCorruptEntry,
			Op:     "check item",
			Path:   s.Path(filename),
			Detail: "content does not match its address",
		}
	}
	return nil
}

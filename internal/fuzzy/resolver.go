package fuzzy

import (
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/heyvito/oxio/internal/store"
)

// DefaultThreshold is the largest edit distance FindByName accepts.
const DefaultThreshold = 2

// Source provides index entries. *store.Store satisfies it.
type Source interface {
	LoadAll() ([]store.Item, error)
}

// Resolver finds the closest stored name for a query. It scans every index
// entry, which is fine for personal stores of a few hundred items.
type Resolver struct {
	src       Source
	threshold int
}

// NewResolver returns a Resolver over src. A negative threshold selects
// DefaultThreshold.
func NewResolver(src Source, threshold int) *Resolver {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{src: src, threshold: threshold}
}

// FindByName returns the entry whose name is closest to name. Among equally
// close entries the first one in index order wins. It reports false when the
// index is empty or the best distance exceeds the threshold.
func (r *Resolver) FindByName(name string) (store.Item, bool, error) {
	items, err := r.src.LoadAll()
	if err != nil {
		return store.Item{}, false, err
	}

	best := -1
	bestDist := 0
	for i, it := range items {
		d := Distance(it.Name, name)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	if best < 0 || bestDist > r.threshold {
		return store.Item{}, false, nil
	}
	return items[best], true, nil
}

// Suggest returns up to limit distinct stored names that contain the
// characters of name in order, best matches first. It is used for hints
// after FindByName came back empty.
func (r *Resolver) Suggest(name string, limit int) ([]string, error) {
	items, err := r.src.LoadAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(items))
	names := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it.Name] {
			seen[it.Name] = true
			names = append(names, it.Name)
		}
	}

	var out []string
	for _, m := range sfuzzy.Find(name, names) {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out, nil
}

package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/heyvito/oxio/internal/audit"
	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/heyvito/oxio/internal/store"
)

// suggestionLimit caps the names offered when a lookup misses.
const suggestionLimit = 3

// SetOptions configures the set workflow.
type SetOptions struct {
	Group string
	Name  string
	Value string
}

// SetResult contains the stored item.
type SetResult struct {
	Item store.Item
}

// Set stores a value, replacing any item with the same group and name.
//
// Returns an InvalidInput error for reserved or empty names.
func Set(ctx context.Context, env *Env, opts SetOptions) (*SetResult, error) {
	name := store.NormalizeName(opts.Name)
	if err := validateNames(opts.Group, name); err != nil {
		return nil, err
	}

	it, err := env.Store.Create(opts.Group, name, opts.Value)
	env.record(audit.Entry{Operation: "set", Group: opts.Group, Name: name}, err)
	if err != nil {
		return nil, err
	}
	env.Logger.Debugf("Stored %s/%s as %s", it.Group, it.Name, it.Filename)
	return &SetResult{Item: it}, nil
}

// GetOptions configures the get workflow. An empty Group resolves Name
// against every group by edit distance.
type GetOptions struct {
	Group string
	Name  string
}

// GetResult contains the item found, value included. Suggestions is set
// when nothing matched and similar names exist.
type GetResult struct {
	Item        store.Item
	Suggestions []string
}

// Get looks up an item and loads its value.
//
// Returns a NotFound error when no item matches. The result still carries
// suggestions in that case.
func Get(ctx context.Context, env *Env, opts GetOptions) (*GetResult, error) {
	name := store.NormalizeName(opts.Name)

	var (
		it    store.Item
		found bool
		err   error
	)
	if opts.Group == "" {
		it, found, err = env.resolver().FindByName(name)
	} else {
		it, found, err = env.Store.Find(opts.Group, name)
	}
	if err != nil {
		return nil, err
	}

	if !found {
		result := &GetResult{}
		if suggestions, err := env.resolver().Suggest(name, suggestionLimit); err == nil {
			result.Suggestions = suggestions
		}
		detail := "no item named " + name + " was found"
		if opts.Group != "" {
			detail = fmt.Sprintf("could not find an item named %s in group %s", name, opts.Group)
		}
		return result, kerrors.New(kerrors.KindNotFound, "get", detail)
	}

	if err := env.Store.Fill(&it); err != nil {
		return nil, err
	}
	env.Logger.Debugf("Resolved %q to %s/%s", opts.Name, it.Group, it.Name)
	return &GetResult{Item: it}, nil
}

// EditOptions configures the edit workflow.
type EditOptions struct {
	Group string
	Name  string
}

// EditResult contains the item as stored after editing.
type EditResult struct {
	Item store.Item

	// Created is true when no item existed before.
	Created bool
}

// Edit opens the current value of an item in the editor and stores the
// result. Missing items start from an empty value.
func Edit(ctx context.Context, env *Env, opts EditOptions) (*EditResult, error) {
	name := store.NormalizeName(opts.Name)
	if err := validateNames(opts.Group, name); err != nil {
		return nil, err
	}

	current, found, err := env.Store.Find(opts.Group, name)
	if err != nil {
		return nil, err
	}
	if found {
		if err := env.Store.Fill(&current); err != nil {
			return nil, err
		}
	}

	edited, err := env.Editor.Edit(ctx, current.Value)
	if err != nil {
		return nil, fmt.Errorf("there was a problem with your editor: %w", err)
	}

	it, err := env.Store.Create(opts.Group, name, edited)
	env.record(audit.Entry{Operation: "edit", Group: opts.Group, Name: name}, err)
	if err != nil {
		return nil, err
	}
	return &EditResult{Item: it, Created: !found}, nil
}

// ListOptions configures the list workflow.
type ListOptions struct {
	// Match is a doublestar pattern applied to "group/name". Empty lists
	// everything.
	Match string
}

// ListResult contains matching items, values loaded, grouped for display.
type ListResult struct {
	Groups []store.Group

	// Total is the number of items in the store before filtering.
	Total int
}

// List loads every item, optionally filtered.
//
// Returns an InvalidInput error for a malformed pattern.
func List(ctx context.Context, env *Env, opts ListOptions) (*ListResult, error) {
	if opts.Match != "" && !doublestar.ValidatePattern(opts.Match) {
		return nil, kerrors.New(kerrors.KindInvalidInput, "list", "invalid pattern "+opts.Match)
	}

	items, err := env.Store.LoadAll()
	if err != nil {
		return nil, err
	}

	matched := make([]store.Item, 0, len(items))
	for _, it := range items {
		if opts.Match != "" {
			ok, err := doublestar.Match(opts.Match, it.Group+"/"+it.Name)
			if err != nil {
				return nil, kerrors.Wrap(kerrors.KindInvalidInput, "list", err)
			}
			if !ok {
				continue
			}
		}
		if err := env.Store.Fill(&it); err != nil {
			return nil, err
		}
		matched = append(matched, it)
	}

	return &ListResult{Groups: store.GroupItems(matched), Total: len(items)}, nil
}

// RemoveItemOptions configures the rm-item workflow.
type RemoveItemOptions struct {
	Group string
	Name  string
}

// RemoveItemResult describes the removed item.
type RemoveItemResult struct {
	Group string
	Name  string
}

// RemoveItem deletes one item.
//
// Returns a NotFound error when the item does not exist.
func RemoveItem(ctx context.Context, env *Env, opts RemoveItemOptions) (*RemoveItemResult, error) {
	name := store.NormalizeName(opts.Name)
	removed, err := env.Store.DeleteItem(opts.Group, name)
	if err == nil && !removed {
		err = kerrors.New(kerrors.KindNotFound, "rm-item",
			fmt.Sprintf("could not find %s in %s", name, opts.Group))
	}
	env.record(audit.Entry{Operation: "rm-item", Group: opts.Group, Name: name}, err)
	if err != nil {
		return nil, err
	}
	return &RemoveItemResult{Group: opts.Group, Name: name}, nil
}

// RemoveGroupOptions configures the rm-group workflow.
type RemoveGroupOptions struct {
	Group string
}

// RemoveGroupResult contains the number of items removed.
type RemoveGroupResult struct {
	Group   string
	Removed int
}

// RemoveGroup deletes every item of a group.
//
// Returns a NotFound error when the group has no items.
func RemoveGroup(ctx context.Context, env *Env, opts RemoveGroupOptions) (*RemoveGroupResult, error) {
	removed, err := env.Store.DeleteGroup(opts.Group)
	if err == nil && removed == 0 {
		err = kerrors.New(kerrors.KindNotFound, "rm-group", "no group named "+opts.Group+" found")
	}
	env.record(audit.Entry{Operation: "rm-group", Group: opts.Group, Count: removed}, err)
	if err != nil {
		return nil, err
	}
	return &RemoveGroupResult{Group: opts.Group, Removed: removed}, nil
}

// ReindexResult contains the number of indexed items.
type ReindexResult struct {
	Count int
}

// Reindex rebuilds the index from the files in the store.
func Reindex(ctx context.Context, env *Env) (*ReindexResult, error) {
	if err := env.Store.EnsureRoot(); err != nil {
		return nil, err
	}
	n, err := env.Store.Reindex()
	env.record(audit.Entry{Operation: "reindex", Count: n}, err)
	if err != nil {
		return nil, err
	}
	return &ReindexResult{Count: n}, nil
}

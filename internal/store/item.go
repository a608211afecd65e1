package store

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item is a single stored value.
type Item struct {
	Group string
	Name  string
	// Value is empty for items loaded from the index until Fill is called.
	Value string
	// Filename is the item's content address and its identity on disk.
	Filename string
}

// Group is a display bucket produced by GroupItems.
type Group struct {
	Name  string
	Items []Item
}

// NormalizeName lower-cases an item name the way Create and lookups do.
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(name)
}

// GroupItems partitions items by group. Groups are sorted by name and the
// items of each group are sorted by item name. It is meant for display only.
func GroupItems(items []Item) []Group {
	byGroup := make(map[string][]Item)
	for _, it := range items {
		byGroup[it.Group] = append(byGroup[it.Group], it)
	}

	names := make([]string, 0, len(byGroup))
	for g := range byGroup {
		names = append(names, g)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, g := range names {
		members := byGroup[g]
		sort.SliceStable(members, func(i, j int) bool {
			return strings.Compare(members[i].Name, members[j].Name) < 0
		})
		groups = append(groups, Group{Name: g, Items: members})
	}
	return groups
}

// LongestName returns the length of the longest item name, in runes.
func LongestName(items []Item) int {
	longest := 0
	for _, it := range items {
		if n := len([]rune(it.Name)); n > longest {
			longest = n
		}
	}
	return longest
}

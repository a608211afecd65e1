package workflows

import (
	"slices"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

// ReservedNames are command words that cannot be used as group or item
// names, since the positional forms of the CLI could not tell them apart.
var ReservedNames = []string{
	"all",
	"completion",
	"doctor",
	"edit",
	"help",
	"log",
	"reindex",
	"rm-group",
	"rm-item",
	"sync",
	"version",
}

// IsReserved reports whether name is a reserved command word.
func IsReserved(name string) bool {
	return slices.Contains(ReservedNames, name)
}

func validateNames(group, name string) error {
	if IsReserved(group) {
		return kerrors.New(kerrors.KindInvalidInput, "validate", "invalid group name "+group+": reserved word")
	}
	if IsReserved(name) {
		return kerrors.New(kerrors.KindInvalidInput, "validate", "invalid item name "+name+": reserved word")
	}
	return nil
}

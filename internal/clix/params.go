package clix

import (
	"strings"

	"github.com/spf13/pflag"
)

// NoteFilters are the list-command filters shared by CLI and tooling.
type NoteFilters struct {
	Category string
	Search   string
}

func ParseNoteFilters(flags *pflag.FlagSet) NoteFilters {
	category, _ := flags.GetString("category")
	search, _ := flags.GetString("search")
	return NoteFilters{
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	}
}

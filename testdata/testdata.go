// Package testdata embeds the fixture queries shared by package tests.
package testdata

import (
	"embed"
	"io/fs"
)

//go:embed fixtures/sql/*.sql
var fixtures embed.FS

// FixturesFS returns the fixture tree rooted at fixtures/.
func FixturesFS() fs.FS {
	sub, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		panic(err)
	}

	return sub
}

// Package sample embeds the built-in storybook library used when no catalog
// directory is configured.
package sample

import "embed"

// FS holds books.json, the book files under books/ and their images under
// assets/.
//
//go:embed books.json books assets
var FS embed.FS

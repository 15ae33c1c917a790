package catalog

import (
	"io/fs"
	"strings"

	"github.com/metcalfc/storybook/internal/story"
)

// Format decodes one on-disk book representation.
type Format interface {
	Name() string
	Extensions() []string
	Decode(data []byte) (*story.Book, error)
}

// AssetProvider is an optional interface for formats that carry their own
// images. Image references of such books resolve against the returned FS.
type AssetProvider interface {
	Assets(data []byte) (fs.FS, error)
}

var registry []Format

// Register adds a book format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

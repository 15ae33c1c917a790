package catalog

import "github.com/metcalfc/storybook/internal/story"

// JSONFormat implements Format for JSON book files.
type JSONFormat struct{}

func init() {
	Register(&JSONFormat{})
}

func (f *JSONFormat) Name() string         { return "JSON" }
func (f *JSONFormat) Extensions() []string { return []string{".json"} }
func (f *JSONFormat) Decode(data []byte) (*story.Book, error) {
	return story.DecodeBook(data)
}

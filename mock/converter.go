package mock

import "github.com/evidlab/cardex"

var _ cardex.Converter = (*Converter)(nil)

// Converter is a mock implementation of cardex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ cardex.DocumentConverter = (*DocumentConverter)(nil)

// DocumentConverter is a mock implementation of cardex.DocumentConverter.
type DocumentConverter struct {
	ConvertFileFn func(path string) (string, error)
}

func (c *DocumentConverter) ConvertFile(path string) (string, error) {
	return c.ConvertFileFn(path)
}

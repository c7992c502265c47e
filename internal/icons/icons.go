// Package icons provides the Font Awesome solid glyphs used on the site.
package icons

import (
	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/style"
)

// Glyph names.
const (
	NameArrowRight = "arrow-right"
	NameBook       = "book"
)

var arrowRight = node.Glyph{
	Name:    NameArrowRight,
	ViewBox: "0 0 448 512",
	Paths: []string{
		"M190.5 66.9l22.2-22.2c9.4-9.4 24.6-9.4 33.9 0L441 239c9.4 9.4 9.4 24.6 0 33.9L246.6 467.3c-9.4 9.4-24.6 9.4-33.9 0l-22.2-22.2c-9.5-9.5-9.3-25 .4-34.3L311.4 296H24c-13.3 0-24-10.7-24-24v-32c0-13.3 10.7-24 24-24h287.4L190.9 101.2c-9.8-9.3-10-24.8-.4-34.3z",
	},
}

var book = node.Glyph{
	Name:    NameBook,
	ViewBox: "0 0 448 512",
	Paths: []string{
		"M448 360V24c0-13.3-10.7-24-24-24H96C43 0 0 43 0 96v320c0 53 43 96 96 96h328c13.3 0 24-10.7 24-24v-16c0-7.5-3.5-14.3-8.9-18.7-4.2-15.4-4.2-59.3 0-74.7 5.4-4.3 8.9-11.1 8.9-18.6zM128 134c0-3.3 2.7-6 6-6h212c3.3 0 6 2.7 6 6v20c0 3.3-2.7 6-6 6H134c-3.3 0-6-2.7-6-6v-20zm0 64c0-3.3 2.7-6 6-6h212c3.3 0 6 2.7 6 6v20c0 3.3-2.7 6-6 6H134c-3.3 0-6-2.7-6-6v-20zm253.4 250H96c-17.7 0-32-14.3-32-32 0-17.6 14.4-32 32-32h285.4c-1.9 17.1-1.9 46.9 0 64z",
	},
}

// FontAwesome renders Font Awesome solid glyphs.
type FontAwesome struct{}

// ArrowRight returns the forward arrow glyph with the given inline style.
func (FontAwesome) ArrowRight(r style.Rule) node.Node {
	return node.Icon(arrowRight, node.Styled(r))
}

// Book returns the book glyph with the given inline style.
func (FontAwesome) Book(r style.Rule) node.Node {
	return node.Icon(book, node.Styled(r))
}

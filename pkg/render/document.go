package render

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/pool"
)

// Document writes a complete HTML5 document.
func Document(w io.Writer, doc node.Document) error {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := writeDocument(buf, doc); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// DocumentBytes renders doc and returns the bytes.
func DocumentBytes(doc node.Document) ([]byte, error) {
	return pool.Bytes(func(buf *bytes.Buffer) error {
		return writeDocument(buf, doc)
	})
}

func writeDocument(buf *bytes.Buffer, doc node.Document) error {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	buf.WriteString("<!DOCTYPE html>\n")
	buf.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n")
	writeHead(buf, doc.Head)
	buf.WriteString("<body>\n")
	if err := writeNode(buf, doc.Body); err != nil {
		return err
	}
	buf.WriteString("\n</body>\n</html>\n")
	return nil
}

func writeHead(buf *bytes.Buffer, h node.Head) {
	buf.WriteString("<head>\n")
	buf.WriteString(`<meta charset="UTF-8">` + "\n")
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	buf.WriteString("<title>" + html.EscapeString(h.Title) + "</title>\n")

	for _, m := range h.Meta {
		buf.WriteString("<meta")
		if m.Name != "" {
			writeAttr(buf, "name", m.Name)
		}
		if m.Property != "" {
			writeAttr(buf, "property", m.Property)
		}
		writeAttr(buf, "content", m.Content)
		buf.WriteString(">\n")
	}

	for _, l := range h.Links {
		buf.WriteString("<link")
		writeAttr(buf, "rel", l.Rel)
		writeAttr(buf, "href", l.Href)
		buf.WriteString(">\n")
	}

	if h.JSONLD != "" {
		buf.WriteString(`<script type="application/ld+json">`)
		buf.WriteString(strings.ReplaceAll(h.JSONLD, "</", `<\/`))
		buf.WriteString("</script>\n")
	}

	buf.WriteString("</head>\n")
}

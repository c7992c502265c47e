// Package assets provides the embedded site stylesheet.
package assets

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/anotherclibrary/acsite/pkg/style"
)

//go:embed static/*.css
var static embed.FS

// StylesheetName is the name of the site stylesheet under the assets root.
const StylesheetName = "index.css"

// FS returns the embedded filesystem rooted at the static directory.
func FS() fs.FS {
	fsys, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return fsys
}

// Handler returns an HTTP handler that serves the embedded assets.
func Handler() http.Handler {
	return http.FileServer(http.FS(FS()))
}

// Stylesheet returns the site stylesheet followed by one ".ac-<role>" class
// per role of sheet.
func Stylesheet(sheet style.Sheet) []byte {
	base, err := static.ReadFile("static/" + StylesheetName)
	if err != nil {
		panic(err)
	}

	var sb strings.Builder
	sb.Write(base)
	for _, r := range sheet.Roles() {
		sb.WriteString("\n.ac-")
		sb.WriteString(r.Role)
		sb.WriteString(" {")
		sb.WriteString(r.Rule.CSS())
		sb.WriteString("}\n")
	}
	return []byte(sb.String())
}

// FileNames returns the names of all embedded files.
func FileNames() []string {
	entries, err := static.ReadDir("static")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

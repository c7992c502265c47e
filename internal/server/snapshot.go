package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/anotherclibrary/acsite/pkg/codec"
	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/render"
)

// Snapshot is a pre-rendered response body.
type Snapshot struct {
	Body        []byte
	ContentType string
	ETag        string
}

func newSnapshot(body []byte, contentType string) Snapshot {
	sum := sha256.Sum256(body)
	return Snapshot{
		Body:        body,
		ContentType: contentType,
		ETag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
	}
}

// Snapshots holds every representation of the page.
type Snapshots struct {
	HTML     Snapshot
	Markdown Snapshot
	Trees    map[string]Snapshot // by codec name
}

// Render renders doc into all representations.
func Render(doc node.Document, codecs *codec.Registry) (*Snapshots, error) {
	html, err := render.DocumentBytes(doc)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	md := render.MarkdownString(doc.Body)

	s := &Snapshots{
		HTML:     newSnapshot(html, "text/html; charset=utf-8"),
		Markdown: newSnapshot([]byte(md), "text/markdown; charset=utf-8"),
		Trees:    make(map[string]Snapshot),
	}

	for _, name := range codecs.Names() {
		c, err := codecs.Get(name)
		if err != nil {
			return nil, err
		}
		b, err := c.Encode(&doc)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		s.Trees[name] = newSnapshot(b, c.ContentType())
	}
	return s, nil
}

// serve writes snap, answering 304 when the client already holds it.
func serve(w http.ResponseWriter, r *http.Request, snap Snapshot) bool {
	h := w.Header()
	h.Set("ETag", snap.ETag)
	h.Set("Cache-Control", "no-cache")
	h.Add("Vary", "Accept")

	if matchesETag(r.Header.Get("If-None-Match"), snap.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return false
	}

	h.Set("Content-Type", snap.ContentType)
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(snap.Body)
	}
	return true
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

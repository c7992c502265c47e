// Package codec encodes page documents for consumers that render the content
// tree themselves.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/anotherclibrary/acsite/pkg/node"
)

// Common codec errors.
var (
	ErrUnknownCodec    = errors.New("unknown codec type")
	ErrInvalidDocument = errors.New("invalid document")
)

// Codec handles document encoding/decoding.
type Codec interface {
	// Encode serializes a document to bytes.
	Encode(doc *node.Document) ([]byte, error)

	// Decode deserializes bytes to a document.
	Decode(data []byte) (*node.Document, error)

	// Name returns the codec name.
	Name() string

	// ContentType returns the MIME type.
	ContentType() string
}

// JSONCodec implements Codec using JSON encoding.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Encode encodes a document to JSON.
func (c *JSONCodec) Encode(doc *node.Document) ([]byte, error) {
	return json.Marshal(doc)
}

// Decode decodes JSON to a document.
func (c *JSONCodec) Decode(data []byte) (*node.Document, error) {
	var doc node.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return validated(&doc)
}

// Name returns "json".
func (c *JSONCodec) Name() string { return "json" }

// ContentType returns the JSON MIME type.
func (c *JSONCodec) ContentType() string { return "application/json" }

// MsgPackCodec implements Codec using MessagePack encoding.
// Smaller on the wire than JSON.
type MsgPackCodec struct{}

// NewMsgPackCodec creates a new MsgPack codec.
func NewMsgPackCodec() *MsgPackCodec {
	return &MsgPackCodec{}
}

// Encode encodes a document to MsgPack.
func (c *MsgPackCodec) Encode(doc *node.Document) ([]byte, error) {
	return msgpack.Marshal(doc)
}

// Decode decodes MsgPack to a document.
func (c *MsgPackCodec) Decode(data []byte) (*node.Document, error) {
	var doc node.Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return validated(&doc)
}

// Name returns "msgpack".
func (c *MsgPackCodec) Name() string { return "msgpack" }

// ContentType returns the MsgPack MIME type.
func (c *MsgPackCodec) ContentType() string { return "application/msgpack" }

// YAMLCodec implements Codec using YAML. Meant for reading the tree by eye.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Encode encodes a document to YAML.
func (c *YAMLCodec) Encode(doc *node.Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Decode decodes YAML to a document.
func (c *YAMLCodec) Decode(data []byte) (*node.Document, error) {
	var doc node.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return validated(&doc)
}

// Name returns "yaml".
func (c *YAMLCodec) Name() string { return "yaml" }

// ContentType returns the YAML MIME type.
func (c *YAMLCodec) ContentType() string { return "application/yaml" }

// validated rejects trees containing unknown node kinds.
func validated(doc *node.Document) (*node.Document, error) {
	var bad node.Kind
	node.Walk(doc.Body, func(n node.Node, _ int) bool {
		if bad == "" && !n.Kind.Valid() {
			bad = n.Kind
			if bad == "" {
				bad = "<empty>"
			}
		}
		return bad == ""
	})
	if bad != "" {
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrInvalidDocument, bad)
	}
	return doc, nil
}

// Registry manages available codecs.
type Registry struct {
	codecs   map[string]Codec
	fallback Codec
	mu       sync.RWMutex
}

// NewRegistry creates a registry holding the JSON, MsgPack and YAML codecs,
// with JSON as the default.
func NewRegistry() *Registry {
	r := &Registry{
		codecs: make(map[string]Codec),
	}

	r.Register(NewJSONCodec())
	r.Register(NewMsgPackCodec())
	r.Register(NewYAMLCodec())
	r.fallback = r.codecs["json"]

	return r
}

// Register adds a codec to the registry.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Name()] = c
}

// Get retrieves a codec by name.
func (r *Registry) Get(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Names returns the registered codec names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Negotiate picks a codec. An explicit format name wins; otherwise the
// highest-weighted Accept media type with a registered codec is used;
// otherwise the default. Only an unknown explicit format is an error.
func (r *Registry) Negotiate(accept, format string) (Codec, error) {
	if format != "" {
		return r.Get(format)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, mediaType := range acceptedTypes(accept) {
		for _, c := range r.codecs {
			if c.ContentType() == mediaType {
				return c, nil
			}
		}
		if mediaType == "application/x-msgpack" {
			return r.codecs["msgpack"], nil
		}
		if mediaType == "application/x-yaml" || mediaType == "text/yaml" {
			return r.codecs["yaml"], nil
		}
	}
	return r.fallback, nil
}

// acceptedTypes returns the media types of an Accept header ordered by
// descending q weight, header order breaking ties. Types with q=0 are
// dropped.
func acceptedTypes(accept string) []string {
	type weighted struct {
		mediaType string
		q         float64
	}
	var types []weighted
	for _, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if q, err = strconv.ParseFloat(v, 64); err != nil {
				continue
			}
		}
		if q <= 0 {
			continue
		}
		types = append(types, weighted{mediaType, q})
	}
	sort.SliceStable(types, func(i, j int) bool { return types[i].q > types[j].q })

	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.mediaType
	}
	return out
}

// DefaultRegistry is the global codec registry.
var DefaultRegistry = NewRegistry()

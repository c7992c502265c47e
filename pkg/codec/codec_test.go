package codec

import (
	"errors"
	"testing"

	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/style"
)

func testDocument() *node.Document {
	return &node.Document{
		Lang: "en",
		Head: node.Head{
			Title: "Home | Another C Library",
			Meta:  []node.Meta{{Name: "description", Content: "C"}, {Property: "og:type", Content: "website"}},
		},
		Body: node.Container("div",
			node.Class("Flex"),
			node.Styled(style.NewRule(style.D("background-color", "#2D3748"), style.D("font-size", "calc(16px + 2vw)"))),
			node.WithAttr("data-region", "hero"),
			node.Children(
				node.List(true, node.Children(node.Text("one"), node.Text("two"))),
				node.Link("/docs/", node.Children(
					node.Text("Get Started"),
					node.Icon(node.Glyph{Name: "arrow-right", ViewBox: "0 0 448 512", Paths: []string{"M190.5 66.9l22.2-22.2z"}}),
				)),
			),
		),
	}
}

func TestCodecs_DecodeOwnEncoding(t *testing.T) {
	for _, c := range []Codec{NewJSONCodec(), NewMsgPackCodec(), NewYAMLCodec()} {
		t.Run(c.Name(), func(t *testing.T) {
			want := testDocument()

			data, err := c.Encode(want)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if !node.EqualDocuments(*want, *got) {
				t.Errorf("decoded document differs:\nwant %+v\ngot  %+v", *want, *got)
			}
		})
	}
}

func TestCodecs_StableEncoding(t *testing.T) {
	for _, c := range []Codec{NewJSONCodec(), NewMsgPackCodec(), NewYAMLCodec()} {
		a, err := c.Encode(testDocument())
		if err != nil {
			t.Fatalf("%s: %v", c.Name(), err)
		}
		b, _ := c.Encode(testDocument())
		if string(a) != string(b) {
			t.Errorf("%s encoding is not stable", c.Name())
		}
	}
}

func TestDecode_RejectsUnknownKind(t *testing.T) {
	_, err := NewJSONCodec().Decode([]byte(`{"lang":"en","head":{"title":"x"},"body":{"kind":"table"}}`))
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}

	_, err = NewJSONCodec().Decode([]byte(`not json`))
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument for garbage, got %v", err)
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		accept  string
		format  string
		want    string
		wantErr bool
	}{
		{name: "explicit format", format: "yaml", want: "yaml"},
		{name: "explicit format case-insensitive", format: "MsgPack", want: "msgpack"},
		{name: "unknown format", format: "xml", wantErr: true},
		{name: "accept msgpack", accept: "application/msgpack", want: "msgpack"},
		{name: "accept legacy msgpack", accept: "application/x-msgpack", want: "msgpack"},
		{name: "accept list", accept: "text/html, application/yaml;q=0.9", want: "yaml"},
		{name: "accept weighted", accept: "application/json;q=0.1, application/yaml", want: "yaml"},
		{name: "accept weighted tie keeps order", accept: "application/msgpack;q=0.5, application/yaml;q=0.5", want: "msgpack"},
		{name: "accept refused", accept: "application/msgpack;q=0, application/yaml;q=0.2", want: "yaml"},
		{name: "accept bad weight skipped", accept: "application/msgpack;q=high, application/yaml;q=0.2", want: "yaml"},
		{name: "accept anything", accept: "*/*", want: "json"},
		{name: "no preference", want: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.Negotiate(tt.accept, tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCodec) {
					t.Errorf("expected ErrUnknownCodec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Name() != tt.want {
				t.Errorf("got %s, want %s", c.Name(), tt.want)
			}
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	names := NewRegistry().Names()
	want := []string{"json", "msgpack", "yaml"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

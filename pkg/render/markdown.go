package render

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/anotherclibrary/acsite/pkg/node"
	"github.com/anotherclibrary/acsite/pkg/pool"
)

var blockTags = map[string]bool{
	"div": true, "section": true, "main": true, "header": true, "footer": true,
	"nav": true, "article": true, "aside": true, "p": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true,
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

var destEscaper = strings.NewReplacer(
	`\`, `\\`,
	"<", `\<`,
	">", `\>`,
	"\r", "%0D",
	"\n", "%0A",
)

// Markdown writes a CommonMark rendering of n. Glyphs have no textual form
// and are dropped.
func Markdown(w io.Writer, n node.Node) error {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	writeBlock(buf, n)

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// MarkdownString renders n to a string.
func MarkdownString(n node.Node) string {
	out, _ := pool.Bytes(func(buf *bytes.Buffer) error {
		return Markdown(buf, n)
	})
	return string(out)
}

func isBlock(n node.Node) bool {
	switch n.Kind {
	case node.KindList:
		return true
	case node.KindContainer:
		return blockTags[n.Tag]
	default:
		return false
	}
}

func writeBlock(buf *bytes.Buffer, n node.Node) {
	switch {
	case n.Kind == node.KindList:
		for i, item := range n.Children {
			if n.Ordered {
				buf.WriteString(strconv.Itoa(i+1) + ". ")
			} else {
				buf.WriteString("- ")
			}
			buf.WriteString(blockText(inlineGroup(item.Children, item)))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	case n.Kind == node.KindContainer && isHeading(n.Tag):
		level := int(n.Tag[1] - '0')
		buf.WriteString(strings.Repeat("#", level) + " ")
		buf.WriteString(headingText(inlineGroup(n.Children, n)))
		buf.WriteString("\n\n")
	case n.Kind == node.KindContainer && n.Tag == "p":
		writeParagraph(buf, inlineGroup(n.Children, n))
	case isBlock(n):
		var pending []node.Node
		flush := func() {
			if len(pending) == 0 {
				return
			}
			writeParagraph(buf, joinInline(pending))
			pending = pending[:0]
		}
		for _, c := range n.Children {
			if isBlock(c) {
				flush()
				writeBlock(buf, c)
				continue
			}
			pending = append(pending, c)
		}
		flush()
	default:
		writeParagraph(buf, inline(n))
	}
}

func writeParagraph(buf *bytes.Buffer, text string) {
	text = blockText(text)
	if text == "" {
		return
	}
	buf.WriteString(text)
	buf.WriteString("\n\n")
}

// blockText trims every line of s and escapes any leading character that
// would otherwise open a block.
func blockText(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = escapeBlockStart(strings.TrimLeft(line, " \t"))
	}
	return strings.Join(lines, "\n")
}

func escapeBlockStart(line string) string {
	if line == "" {
		return line
	}
	switch line[0] {
	case '#', '+', '-', '=', '~':
		return `\` + line
	}
	digits := 0
	for digits < len(line) && digits < 10 && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(line) && (line[digits] == '.' || line[digits] == ')') {
		return line[:digits] + `\` + line[digits:]
	}
	return line
}

// headingText keeps a heading on one line and protects a trailing '#' from
// being read as a closing sequence.
func headingText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if strings.HasSuffix(s, "#") && !strings.HasSuffix(s, `\#`) {
		s = s[:len(s)-1] + `\#`
	}
	return s
}

// linkDestination writes href bare when that parses unambiguously and in
// angle brackets otherwise.
func linkDestination(href string) string {
	if href != "" && !strings.ContainsAny(href, " \t\r\n()<>\\") {
		return href
	}
	return "<" + destEscaper.Replace(href) + ">"
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// inlineGroup renders the children of n as one line. A list item whose only
// child is n itself (a bare text item) renders that child.
func inlineGroup(children []node.Node, n node.Node) string {
	if len(children) == 0 && n.Kind == node.KindText {
		return strings.TrimSpace(inline(n))
	}
	return joinInline(children)
}

func joinInline(nodes []node.Node) string {
	var sb strings.Builder
	prevElement := false
	for _, n := range nodes {
		part := inline(n)
		if part == "" {
			continue
		}
		isElement := n.Kind != node.KindText
		if sb.Len() > 0 && (isElement || prevElement) {
			last := sb.String()[sb.Len()-1]
			if last != ' ' && part[0] != ' ' {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(part)
		prevElement = isElement
	}
	return strings.TrimSpace(sb.String())
}

func inline(n node.Node) string {
	switch n.Kind {
	case node.KindText:
		return mdEscaper.Replace(n.Text)
	case node.KindGlyph:
		return ""
	case node.KindLink:
		label := joinInline(n.Children)
		if label == "" {
			return ""
		}
		return "[" + label + "](" + linkDestination(n.Href) + ")"
	case node.KindList:
		return joinInline(n.Children)
	}

	switch n.Tag {
	case "code":
		text := strings.Join(strings.Fields(node.TextContent(n)), " ")
		fence := "`"
		if strings.Contains(text, "`") {
			fence = "``"
		}
		return fence + text + fence
	case "strong", "b":
		return wrapNonEmpty("**", joinInline(n.Children))
	case "em", "i":
		return wrapNonEmpty("*", joinInline(n.Children))
	case "br":
		return "\n"
	default:
		return joinInline(n.Children)
	}
}

func wrapNonEmpty(marker, s string) string {
	if s == "" {
		return ""
	}
	return marker + s + marker
}

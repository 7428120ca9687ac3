// Package markdown renders blog post bodies to HTML as a templ component.
// It covers the subset of Markdown the content collection actually uses:
// headings, paragraphs, blockquotes, lists, tables, fenced code blocks, and
// inline bold/italic/code/links/images.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
	reImg              = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)`)
	reLink             = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrderedItem      = regexp.MustCompile(`^(\d+)\.\s`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	st := state{buf: buf}
	for _, raw := range strings.Split(md, "\n") {
		st.line(strings.TrimRight(raw, "\r"))
	}
	st.flushAll()
}

// state tracks which block element is currently open while lines stream
// through. Exactly one of the in* flags is set at a time.
type state struct {
	buf        *bytes.Buffer
	imageCount int

	inPara    bool
	inQuote   bool
	inList    bool
	inOrdered bool
	inCode    bool
	inTable   bool
	tableBody bool
}

func (st *state) flushAll() {
	st.closePara()
	st.closeList()
	st.closeOrdered()
	st.closeQuote()
	st.closeTable()
	st.closeCode()
}

// closeBlocks closes every open block except code, which only a closing
// fence terminates.
func (st *state) closeBlocks() {
	st.closePara()
	st.closeList()
	st.closeOrdered()
	st.closeQuote()
	st.closeTable()
}

func (st *state) closePara() {
	if st.inPara {
		st.buf.WriteString("</p>")
		st.inPara = false
	}
}

func (st *state) closeQuote() {
	if st.inQuote {
		st.buf.WriteString("</blockquote>")
		st.inQuote = false
	}
}

func (st *state) closeList() {
	if st.inList {
		st.buf.WriteString("</ul>")
		st.inList = false
	}
}

func (st *state) closeOrdered() {
	if st.inOrdered {
		st.buf.WriteString("</ol>")
		st.inOrdered = false
	}
}

func (st *state) closeCode() {
	if st.inCode {
		st.buf.WriteString("</code></pre>")
		st.inCode = false
	}
}

func (st *state) closeTable() {
	if st.inTable {
		if st.tableBody {
			st.buf.WriteString("</tbody>")
		}
		st.buf.WriteString("</table>")
		st.inTable = false
		st.tableBody = false
	}
}

func (st *state) line(line string) {
	if strings.HasPrefix(line, "```") {
		if st.inCode {
			st.closeCode()
			return
		}
		st.closeBlocks()
		if lang := strings.TrimSpace(line[3:]); lang != "" {
			st.buf.WriteString(`<pre><code class="language-` + html.EscapeString(lang) + `">`)
		} else {
			st.buf.WriteString("<pre><code>")
		}
		st.inCode = true
		return
	}

	if st.inCode {
		st.buf.WriteString(html.EscapeString(line))
		st.buf.WriteString("\n")
		return
	}

	if strings.TrimSpace(line) == "" {
		st.closeBlocks()
		return
	}

	switch {
	case line == "---" || line == "***":
		st.closeBlocks()
		st.buf.WriteString("<hr/>")
	case strings.HasPrefix(line, "#### "):
		st.heading("h4", line[5:])
	case strings.HasPrefix(line, "### "):
		st.heading("h3", line[4:])
	case strings.HasPrefix(line, "## "):
		st.heading("h2", line[3:])
	case strings.HasPrefix(line, "# "):
		st.heading("h1", line[2:])
	case strings.HasPrefix(line, "|"):
		st.tableRow(line)
	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		if !st.inList {
			st.closeBlocks()
			st.buf.WriteString("<ul>")
			st.inList = true
		}
		st.buf.WriteString("<li>")
		st.buf.WriteString(st.inline(strings.TrimSpace(line[2:])))
		st.buf.WriteString("</li>")
	case reOrderedItem.MatchString(line):
		if !st.inOrdered {
			st.closeBlocks()
			st.buf.WriteString("<ol>")
			st.inOrdered = true
		}
		st.buf.WriteString("<li>")
		st.buf.WriteString(st.inline(strings.TrimSpace(reOrderedItem.ReplaceAllString(line, ""))))
		st.buf.WriteString("</li>")
	case strings.HasPrefix(line, "> "):
		if !st.inQuote {
			st.closeBlocks()
			st.buf.WriteString("<blockquote>")
			st.inQuote = true
		}
		st.buf.WriteString(st.inline(strings.TrimSpace(line[2:])))
	default:
		if !st.inPara {
			st.closeBlocks()
			st.buf.WriteString("<p>")
			st.inPara = true
		} else {
			st.buf.WriteString(" ")
		}
		st.buf.WriteString(st.inline(strings.TrimSpace(line)))
	}
}

func (st *state) heading(tag, text string) {
	st.closeBlocks()
	st.buf.WriteString("<" + tag + ">")
	st.buf.WriteString(st.inline(strings.TrimSpace(text)))
	st.buf.WriteString("</" + tag + ">")
}

func (st *state) tableRow(line string) {
	if !st.inTable {
		st.closeBlocks()
		st.buf.WriteString("<table><thead><tr>")
		for _, cell := range tableCells(line) {
			st.buf.WriteString("<th>")
			st.buf.WriteString(st.inline(cell))
			st.buf.WriteString("</th>")
		}
		st.buf.WriteString("</tr></thead>")
		st.inTable = true
		return
	}
	if isTableSeparator(line) {
		if !st.tableBody {
			st.buf.WriteString("<tbody>")
			st.tableBody = true
		}
		return
	}
	if !st.tableBody {
		st.buf.WriteString("<tbody>")
		st.tableBody = true
	}
	st.buf.WriteString("<tr>")
	for _, cell := range tableCells(line) {
		st.buf.WriteString("<td>")
		st.buf.WriteString(st.inline(cell))
		st.buf.WriteString("</td>")
	}
	st.buf.WriteString("</tr>")
}

func tableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.Trim(strings.TrimSpace(line), "|")
	for _, cell := range strings.Split(line, "|") {
		cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(cell), "-", ""), ":", "")
		if cleaned != "" {
			return false
		}
	}
	return true
}

// inline applies inline formatting (images, links, code, bold, italic) to s.
func (st *state) inline(s string) string {
	escaped := html.EscapeString(s)

	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImg.FindStringSubmatch(m)
		src := SafeURL(match[2])
		if src == "" {
			return match[1]
		}
		st.imageCount++
		// The first image is likely above the fold; load it eagerly and
		// everything after it lazily.
		loadAttr := `loading="lazy"`
		if st.imageCount == 1 {
			loadAttr = `fetchpriority="high"`
		}
		return `<img ` + loadAttr + ` alt="` + match[1] + `" src="` + src + `" decoding="async"/>`
	})

	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})

	// Inline code: extract and replace with placeholders so bold/italic
	// regexes do not format content inside backticks.
	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})

	// Apply bold/italic only outside HTML tags so URLs in href attributes
	// are not corrupted.
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnderscore.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnderscore.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})

	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// applyOutsideTags applies fn only to text segments outside HTML tags.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// SafeURL validates and sanitizes a URL for use in HTML attributes. Relative
// paths and fragments pass through; absolute URLs must carry an http, https,
// mailto, or tel scheme.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}

package pdf

import (
	"strings"
	"unicode"
)

// Declaration templates are stored as a small HTML subset: <p> for
// paragraphs, <b>/<strong>, <i>/<em>, <u> for inline styling and <br> for
// forced line breaks. Anything else is dropped. The parser turns a template
// into paragraphs of styled runs that the layout engine can measure and
// place one word at a time.

type textRun struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Break     bool // forced line break, Text is empty
}

type paragraph struct {
	Runs []textRun
}

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
)

// parseTemplateHTML parses a template body into paragraphs. Input without
// any <p> tags is treated as a single paragraph, so plain-text templates
// from old installations still render.
func parseTemplateHTML(input string) []paragraph {
	var (
		paragraphs []paragraph
		current    paragraph
		builder    strings.Builder
		bold       int
		italic     int
		underline  int
	)

	flushRun := func() {
		if builder.Len() == 0 {
			return
		}
		current.Runs = append(current.Runs, textRun{
			Text:      entityReplacer.Replace(builder.String()),
			Bold:      bold > 0,
			Italic:    italic > 0,
			Underline: underline > 0,
		})
		builder.Reset()
	}
	flushParagraph := func() {
		flushRun()
		trimParagraph(&current)
		if len(current.Runs) > 0 {
			paragraphs = append(paragraphs, current)
		}
		current = paragraph{}
	}

	remaining := input
	for remaining != "" {
		open := strings.IndexByte(remaining, '<')
		if open < 0 {
			builder.WriteString(collapseWhitespace(remaining))
			break
		}
		if open > 0 {
			builder.WriteString(collapseWhitespace(remaining[:open]))
			remaining = remaining[open:]
		}
		close := strings.IndexByte(remaining, '>')
		if close < 0 {
			// Unterminated tag, keep the rest as text.
			builder.WriteString(collapseWhitespace(remaining))
			break
		}
		tag := normalizeTag(remaining[1:close])
		remaining = remaining[close+1:]

		switch tag {
		case "p":
			flushParagraph()
		case "/p":
			flushParagraph()
		case "b", "strong":
			flushRun()
			bold++
		case "/b", "/strong":
			flushRun()
			if bold > 0 {
				bold--
			}
		case "i", "em":
			flushRun()
			italic++
		case "/i", "/em":
			flushRun()
			if italic > 0 {
				italic--
			}
		case "u":
			flushRun()
			underline++
		case "/u":
			flushRun()
			if underline > 0 {
				underline--
			}
		case "br":
			flushRun()
			current.Runs = append(current.Runs, textRun{Break: true})
		default:
			// Unknown tag: dropped, its text content still flows.
		}
	}
	flushParagraph()

	return paragraphs
}

// normalizeTag lowercases a raw tag body and strips attributes and the
// self-closing slash, so "BR /" and `p style="x"` reduce to "br" and "p".
func normalizeTag(raw string) string {
	tag := strings.TrimSpace(strings.ToLower(raw))
	tag = strings.TrimSuffix(tag, "/")
	tag = strings.TrimSpace(tag)
	if space := strings.IndexFunc(tag, unicode.IsSpace); space >= 0 {
		tag = tag[:space]
	}
	return tag
}

// collapseWhitespace applies HTML whitespace semantics: any run of spaces,
// tabs or newlines renders as a single space.
func collapseWhitespace(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) && r != ' ' {
			if !inSpace {
				builder.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		builder.WriteRune(r)
	}
	return builder.String()
}

// trimParagraph removes leading/trailing whitespace and dangling breaks so
// paragraphs never start or end with empty space.
func trimParagraph(p *paragraph) {
	for len(p.Runs) > 0 {
		first := &p.Runs[0]
		if first.Break {
			p.Runs = p.Runs[1:]
			continue
		}
		first.Text = strings.TrimLeft(first.Text, " ")
		if first.Text == "" {
			p.Runs = p.Runs[1:]
			continue
		}
		break
	}
	for len(p.Runs) > 0 {
		last := &p.Runs[len(p.Runs)-1]
		if last.Break {
			p.Runs = p.Runs[:len(p.Runs)-1]
			continue
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text == "" {
			p.Runs = p.Runs[:len(p.Runs)-1]
			continue
		}
		break
	}
}

package exporter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	bodyFont = "Times New Roman"
	bodySize = 13
)

type style struct {
	size   uint64
	bold   bool
	italic bool
	color  string
}

var (
	titleStyle    = style{size: 18, bold: true, color: "000000"}
	subtitleStyle = style{size: bodySize - 2, italic: true, color: "555555"}
	bodyStyle     = style{size: bodySize, color: "000000"}
)

var (
	headingLine  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLine   = regexp.MustCompile(`^[\-\*•]\s+(.+)$`)
	numberedLine = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
	boldSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Save renders doc as a .docx file at outputPath.
func Save(doc Document, outputPath string) error {
	d, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	w := docWriter{doc: d}
	w.line(doc.Title, titleStyle)
	if doc.Subtitle != "" {
		w.line(doc.Subtitle, subtitleStyle)
	}

	for _, sec := range doc.Sections {
		w.blank()
		w.line(sec.Heading, headingStyle(2))
		if sec.Markdown {
			w.markdown(sec.Body)
		} else {
			w.plain(sec.Body)
		}
	}

	if err := d.SaveTo(outputPath); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

func headingStyle(level int) style {
	size := uint64(bodySize)
	switch level {
	case 1:
		size = 16
	case 2:
		size = 15
	case 3:
		size = 14
	}
	return style{size: size, bold: true, color: "000000"}
}

type docWriter struct {
	doc *docx.RootDoc
}

func (w docWriter) blank() {
	w.doc.AddParagraph("")
}

// line writes text as a single run, dropping inline markdown markers.
func (w docWriter) line(text string, st style) {
	w.run(w.doc.AddParagraph(""), stripInline(text), st)
}

func (w docWriter) run(p *docx.Paragraph, text string, st style) {
	r := p.AddText(text).Font(bodyFont).Size(st.size).Color(st.color)
	if st.bold {
		r.Bold(true)
	}
	if st.italic {
		r.Italic(true)
	}
}

func (w docWriter) plain(text string) {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			w.line(l, bodyStyle)
		}
	}
}

// markdown handles what generated summaries and flashcards contain:
// headings, bullet and numbered items, and **bold** spans.
func (w docWriter) markdown(text string) {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		switch {
		case l == "" || l == "---":
		case headingLine.MatchString(l):
			m := headingLine.FindStringSubmatch(l)
			w.line(m[2], headingStyle(len(m[1])+1))
		case bulletLine.MatchString(l):
			w.rich("• " + bulletLine.FindStringSubmatch(l)[1])
		case numberedLine.MatchString(l):
			m := numberedLine.FindStringSubmatch(l)
			w.rich(m[1] + ". " + m[2])
		default:
			w.rich(l)
		}
	}
}

// rich writes one paragraph, rendering **bold** spans as bold runs.
func (w docWriter) rich(text string) {
	p := w.doc.AddParagraph("")
	bold := bodyStyle
	bold.bold = true

	last := 0
	for _, loc := range boldSpan.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			w.run(p, stripInline(text[last:loc[0]]), bodyStyle)
		}
		w.run(p, stripInline(text[loc[2]:loc[3]]), bold)
		last = loc[1]
	}
	if last < len(text) {
		w.run(p, stripInline(text[last:]), bodyStyle)
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}

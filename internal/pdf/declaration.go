// Package pdf renders the documents the syndicate hands to members: official
// declarations laid out from HTML templates, and payment receipts.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/andresouzadev/sindigo/internal/services"
)

// Page geometry in millimeters, A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	pageMargin   = 20.0
	contentWidth = pageWidth - 2*pageMargin

	bodyFontSize   = 12.5
	bodyLineHeight = bodyFontSize * 0.3528 * 1.5 // 1.5 line spacing
	firstIndent    = 10.0
)

// DeclarationPDF lays out declaration documents with justified, inline-styled
// body text. It implements services.DeclarationRenderer.
type DeclarationPDF struct{}

func NewDeclarationPDF() *DeclarationPDF { return &DeclarationPDF{} }

func (renderer *DeclarationPDF) Render(document services.DeclarationDocument) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.AddPage()
	translate := doc.UnicodeTranslatorFromDescriptor("")

	renderHeader(doc, translate, document.Profile)
	renderTitle(doc, translate, document.Title)

	bodyEnd, err := renderBody(doc, translate, document.BodyHTML, 85)
	if err != nil {
		return nil, err
	}

	// Date line, right aligned.
	currentY := bodyEnd + 25
	doc.SetFont("Helvetica", "", bodyFontSize)
	dateLine := translate(document.DateLine + ".")
	doc.Text(pageWidth-pageMargin-doc.GetStringWidth(dateLine), currentY, dateLine)
	currentY += 40

	renderSignature(doc, translate, document.Signature, currentY)
	renderFooter(doc, translate, document.Profile.Phone)

	var buffer bytes.Buffer
	if err := doc.Output(&buffer); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderHeader(doc *gofpdf.Fpdf, translate func(string) string, profile services.SyndicateProfile) {
	centered := func(text string, y float64) {
		encoded := translate(text)
		doc.Text((pageWidth-doc.GetStringWidth(encoded))/2, y, encoded)
	}

	doc.SetFont("Helvetica", "B", 14)
	centered(profile.Name, 25)

	doc.SetFont("Helvetica", "", 10)
	centered("CNPJ: "+profile.CNPJ, 32)
	centered(profile.Address, 37)

	doc.SetLineWidth(0.5)
	doc.Line(pageMargin, 45, pageWidth-pageMargin, 45)
}

func renderTitle(doc *gofpdf.Fpdf, translate func(string) string, title string) {
	doc.SetFont("Helvetica", "B", 20)
	encoded := translate(title)
	doc.Text((pageWidth-doc.GetStringWidth(encoded))/2, 65, encoded)
}

// renderBody lays the template out as justified paragraphs and returns the y
// coordinate just below the last line.
func renderBody(doc *gofpdf.Fpdf, translate func(string) string, bodyHTML string, startY float64) (float64, error) {
	paragraphs := parseTemplateHTML(bodyHTML)
	y := startY

	doc.SetFont("Helvetica", "", bodyFontSize)
	for _, para := range paragraphs {
		lines := breakLines(doc, translate, para)
		for index, current := range lines {
			indent := 0.0
			if index == 0 {
				indent = firstIndent
			}
			justify := index < len(lines)-1 && !current.forced
			drawLine(doc, translate, current, pageMargin+indent, y, contentWidth-indent, justify)
			y += bodyLineHeight
		}
		y += bodyLineHeight / 2 // paragraph gap
	}
	return y - bodyLineHeight/2, nil
}

func renderSignature(doc *gofpdf.Fpdf, translate func(string) string, signature string, lineY float64) {
	if image, kind := decodeSignature(signature); image != nil {
		name := "signature"
		options := gofpdf.ImageOptions{ImageType: kind, ReadDpi: true}
		info := doc.RegisterImageOptionsReader(name, options, bytes.NewReader(image))
		if info != nil && info.Width() > 0 {
			imageWidth := 50.0
			imageHeight := info.Height() * imageWidth / info.Width()
			doc.ImageOptions(name, (pageWidth-imageWidth)/2, lineY-imageHeight-2, imageWidth, imageHeight, false, options, 0, "")
		}
	}

	doc.SetLineWidth(0.2)
	doc.Line(pageWidth/2-40, lineY, pageWidth/2+40, lineY)
	doc.SetFont("Helvetica", "", 11)
	caption := translate("A Diretoria")
	doc.Text((pageWidth-doc.GetStringWidth(caption))/2, lineY+7, caption)
}

func renderFooter(doc *gofpdf.Fpdf, translate func(string) string, phone string) {
	doc.SetLineWidth(0.2)
	doc.Line(pageMargin, pageHeight-25, pageWidth-pageMargin, pageHeight-25)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(128, 128, 128)
	centered := func(text string, y float64) {
		encoded := translate(text)
		doc.Text((pageWidth-doc.GetStringWidth(encoded))/2, y, encoded)
	}
	centered("A veracidade deste documento pode ser confirmada através do telefone: "+phone, pageHeight-18)
	centered("Este documento tem validade de 30 dias a partir da data de emissão.", pageHeight-13)
	doc.SetTextColor(0, 0, 0)
}

// decodeSignature accepts a raw or data-URL base64 image and reports its
// type. A value that does not decode is ignored rather than failing the
// whole document.
func decodeSignature(signature string) ([]byte, string) {
	if signature == "" {
		return nil, ""
	}
	kind := "PNG"
	if comma := strings.Index(signature, "base64,"); comma >= 0 {
		header := signature[:comma]
		if strings.Contains(header, "jpeg") || strings.Contains(header, "jpg") {
			kind = "JPG"
		}
		signature = signature[comma+len("base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, ""
	}
	return decoded, kind
}

// fragment is a measurable piece of one word in a single font style. A word
// spans multiple fragments when a style boundary falls inside it.
type fragment struct {
	text  string
	style string // gofpdf style string: combinations of B, I, U
}

type layoutWord struct {
	fragments []fragment
	width     float64
}

type layoutLine struct {
	words  []layoutWord
	width  float64 // natural width of words without inter-word spaces
	forced bool    // ended by an explicit <br>
}

func runStyle(run textRun) string {
	var style strings.Builder
	if run.Bold {
		style.WriteByte('B')
	}
	if run.Italic {
		style.WriteByte('I')
	}
	if run.Underline {
		style.WriteByte('U')
	}
	return style.String()
}

func fragmentWidth(doc *gofpdf.Fpdf, translate func(string) string, frag fragment) float64 {
	doc.SetFont("Helvetica", frag.style, bodyFontSize)
	return doc.GetStringWidth(translate(frag.text))
}

// splitWords flattens a paragraph into words, carrying style across run
// boundaries so adjacent runs without whitespace stay one word.
func splitWords(doc *gofpdf.Fpdf, translate func(string) string, para paragraph) ([]layoutWord, []int) {
	var (
		words  []layoutWord
		breaks []int // word indexes after which a forced break occurs
		open   layoutWord
	)
	flush := func() {
		if len(open.fragments) > 0 {
			words = append(words, open)
			open = layoutWord{}
		}
	}

	for _, run := range para.Runs {
		if run.Break {
			flush()
			breaks = append(breaks, len(words)-1)
			continue
		}
		style := runStyle(run)
		parts := strings.Split(run.Text, " ")
		for index, part := range parts {
			if index > 0 {
				flush()
			}
			if part == "" {
				continue
			}
			frag := fragment{text: part, style: style}
			open.fragments = append(open.fragments, frag)
			open.width += fragmentWidth(doc, translate, frag)
		}
	}
	flush()
	return words, breaks
}

// breakLines fills lines greedily to the content width, honoring the first
// line indent and explicit breaks.
func breakLines(doc *gofpdf.Fpdf, translate func(string) string, para paragraph) []layoutLine {
	words, breaks := splitWords(doc, translate, para)
	forcedAfter := make(map[int]bool, len(breaks))
	for _, index := range breaks {
		forcedAfter[index] = true
	}

	doc.SetFont("Helvetica", "", bodyFontSize)
	spaceWidth := doc.GetStringWidth(" ")

	var lines []layoutLine
	var current layoutLine
	available := contentWidth - firstIndent

	push := func(forced bool) {
		current.forced = forced
		lines = append(lines, current)
		current = layoutLine{}
		available = contentWidth
	}

	for index, word := range words {
		needed := word.width
		if len(current.words) > 0 {
			needed += spaceWidth
		}
		occupied := current.width + spaceWidth*float64(len(current.words)-1)
		if len(current.words) > 0 && occupied+needed > available {
			push(false)
		}
		current.words = append(current.words, word)
		current.width += word.width

		if forcedAfter[index] {
			push(true)
		}
	}
	if len(current.words) > 0 {
		push(false)
	}
	return lines
}

// drawLine places one line of words at y. When justify is set the slack is
// distributed evenly across the inter-word gaps.
func drawLine(doc *gofpdf.Fpdf, translate func(string) string, current layoutLine, x float64, y float64, available float64, justify bool) {
	doc.SetFont("Helvetica", "", bodyFontSize)
	spaceWidth := doc.GetStringWidth(" ")

	gap := spaceWidth
	if justify && len(current.words) > 1 {
		natural := current.width + spaceWidth*float64(len(current.words)-1)
		gap = spaceWidth + (available-natural)/float64(len(current.words)-1)
	}

	cursor := x
	for _, word := range current.words {
		for _, frag := range word.fragments {
			doc.SetFont("Helvetica", frag.style, bodyFontSize)
			encoded := translate(frag.text)
			doc.Text(cursor, y, encoded)
			cursor += doc.GetStringWidth(encoded)
		}
		cursor += gap
	}
}

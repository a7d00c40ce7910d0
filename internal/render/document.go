// Package render turns validated sheet records into the final newsletter
// document. All splicing goes through the explicit escape helpers; the
// document shell is a text template executed over pre-escaped fields, so
// no implicit escaping layer is involved and identical inputs always
// produce byte-identical output.
package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/globalite/go-macrobrief/internal/sheet"
)

// Doc carries everything one render needs: validated records, image
// addressing options, the shell template text, and the stylesheet.
type Doc struct {
	Meta         map[string]string
	Points       []sheet.Point
	Distribution []sheet.Segment
	Price        *sheet.PricePoint
	Images       ImageOptions
	Shell        string
	CSS          string
}

// shellData is the fully-rendered field set the shell template splices.
// Every value is already escaped or composed of escaped parts.
type shellData struct {
	Title             string
	Eyebrow           string
	Subtitle          string
	BlockHeight       string
	PriceBadge        string
	HeaderLogo        string
	Points            string
	TLDRTitle         string
	TLDRContent       string
	ConclusionTitle   string
	ConclusionContent string
	CTAURL            string
	CTALabel          string
	FooterLine        string
	AddressLine       string
	FooterLogo        string
	InstagramURL      string
	XURL              string
	LinkedInURL       string
	InstagramIcon     string
	XIcon             string
	LinkedInIcon      string
	Snapshot          string
	CSS               string
}

// Document renders the complete issue.
func Document(doc Doc) (string, error) {
	tmpl, err := template.New("document").Parse(doc.Shell)
	if err != nil {
		return "", fmt.Errorf("parsing document shell: %w", err)
	}

	var points strings.Builder
	for _, point := range doc.Points {
		points.WriteString(renderPoint(point, doc.Meta, doc.Images))
	}

	data := shellData{
		Title:             EscapeText(doc.Meta["main_title"]),
		Eyebrow:           EscapeText(doc.Meta["eyebrow"]),
		Subtitle:          EscapeText(doc.Meta["subtitle"]),
		BlockHeight:       EscapeText(FormatBlockHeight(doc.Meta["block_height"])),
		PriceBadge:        priceBadge(doc.Price),
		HeaderLogo:        EscapeAttr(doc.Meta["header_logo_url"]),
		Points:            points.String(),
		TLDRTitle:         EscapeText(doc.Meta["tldr_title"]),
		TLDRContent:       indent(ContentBlocks(doc.Meta["tldr_content"]), 16),
		ConclusionTitle:   EscapeText(doc.Meta["conclusion_title"]),
		ConclusionContent: indent(ContentBlocks(doc.Meta["conclusion_content"]), 16),
		CTAURL:            EscapeAttr(doc.Meta["cta_url"]),
		CTALabel:          EscapeText(doc.Meta["cta_label"]),
		FooterLine:        EscapeText(doc.Meta["footer_line"]),
		AddressLine:       EscapeText(doc.Meta["address_line"]),
		FooterLogo:        EscapeAttr(doc.Meta["footer_logo_url"]),
		InstagramURL:      EscapeAttr(doc.Meta["instagram_url"]),
		XURL:              EscapeAttr(doc.Meta["x_url"]),
		LinkedInURL:       EscapeAttr(doc.Meta["linkedin_url"]),
		InstagramIcon:     EscapeAttr(doc.Meta["footer_instagram_icon"]),
		XIcon:             EscapeAttr(doc.Meta["footer_x_icon"]),
		LinkedInIcon:      EscapeAttr(doc.Meta["footer_linkedin_icon"]),
		Snapshot:          Snapshot(doc.Meta, doc.Distribution),
		CSS:               strings.TrimRight(doc.CSS, "\n"),
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering document shell: %w", err)
	}
	return out.String(), nil
}

// renderPoint renders one numbered section row: heading, optional lead
// image, content blocks, optional source line, optional extra images.
func renderPoint(point sheet.Point, meta map[string]string, images ImageOptions) string {
	parts := []string{
		"            <tr>",
		`              <td class="section">`,
		fmt.Sprintf("                <h2>%d. %s</h2>", point.Order, EscapeText(point.Title)),
	}

	if figure := imageFigure(point, ResolveImagePath(point, meta, images)); figure != "" {
		parts = append(parts, indent(figure, 16))
	}
	extras := extraImagesFigure(point, ResolveExtraImages(point, meta, images))

	parts = append(parts, indent(ContentBlocks(point.Content), 16))
	if point.Source != "" {
		parts = append(parts, fmt.Sprintf(
			`                <p class="point-source">%s</p>`, EscapeText(point.Source)))
	}
	if extras != "" {
		parts = append(parts, indent(extras, 16))
	}

	parts = append(parts, "              </td>", "            </tr>")
	return strings.Join(parts, "\n") + "\n"
}

// imageFigure renders the lead image with its caption, falling back to
// the point title when no caption is set.
func imageFigure(point sheet.Point, src string) string {
	if src == "" {
		return ""
	}
	caption := point.ImageCaption
	if caption == "" {
		caption = point.Title
	}
	return "<div class=\"image\">\n" +
		fmt.Sprintf("  <img src=\"%s\" alt=\"%s\">\n", EscapeAttr(src), EscapeAttr(point.Title)) +
		fmt.Sprintf("  <div class=\"caption\">%s</div>\n", EscapeText(caption)) +
		"</div>"
}

// extraImagesFigure renders the secondary image grid.
func extraImagesFigure(point sheet.Point, sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	tags := make([]string, len(sources))
	for i, src := range sources {
		tags[i] = fmt.Sprintf(`  <img src="%s" alt="%s - extra %d">`,
			EscapeAttr(src), EscapeAttr(point.Title), i+1)
	}
	return "<div class=\"extra-images\">\n" + strings.Join(tags, "\n") + "\n</div>"
}

// priceBadge renders the header price pill as a full indented line with
// a trailing newline, or "" when no price row was found.
func priceBadge(price *sheet.PricePoint) string {
	if price == nil {
		return ""
	}
	label := fmt.Sprintf("BTC price at write time: <strong>%s</strong>",
		EscapeText(FormatCurrency(price.Price, price.Currency)))
	if date := strings.TrimSpace(price.Date); date != "" {
		label += fmt.Sprintf(" (%s)", EscapeText(date))
	}
	return fmt.Sprintf("                <p class=\"price-badge\">%s</p>\n", label)
}

// indent prefixes every non-empty line with the given number of spaces.
func indent(text string, spaces int) string {
	if text == "" {
		return ""
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

package layout

import (
	"fmt"
	"image"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/souqtech/receipt-printer/internal/raster"
	"github.com/souqtech/receipt-printer/internal/textrun"
	"github.com/souqtech/receipt-printer/pkg/payload"
)

const (
	feedLines    = 4
	maxNameLines = 2
	qrDots       = 256
)

// Fixed Arabic labels of the receipt chrome.
const (
	labelDiscount = "الخصم"
	labelTotal    = "إجمالي الفاتورة"

	labelColName  = "الصنف"
	labelColQty   = "الكمية"
	labelColPrice = "السعر"
	labelColTotal = "القيمة"
)

// Engine lays out receipt payloads. It owns two renderers: one at the
// normal line height and one at double height for the title.
type Engine struct {
	text  *raster.Renderer
	title *raster.Renderer
	log   *zap.Logger
}

// NewEngine builds a layout engine from the two raster renderers.
func NewEngine(text, title *raster.Renderer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{text: text, title: title, log: log}
}

// Build produces the receipt document in its fixed order: logo, title,
// time and number, column headings, item rows, separator, optional
// discount, total, footer, optional QR code, then feed and cut. Monetary
// values are formatted here, once, from the payload's authoritative
// decimals.
func (e *Engine) Build(p *payload.Receipt) (*Document, error) {
	doc := &Document{FeedLines: feedLines, Cut: true}

	if p.Logo != "" || p.LogoPath != "" {
		logo, err := e.logoLine(p)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, *logo)
	}

	titleLines, err := e.fieldLines(p.Title, AlignCenter, true, true)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	doc.Lines = append(doc.Lines, titleLines...)

	if p.Time != "" {
		timeLines, err := e.fieldLines(p.Time, AlignLeft, false, false)
		if err != nil {
			return nil, fmt.Errorf("time: %w", err)
		}
		doc.Lines = append(doc.Lines, timeLines...)
	}

	numberLines, err := e.fieldLines(p.Number, AlignLeft, false, false)
	if err != nil {
		return nil, fmt.Errorf("number: %w", err)
	}
	doc.Lines = append(doc.Lines, numberLines...)

	headings, err := e.headingsLine()
	if err != nil {
		return nil, err
	}
	doc.Lines = append(doc.Lines, headings, separatorLine())

	for i, item := range p.Items {
		itemLines, err := e.itemLines(item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		doc.Lines = append(doc.Lines, itemLines...)
	}

	doc.Lines = append(doc.Lines, separatorLine())

	if p.Discount != nil && p.Discount.IsPositive() {
		discount, err := e.amountLine(labelDiscount, p.Discount.StringFixed(2), false)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, discount)
	}

	totalLine, err := e.amountLine(labelTotal, p.Total.StringFixed(2), true)
	if err != nil {
		return nil, err
	}
	doc.Lines = append(doc.Lines, totalLine, blankLine())

	for _, field := range []string{p.Footer.Address, p.Footer.LastLine, p.Footer.Phones} {
		if field == "" {
			continue
		}
		footerLines, err := e.fieldLines(field, AlignCenter, false, false)
		if err != nil {
			return nil, fmt.Errorf("footer: %w", err)
		}
		doc.Lines = append(doc.Lines, footerLines...)
	}

	if p.QR != "" {
		qr, err := e.qrLine(p.QR)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, *qr)
	}

	e.log.Debug("document built",
		zap.Int("lines", len(doc.Lines)),
		zap.Int("items", len(p.Items)),
	)

	return doc, nil
}

// fieldLines routes one text field through the classifier and renders its
// raster runs. Native runs stay text; a wrapped raster run continues onto
// lines of its own.
func (e *Engine) fieldLines(field string, align Alignment, bold, double bool) ([]Line, error) {
	runs := textrun.Split(field)
	if len(runs) == 0 {
		return nil, nil
	}

	renderer := e.text
	if double {
		renderer = e.title
	}

	var lines []Line
	cur := Line{Align: align, Bold: bold, DoubleHeight: double}
	for _, run := range runs {
		if run.Mode() == textrun.ModeNative {
			cur.Segments = append(cur.Segments, Segment{Text: sanitizeNative(run.Visual)})
			continue
		}

		blocks, err := renderer.Render(run.Visual, PaperDots)
		if err != nil {
			return nil, err
		}
		for i, block := range blocks {
			if i > 0 {
				lines = append(lines, cur)
				cur = Line{Align: align, Bold: bold, DoubleHeight: double}
			}
			cur.Segments = append(cur.Segments, Segment{Block: block})
		}
	}
	if len(cur.Segments) > 0 {
		lines = append(lines, cur)
	}
	return lines, nil
}

// itemLines renders one item row. The name occupies the left column,
// wrapped to at most two lines; quantity, price and total sit in fixed
// right-aligned columns. Quantity is the caller's literal token; price
// and total are the payload's stated decimals, never recomputed.
func (e *Engine) itemLines(item payload.Item) ([]Line, error) {
	qty := item.Qty.String()
	price := item.Price.StringFixed(2)
	total := item.Total.StringFixed(2)

	if !textrun.HasArabic(item.Name) && !textrun.HasArabic(qty) {
		nameLines := wrapWords(sanitizeNative(item.Name), NameCols, maxNameLines)
		if len(nameLines) == 0 {
			nameLines = []string{""}
		}

		row := padRight(nameLines[0], NameCols) +
			padLeft(sanitizeNative(qty), QtyCols) +
			padLeft(price, PriceCols) +
			padLeft(total, TotalCols)

		lines := []Line{textLine(AlignLeft, row)}
		for _, extra := range nameLines[1:] {
			lines = append(lines, textLine(AlignLeft, extra))
		}
		return lines, nil
	}

	nameBlocks, err := e.nameCell(item.Name)
	if err != nil {
		return nil, err
	}

	first := Line{Align: AlignLeft}
	first.Segments = append(first.Segments, Segment{Block: nameBlocks[0]})

	qtySegments, err := e.quantitySegments(qty)
	if err != nil {
		return nil, err
	}
	first.Segments = append(first.Segments, qtySegments...)
	first.Segments = append(first.Segments, Segment{
		Text: padLeft(price, PriceCols) + padLeft(total, TotalCols),
	})

	lines := []Line{first}
	for _, block := range nameBlocks[1:] {
		lines = append(lines, Line{Align: AlignLeft, Segments: []Segment{{Block: block}}})
	}
	return lines, nil
}

// nameCell rasterizes an item name into the fixed name column. The whole
// name, native runs included, renders as one cell; the first block is
// padded to the full column width so the numeric columns start at the
// same dot offset on every row. Continuation blocks occupy lines of their
// own and keep their natural width.
func (e *Engine) nameCell(name string) ([]*raster.Block, error) {
	var visual strings.Builder
	for _, run := range textrun.Split(name) {
		visual.WriteString(run.Visual)
	}

	blocks, err := e.text.Render(visual.String(), NameDots)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return []*raster.Block{raster.NewBlank(NameDots, e.text.LineHeight())}, nil
	}

	blocks[0] = raster.PadBlock(blocks[0], NameDots, 0)
	return blocks, nil
}

// quantitySegments renders the quantity column. Free-form tokens carrying
// Arabic script are rasterized into a cell of exactly the column's dot
// width, ink right-aligned and overflow clipped; everything else is
// native text right-aligned in the column.
func (e *Engine) quantitySegments(qty string) ([]Segment, error) {
	if !textrun.HasArabic(qty) {
		return []Segment{{Text: padLeft(sanitizeNative(qty), QtyCols)}}, nil
	}

	var visual strings.Builder
	for _, run := range textrun.Split(qty) {
		visual.WriteString(run.Visual)
	}

	blocks, err := e.text.Render(visual.String(), QtyDots)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return []Segment{{Text: padLeft("", QtyCols)}}, nil
	}

	cell := raster.PadBlock(blocks[0], QtyDots, QtyDots-blocks[0].Width)
	return []Segment{{Block: cell}}, nil
}

// amountLine renders a right-aligned money row: the value in native text
// to the left of its Arabic label, matching the receipt's RTL reading.
func (e *Engine) amountLine(label, value string, bold bool) (Line, error) {
	line := Line{Align: AlignRight, Bold: bold}
	line.Segments = append(line.Segments, Segment{Text: value + " "})

	blocks, err := e.text.Render(firstArabicVisual(label), PaperDots)
	if err != nil {
		return Line{}, err
	}
	for _, block := range blocks {
		line.Segments = append(line.Segments, Segment{Block: block})
	}
	return line, nil
}

// headingsLine composes the item table headings as one paper-wide raster
// row, each heading right-aligned at its own column's boundary.
func (e *Engine) headingsLine() (Line, error) {
	columns := []struct {
		label string
		end   int
	}{
		{labelColName, NameDots},
		{labelColQty, NameDots + QtyDots},
		{labelColPrice, NameDots + QtyDots + PriceDots},
		{labelColTotal, PaperDots},
	}

	row := raster.NewBlank(PaperDots, e.text.LineHeight())
	for _, col := range columns {
		blocks, err := e.text.Render(firstArabicVisual(col.label), PaperDots)
		if err != nil {
			return Line{}, err
		}
		if len(blocks) == 0 {
			continue
		}
		row.Blit(blocks[0], col.end-blocks[0].Width)
	}
	return Line{Align: AlignLeft, Segments: []Segment{{Block: row}}}, nil
}

func (e *Engine) logoLine(p *payload.Receipt) (*Line, error) {
	var img image.Image
	var err error
	if p.Logo != "" {
		img, err = raster.DecodeBase64(p.Logo)
	} else {
		img, err = raster.LoadImageFile(p.LogoPath)
	}
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}

	block := raster.FromImage(img, PaperDots)
	return &Line{Align: AlignCenter, Segments: []Segment{{Block: block}}}, nil
}

func (e *Engine) qrLine(content string) (*Line, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}

	block := raster.FromImage(code.Image(qrDots), qrDots)
	return &Line{Align: AlignCenter, Segments: []Segment{{Block: block}}}, nil
}

// firstArabicVisual shapes a fixed Arabic label into visual order.
func firstArabicVisual(label string) string {
	for _, run := range textrun.Split(label) {
		if run.Arabic {
			return run.Visual
		}
	}
	return label
}

func separatorLine() Line {
	row := make([]byte, CharCols)
	for i := range row {
		row[i] = '-'
	}
	return textLine(AlignLeft, string(row))
}

// sanitizeNative replaces codepoints outside the printer's code page with
// a placeholder so native segments always satisfy the encoder invariant.
// Only Arabic script earns a raster run; non-Arabic text beyond the code
// page (accented Latin, other scripts) substitutes to '?' the same way a
// missing glyph does.
func sanitizeNative(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			r = '?'
		}
		out = append(out, r)
	}
	return string(out)
}

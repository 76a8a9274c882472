package export

import (
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/view"
)

// Page geometry in millimetres.
const (
	pageW = 210.0
	pageH = 297.0

	pad     = 8.0
	headerH = 14.0
	nameH   = 14.0
	imageH  = 95.0
	bottomH = 28.0
	footerH = 9.0
	footerY = pageH - footerH

	imagePad   = 6.0
	detailCols = 2
	labelW     = 26.0
)

type rgb [3]int

var (
	colorInk      = rgb{18, 16, 14}
	colorCharcoal = rgb{32, 30, 28}
	colorStone    = rgb{110, 105, 98}
	colorSilver   = rgb{168, 162, 155}
	colorSand     = rgb{210, 204, 196}
	colorCream    = rgb{245, 241, 235}
	colorIvory    = rgb{252, 250, 246}
	colorGold     = rgb{184, 148, 88}
	colorWhite    = rgb{255, 255, 255}
	colorDivider  = rgb{220, 215, 207}
	colorRowA     = rgb{248, 246, 242}

	colorStockIn  = rgb{42, 148, 96}
	colorStockLow = rgb{194, 134, 38}
	colorStockOut = rgb{192, 68, 68}
)

func stockColor(qty int) rgb {
	switch view.StockStatus(qty) {
	case view.StockInStock:
		return colorStockIn
	case view.StockLow:
		return colorStockLow
	default:
		return colorStockOut
	}
}

// tint mixes c with 92% white.
func tint(c rgb) rgb {
	var out rgb
	for i, v := range c {
		out[i] = int(math.Round(float64(v)*0.08 + 255*0.92))
	}
	return out
}

type detail struct {
	label string
	value string
}

// sheet draws one product per page.
type sheet struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	opts  Options
	total int
}

func (s *sheet) fill(c rgb) { s.pdf.SetFillColor(c[0], c[1], c[2]) }
func (s *sheet) ink(c rgb) { s.pdf.SetTextColor(c[0], c[1], c[2]) }
func (s *sheet) rect(x, y, w, h float64) { s.pdf.Rect(x, y, w, h, "F") }

func (s *sheet) font(family, style string, size float64) {
	s.pdf.SetFont(family, style, size)
}

func (s *sheet) text(x, y float64, txt string) {
	s.pdf.Text(x, y, s.tr(txt))
}

func (s *sheet) width(txt string) float64 {
	return s.pdf.GetStringWidth(s.tr(txt))
}

func (s *sheet) textRight(x, y float64, txt string) {
	s.text(x-s.width(txt), y, txt)
}

func (s *sheet) textCenter(x, y float64, txt string) {
	s.text(x-s.width(txt)/2, y, txt)
}

// firstLine returns the translated part of txt that fits in w at the current
// font. Splitting works on cp1252 bytes so the width table is indexed per byte.
func (s *sheet) firstLine(txt string, w float64) string {
	lines := s.pdf.SplitLines([]byte(s.tr(txt)), w)
	if len(lines) == 0 {
		return ""
	}
	return string(lines[0])
}

func (s *sheet) draw(p *models.Product, index int, img *placedImage) {
	s.fill(colorIvory)
	s.rect(0, 0, pageW, pageH)

	s.drawHeader(p, index)
	s.drawName(p)
	imageY := headerH + nameH
	s.drawImage(p, img, imageY)

	infoY := imageY + imageH + 0.8
	bottomY := footerY - bottomH
	s.fill(colorWhite)
	s.rect(0, infoY, pageW, footerY-infoY)
	s.drawSpecs(p, infoY, bottomY)
	s.drawStock(p, bottomY)
	s.drawFooter(p, index)
}

func (s *sheet) drawHeader(p *models.Product, index int) {
	s.fill(colorInk)
	s.rect(0, 0, pageW, headerH)
	s.fill(colorGold)
	s.rect(0, headerH-0.8, pageW, 0.8)

	s.font("Helvetica", "B", 7)
	s.ink(colorGold)
	s.text(pad, 5.5, strings.ToUpper(s.opts.Title))
	s.font("Helvetica", "", 5)
	s.ink(colorSilver)
	s.text(pad, 10, frenchDate(s.opts.Date))

	s.font("Helvetica", "", 6)
	s.textRight(pageW-pad, 5.5, "FICHE  "+strconv.Itoa(index+1)+" / "+strconv.Itoa(s.total))
	s.font("Helvetica", "", 5)
	s.ink(colorSand)
	ref := p.SKU
	if category := p.TaxonomyNames(models.TaxonomyCategory); category != "" {
		ref = category + "  ·  " + p.SKU
	}
	s.textRight(pageW-pad, 10, ref)
}

func (s *sheet) drawName(p *models.Product) {
	y := headerH
	s.fill(colorCharcoal)
	s.rect(0, y, pageW, nameH)
	s.fill(colorGold)
	s.rect(0, y+nameH-0.5, pageW, 0.5)

	name := p.Name
	if name == "" {
		name = "Produit"
	}
	s.font("Helvetica", "B", 11)
	s.ink(colorIvory)
	s.pdf.Text(pad, y+9.5, s.firstLine(name, pageW-pad*2))

	if p.SKU == "" {
		return
	}
	badgeW := s.width(p.SKU)*0.75 + 6
	s.fill(colorGold)
	s.pdf.RoundedRect(pageW-pad-badgeW, y+4, badgeW, 6, 1, "1234", "F")
	s.font("Courier", "B", 5.5)
	s.ink(colorInk)
	s.textCenter(pageW-pad-badgeW/2, y+8.2, p.SKU)
}

func (s *sheet) drawImage(p *models.Product, img *placedImage, y float64) {
	s.fill(colorCream)
	s.rect(0, y, pageW, imageH)

	if img != nil {
		maxW := pageW - imagePad*2
		maxH := imageH - imagePad*2
		ratio := math.Min(maxW/float64(img.width), maxH/float64(img.height))
		w := float64(img.width) * ratio
		h := float64(img.height) * ratio
		x := imagePad + (maxW-w)/2
		top := y + imagePad + (maxH-h)/2
		s.pdf.ImageOptions(img.name, x, top, w, h, false, fpdf.ImageOptions{ImageType: img.imageType}, 0, "")
	} else {
		s.font("Helvetica", "I", 9)
		s.ink(colorSilver)
		s.textCenter(pageW/2, y+imageH/2, "Aucune image disponible")
	}

	s.drawRefStamp(pad, y+imageH-10, p.SKU)
	s.fill(colorGold)
	s.rect(0, y+imageH, pageW, 0.8)
}

func (s *sheet) drawRefStamp(x, y float64, sku string) {
	s.fill(colorInk)
	s.rect(x, y, 22, 8)
	s.font("Helvetica", "B", 5.5)
	s.ink(colorGold)
	s.text(x+1.5, y+2.8, "RÉF.")

	short := "-"
	if sku != "" {
		short = sku
		if r := []rune(sku); len(r) > 12 {
			short = string(r[:12])
		}
	}
	s.font("Courier", "B", 6.5)
	s.ink(colorWhite)
	s.text(x+1.5, y+6.2, short)
}

func (s *sheet) details(p *models.Product) []detail {
	all := []detail{
		{"Catégorie", p.TaxonomyNames(models.TaxonomyCategory)},
		{"Type", p.TaxonomyNames(models.TaxonomyProductType)},
		{"Fournisseur", p.TaxonomyNames(models.TaxonomySupplier)},
		{"Localisation", p.MetaValue(models.MetaLocation)},
		{"Design", p.TaxonomyNames(models.TaxonomyDesign)},
		{"Couleur", p.TaxonomyNames(models.TaxonomyColor)},
		{"Nbre de pièces", p.MetaValue(models.MetaPieces)},
		{"Unité", p.MetaValue(models.MetaUnit)},
		{"Rouleaux", p.MetaValue(models.MetaRolls)},
	}
	if s.opts.ShowDimensions {
		if d := p.Dimensions; d != nil && (d.Length != "" || d.Width != "" || d.Height != "") {
			all = append(all, detail{"Dimensions", orDash(d.Length) + " × " + orDash(d.Width) + " × " + orDash(d.Height) + " cm"})
		}
		if weight := strings.TrimSpace(p.Weight); weight != "" {
			all = append(all, detail{"Poids", weight + " kg"})
		}
	}

	out := all[:0]
	for _, sp := range all {
		if strings.TrimSpace(sp.value) != "" {
			out = append(out, sp)
		}
	}
	return out
}

func (s *sheet) drawSpecs(p *models.Product, top, bottomY float64) {
	details := s.details(p)
	colW := (pageW - pad*2 - 4) / detailCols
	rows := (len(details) + detailCols - 1) / detailCols
	rowH := 10.5
	if rows > 0 {
		rowH = math.Min(10.5, math.Max(7, (bottomY-top-10)/float64(rows)))
	}

	y := top + 5
	s.font("Helvetica", "B", 6)
	s.ink(colorGold)
	s.text(pad, y, "SPÉCIFICATIONS")
	y += 3
	s.fill(colorGold)
	s.rect(pad, y, pageW-pad*2, 0.4)
	y += 3

	for i, sp := range details {
		col := i % detailCols
		row := i / detailCols
		x := pad + float64(col)*(colW+4)
		rowY := y + float64(row)*rowH
		if rowY+rowH > bottomY-1 {
			continue
		}

		if row%2 == 0 {
			s.fill(colorRowA)
			s.rect(x, rowY, colW, rowH)
		}
		s.fill(colorGold)
		s.rect(x, rowY, 1.5, rowH)

		mid := rowY + rowH/2 + 1.8
		s.font("Helvetica", "", 5.5)
		s.ink(colorStone)
		s.text(x+3, mid, strings.ToUpper(sp.label))

		s.fill(colorDivider)
		s.rect(x+labelW, rowY+1, 0.2, rowH-2)

		s.font("Helvetica", "B", 7)
		s.ink(colorInk)
		s.pdf.Text(x+labelW+3, mid, s.firstLine(sp.value, colW-labelW-5))

		s.fill(colorDivider)
		s.rect(x, rowY+rowH, colW, 0.15)
	}
}

func (s *sheet) drawStock(p *models.Product, y float64) {
	s.fill(colorGold)
	s.rect(0, y, pageW, 0.6)

	qty := strconv.Itoa(p.StockQuantity)
	unit := strings.TrimSpace(p.MetaValue(models.MetaUnit))
	color := stockColor(p.StockQuantity)
	top := y + 0.6

	blockW, qtySize, unitSize, baseline := pageW, 26.0, 8.0, y+24
	showPrice := s.opts.ShowPrice && p.Price.IsPositive()
	if showPrice {
		blockW, qtySize, unitSize, baseline = pageW/2, 24, 7, y+23
	}

	s.fill(tint(color))
	s.rect(0, top, blockW, bottomH)
	s.fill(color)
	s.rect(0, top, 4, bottomH)

	s.font("Helvetica", "B", 5.5)
	s.ink(color)
	s.text(7, y+8, "STOCK ACTUEL")
	s.font("Helvetica", "B", qtySize)
	s.text(7, baseline, qty)
	qtyW := s.width(qty)
	if unit != "" {
		s.font("Helvetica", "", unitSize)
		s.ink(colorStone)
		s.text(7+qtyW+2, baseline, unit)
	}

	if !showPrice {
		return
	}

	half := pageW / 2
	s.fill(colorGold)
	s.rect(half, top, 0.6, bottomH)
	s.fill(colorInk)
	s.rect(half+0.6, top, half-0.6, bottomH)

	s.font("Helvetica", "B", 5.5)
	s.ink(colorGold)
	s.text(half+7, y+8, "PRIX UNITAIRE HT")

	price := p.Price.Fixed()
	s.font("Helvetica", "B", 24)
	s.ink(colorIvory)
	s.text(half+7, y+23, price)
	priceW := s.width(price)
	s.font("Helvetica", "", 10)
	s.ink(colorSilver)
	s.text(half+7+priceW+2, y+23, "DH")
}

func (s *sheet) drawFooter(p *models.Product, index int) {
	s.fill(colorInk)
	s.rect(0, footerY, pageW, footerH)
	s.fill(colorGold)
	s.rect(0, footerY, pageW, 0.4)

	if desc := stripHTML(p.ShortDescription); desc != "" {
		s.font("Helvetica", "I", 5)
		s.ink(colorSilver)
		s.pdf.Text(pad, footerY+5.5, s.firstLine(desc, pageW*0.6))
	}

	s.font("Helvetica", "", 5)
	s.ink(colorStone)
	s.textCenter(pageW/2, footerY+5.5, s.opts.SiteLabel)

	s.ink(colorSilver)
	s.textRight(pageW-pad, footerY+5.5, strconv.Itoa(index+1)+" / "+strconv.Itoa(s.total))
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

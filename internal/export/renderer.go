package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/models"
)

// Renderer produces the product catalog PDF, one A4 sheet per product.
type Renderer struct {
	images *ImageLoader
	logger *slog.Logger
}

func NewRenderer(images *ImageLoader, logger *slog.Logger) *Renderer {
	if images == nil {
		images = NewImageLoader()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{images: images, logger: logger}
}

// Render writes the PDF for products to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, products []models.Product, opts Options) error {
	pdf, err := r.build(ctx, products, opts)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) build(ctx context.Context, products []models.Product, opts Options) (*fpdf.Fpdf, error) {
	if len(products) == 0 {
		return nil, apperrors.NewValidationError("products", "no products to export")
	}
	opts = opts.withDefaults()

	urls := make([]string, len(products))
	for i := range products {
		urls[i] = products[i].PrimaryImage()
	}
	images, err := r.images.LoadAll(ctx, urls)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("catalogadmin", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	s := &sheet{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), opts: opts, total: len(products)}
	for i := range products {
		pdf.AddPage()
		s.draw(&products[i], i, r.registerImage(ctx, pdf, i, images[i]))
		if pdf.Err() {
			return nil, fmt.Errorf("render product %d: %w", products[i].ID, pdf.Error())
		}
	}
	return pdf, nil
}

// registerImage hands the image to the PDF writer. It returns nil when the
// writer rejects it so the sheet shows the placeholder.
func (r *Renderer) registerImage(ctx context.Context, pdf *fpdf.Fpdf, index int, img *loadedImage) *placedImage {
	if img == nil {
		return nil
	}
	name := "product-" + strconv.Itoa(index)
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.imageType}, bytes.NewReader(img.data))
	if pdf.Err() {
		r.logger.WarnContext(ctx, "export image rejected", "index", index, "error", pdf.Error())
		pdf.ClearError()
		return nil
	}
	return &placedImage{name: name, imageType: img.imageType, width: img.width, height: img.height}
}

type placedImage struct {
	name      string
	imageType string
	width     int
	height    int
}

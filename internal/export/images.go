package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultImageConcurrency = 4
	maxImageBytes           = 10 << 20
	imageFetchTimeout       = 20 * time.Second
)

// fpdf image types keyed by sniffed MIME type. WEBP is not supported by the
// PDF writer and falls back to the placeholder.
var pdfImageTypes = map[string]string{
	"image/jpeg": "JPG",
	"image/png":  "PNG",
	"image/gif":  "GIF",
}

type loadedImage struct {
	data      []byte
	imageType string
	width     int
	height    int
}

// ImageLoader downloads primary product images for the export.
type ImageLoader struct {
	client      *http.Client
	concurrency int
	logger      *slog.Logger
}

type LoaderOption func(*ImageLoader)

func WithImageClient(client *http.Client) LoaderOption {
	return func(l *ImageLoader) {
		if client != nil {
			l.client = client
		}
	}
}

func WithConcurrency(n int) LoaderOption {
	return func(l *ImageLoader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *ImageLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewImageLoader(opts ...LoaderOption) *ImageLoader {
	l := &ImageLoader{
		client:      &http.Client{Timeout: imageFetchTimeout},
		concurrency: DefaultImageConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// LoadAll fetches every URL with bounded concurrency. A missing or unusable
// image leaves a nil entry; only cancellation of ctx fails the whole call.
func (l *ImageLoader) LoadAll(ctx context.Context, urls []string) ([]*loadedImage, error) {
	out := make([]*loadedImage, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, u := range urls {
		if u == "" {
			continue
		}
		g.Go(func() error {
			img, err := l.load(gctx, u)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.logger.WarnContext(gctx, "export image skipped", "url", u, "error", err)
				return nil
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load export images: %w", err)
	}
	return out, nil
}

func (l *ImageLoader) load(ctx context.Context, url string) (*loadedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return decodeImage(data)
}

func decodeImage(data []byte) (*loadedImage, error) {
	detected := mimetype.Detect(data)
	var imageType string
	for mime, t := range pdfImageTypes {
		if detected.Is(mime) {
			imageType = t
			break
		}
	}
	if imageType == "" {
		return nil, fmt.Errorf("unsupported image type %s", detected.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image has no area")
	}
	return &loadedImage{data: data, imageType: imageType, width: cfg.Width, height: cfg.Height}, nil
}

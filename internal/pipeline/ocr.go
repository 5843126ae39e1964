package pipeline

import (
	"bytes"
	"context"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

// rasterDPI is the fixed resolution pages are rendered at before being
// sent to the vision model.
const rasterDPI = 300

// ObjectDownloader is the slice of the object store the OCR worker needs.
type ObjectDownloader interface {
	DownloadBytes(ctx context.Context, bucket, key string) ([]byte, error)
}

// OCRWorker transcribes one PDF document through the vision model, page
// by page. Bounded by the global OCR semaphore.
type OCRWorker struct {
	store  ObjectDownloader
	gen    llm.Generator
	limits *Limits
	logger logger.Logger
}

func NewOCRWorker(store ObjectDownloader, gen llm.Generator, limits *Limits, log logger.Logger) *OCRWorker {
	return &OCRWorker{
		store:  store,
		gen:    gen,
		limits: limits,
		logger: log.Named("ocr"),
	}
}

// Process downloads, rasterizes and transcribes one document. Returns the
// concatenated page texts in page order. Zero rasterized pages is an
// EmptySourceError; callers treat any error as "no text" for this key.
func (w *OCRWorker) Process(ctx context.Context, bucket, key, node string) (string, error) {
	release, err := acquire(ctx, w.limits.ocr)
	if err != nil {
		return "", err
	}
	defer release()

	w.logger.Info("OCR start", logger.String("key", key))

	data, err := w.store.DownloadBytes(ctx, bucket, key)
	if err != nil {
		return "", err
	}

	pages, err := rasterizePages(data)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", &EmptySourceError{Key: key}
	}

	var sb strings.Builder
	for i, png := range pages {
		text, err := w.gen.GenerateVision(ctx, prompts.OCR(), png, llm.WithNode(node))
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	w.logger.Info("OCR done",
		logger.String("key", key),
		logger.Int("pages", len(pages)),
	)
	return sb.String(), nil
}

// rasterizePages renders each page of the PDF into a PNG at rasterDPI.
func rasterizePages(data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, rasterDPI)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, err
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}

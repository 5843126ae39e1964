package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ledongthuc/pdf"

	"github.com/hiresift/hiresift/config"
	"github.com/hiresift/hiresift/internal/objstore"
	"github.com/hiresift/hiresift/pkg/logger"
)

// Bulk uploader: validates local PDFs and pushes them to the intake
// bucket so a screening session can pick them up.

func main() {
	dir := flag.String("dir", ".", "folder containing the PDFs to upload")
	bucket := flag.String("bucket", "", "target bucket (defaults to the intake bucket)")
	clear := flag.Bool("clear", false, "empty the bucket before uploading")
	flag.Parse()

	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("console"),
		logger.WithOutputPaths([]string{"stdout"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	minioCfg := config.GetMinioConfig()
	if *bucket == "" {
		*bucket = minioCfg.ResumeBucket
	}

	objects, err := objstore.NewClient(minioCfg, log)
	if err != nil {
		log.Error("Object store unavailable", logger.Error(err))
		os.Exit(1)
	}
	if err := objects.EnsureBucket(ctx, *bucket); err != nil {
		log.Error("Bucket not available", logger.String("bucket", *bucket), logger.Error(err))
		os.Exit(1)
	}
	if *clear {
		if err := objects.Empty(ctx, *bucket); err != nil {
			log.Error("Bucket not emptied", logger.String("bucket", *bucket), logger.Error(err))
			os.Exit(1)
		}
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Error("Cannot read folder", logger.String("dir", *dir), logger.Error(err))
		os.Exit(1)
	}

	uploaded, skipped := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		if err := validatePDF(path); err != nil {
			log.Warn("Skipping invalid PDF",
				logger.String("file", entry.Name()),
				logger.Error(err),
			)
			skipped++
			continue
		}

		if err := objects.Upload(ctx, *bucket, path, entry.Name()); err != nil {
			log.Error("Upload failed", logger.String("file", entry.Name()), logger.Error(err))
			skipped++
			continue
		}
		uploaded++
	}

	log.Info("Ingest finished",
		logger.String("bucket", *bucket),
		logger.Int("uploaded", uploaded),
		logger.Int("skipped", skipped),
	)
}

// validatePDF rejects files the OCR stage would choke on: unreadable
// PDFs and PDFs with no pages.
func validatePDF(path string) error {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("not a readable pdf: %w", err)
	}
	defer f.Close()

	if reader.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}

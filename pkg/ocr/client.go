package ocr

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"FormUp/config"
	"FormUp/pkg/logger"
)

// Cell is one table cell from a layout analysis.
type Cell struct {
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
	Content     string `json:"content"`
}

// Result is the extraction output for one scanned sheet.
type Result struct {
	Content string `json:"content"`
	Cells   []Cell `json:"cells"`
}

// Client runs document layout analysis on a scanned result sheet.
type Client interface {
	Analyze(ctx context.Context, image []byte) (*Result, error)
}

var (
	ocrClient Client
	ocrOnce   sync.Once
	ocrErr    error
)

func Init() error {
	ocrOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.OCRProvider {
		case "azure":
			ocrClient, ocrErr = NewAzureClient(cfg.OCREndpoint, cfg.OCRAPIKey)
		case "mock":
			ocrClient = NewMockClient()
		default:
			ocrErr = fmt.Errorf("unsupported OCR provider: %s", cfg.OCRProvider)
		}

		if ocrErr != nil {
			logger.Logger.Error("Failed to initialize OCR client", zap.Error(ocrErr))
			return
		}

		logger.Logger.Info("OCR client initialized successfully",
			zap.String("provider", cfg.OCRProvider),
		)
	})

	return ocrErr
}

func GetClient() Client {
	if ocrClient == nil {
		panic("OCR client not initialized, call ocr.Init() first")
	}
	return ocrClient
}

func Analyze(ctx context.Context, image []byte) (*Result, error) {
	return GetClient().Analyze(ctx, image)
}

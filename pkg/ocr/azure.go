package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"FormUp/pkg/logger"
	"FormUp/pkg/metrics"
)

const (
	azureAPIVersion  = "2023-07-31"
	azureModelID     = "prebuilt-layout"
	azurePollDelay   = 2 * time.Second
	azurePollTimeout = 60 * time.Second
)

// AzureClient calls the Azure Document Intelligence layout model. Analysis is
// asynchronous: submit the image, then poll the Operation-Location URL.
type AzureClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewAzureClient(endpoint, apiKey string) (*AzureClient, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("azure OCR requires endpoint and API key")
	}

	return &AzureClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type azureAnalyzeResult struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		Content string `json:"content"`
		Tables  []struct {
			Cells []struct {
				RowIndex    int    `json:"rowIndex"`
				ColumnIndex int    `json:"columnIndex"`
				Content     string `json:"content"`
			} `json:"cells"`
		} `json:"tables"`
	} `json:"analyzeResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AzureClient) Analyze(ctx context.Context, image []byte) (*Result, error) {
	operationURL, err := c.submit(ctx, image)
	if err != nil {
		metrics.RecordOCRRequest(ctx, "azure", "submit_failed")
		return nil, err
	}

	result, err := c.poll(ctx, operationURL)
	if err != nil {
		metrics.RecordOCRRequest(ctx, "azure", "failed")
		return nil, err
	}

	metrics.RecordOCRRequest(ctx, "azure", "succeeded")
	return result, nil
}

func (c *AzureClient) submit(ctx context.Context, image []byte) (string, error) {
	url := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		c.endpoint, azureModelID, azureAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("azure analyze returned %d: %s", resp.StatusCode, string(body))
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("azure analyze response missing Operation-Location")
	}

	return operationURL, nil
}

func (c *AzureClient) poll(ctx context.Context, operationURL string) (*Result, error) {
	deadline := time.Now().Add(azurePollTimeout)

	for {
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("azure analyze timed out")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(azurePollDelay):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to poll analyze result: %w", err)
		}

		var parsed azureAnalyzeResult
		err = json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode analyze result: %w", err)
		}

		switch parsed.Status {
		case "succeeded":
			return convertAzureResult(&parsed), nil
		case "failed":
			msg := "unknown"
			if parsed.Error != nil {
				msg = parsed.Error.Message
			}
			return nil, fmt.Errorf("azure analyze failed: %s", msg)
		default:
			logger.Logger.Debug("Azure analyze still running",
				zap.String("status", parsed.Status),
			)
		}
	}
}

func convertAzureResult(parsed *azureAnalyzeResult) *Result {
	result := &Result{Content: parsed.AnalyzeResult.Content}

	for _, table := range parsed.AnalyzeResult.Tables {
		for _, cell := range table.Cells {
			result.Cells = append(result.Cells, Cell{
				RowIndex:    cell.RowIndex,
				ColumnIndex: cell.ColumnIndex,
				Content:     cell.Content,
			})
		}
		// A result sheet carries a single table; ignore stray extras.
		break
	}

	return result
}

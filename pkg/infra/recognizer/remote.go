package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	"github.com/mekorot/linker/pkg/domain/model"
	"github.com/mekorot/linker/pkg/utils/batch"
)

// maxParallelBatches caps concurrent batch requests against one model server
const maxParallelBatches = 4

// rawSpan is the span representation used by the model server protocol
type rawSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Spans []rawSpan `json:"spans"`
}

type bulkPredictRequest struct {
	Texts []string `json:"texts"`
}

type bulkPredictResponse struct {
	Results [][]rawSpan `json:"results"`
}

type remoteRecognizer struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemote creates a Recognizer backed by an external inference server.
// The server is expected to answer POST {base}/predict and
// POST {base}/bulk-predict with rune-offset span lists.
func NewRemote(baseURL string) interfaces.Recognizer {
	return &remoteRecognizer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Predict returns the labeled spans found in a single text
func (r *remoteRecognizer) Predict(ctx context.Context, text string) ([]model.Span, error) {
	var resp predictResponse
	if err := r.post(ctx, "/predict", predictRequest{Text: text}, &resp); err != nil {
		return nil, err
	}

	return toSpans(model.NewDoc(text), resp.Spans), nil
}

// BulkPredict sends texts to the server in batches, up to maxParallelBatches
// at a time, and reassembles the results in input order
func (r *remoteRecognizer) BulkPredict(ctx context.Context, texts []string, batchSize int) ([][]model.Span, error) {
	results := make([][]model.Span, len(texts))
	var mu sync.Mutex

	err := batch.ForEach(ctx, texts, batchSize, maxParallelBatches, func(ctx context.Context, offset int, chunk []string) error {
		var resp bulkPredictResponse
		if err := r.post(ctx, "/bulk-predict", bulkPredictRequest{Texts: chunk}, &resp); err != nil {
			return err
		}
		if len(resp.Results) != len(chunk) {
			return goerr.New("model server returned wrong result count",
				goerr.V("want", len(chunk)), goerr.V("got", len(resp.Results)))
		}

		mu.Lock()
		defer mu.Unlock()
		for i, spans := range resp.Results {
			results[offset+i] = toSpans(model.NewDoc(chunk[i]), spans)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// post sends a JSON request to the model server and decodes the JSON response
func (r *remoteRecognizer) post(ctx context.Context, path string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal model server request")
	}

	url := r.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return goerr.Wrap(err, "failed to create model server request", goerr.V("url", url))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "model server request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.New(fmt.Sprintf("unexpected status code %d from model server", resp.StatusCode),
			goerr.V("url", url), goerr.V("body", string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return goerr.Wrap(err, "failed to decode model server response", goerr.V("url", url))
	}
	return nil
}

// toSpans converts protocol spans into domain spans over doc
func toSpans(doc *model.Doc, raw []rawSpan) []model.Span {
	spans := make([]model.Span, len(raw))
	for i, rs := range raw {
		spans[i] = model.NewSpan(doc, rs.Start, rs.End, rs.Label)
	}
	return spans
}

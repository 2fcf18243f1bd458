package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kwkoo/quizrunner/internal/common"
)

// Question set documents larger than this are rejected.
const maxDocumentSize = 1 << 20

// HTTP fetches <baseURL>/<name>.json.
type HTTP struct {
	baseURL string
	client  *http.Client
	maxSize int64
}

func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		maxSize: maxDocumentSize,
	}
}

func (h *HTTP) Kind() string {
	return "http"
}

func (h *HTTP) Load(ctx context.Context, name string) (common.QuestionSet, error) {
	target := h.baseURL + "/" + url.PathEscape(name) + fileSuffix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return common.QuestionSet{}, fmt.Errorf("error creating request for %s: %v", target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return common.QuestionSet{}, fmt.Errorf("error fetching %s: %v", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return common.QuestionSet{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return common.QuestionSet{}, fmt.Errorf("error fetching %s: HTTP status %d", target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxSize+1))
	if err != nil {
		return common.QuestionSet{}, fmt.Errorf("error reading %s: %v", target, err)
	}
	if int64(len(data)) > h.maxSize {
		return common.QuestionSet{}, &common.SourceFormatError{Err: fmt.Errorf("%s is larger than %d bytes", target, h.maxSize)}
	}
	return common.UnmarshalQuestionSet(bytes.NewReader(data))
}

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

// WebhookStore proxies dataset reads and writes to a remote HTTP endpoint:
// GET <endpoint>/<scope> returns the dataset JSON (404 means absent),
// PUT <endpoint>/<scope> replaces it. Useful when the durable backend lives
// behind another service rather than a database reachable from this process.
type WebhookStore struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

var _ StateStore = (*WebhookStore)(nil)

// NewWebhookStore returns a StateStore proxying to endpoint. The token, when
// not empty, is sent as a bearer credential.
func NewWebhookStore(endpoint, token string) *WebhookStore {
	return &WebhookStore{
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
		httpClient: http.DefaultClient,
	}
}

func (s *WebhookStore) WithHTTPClient(client *http.Client) *WebhookStore {
	s.httpClient = client
	return s
}

func (s *WebhookStore) scopeURL(scope string) string {
	return s.endpoint + "/" + url.PathEscape(scope)
}

func (s *WebhookStore) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.httpClient.Do(req)
}

func (s *WebhookStore) Read(ctx context.Context, scope string) (*vizmodel.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.scopeURL(scope), nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to create webhook request"), vizmodel.ErrStoreUnavailable)
	}

	resp, err := s.do(req)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "webhook_get", "scope", scope, "err", err.Error())
		return nil, errors.Mark(errors.Wrap(err, "failed to read dataset from webhook"), vizmodel.ErrStoreUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return vizmodel.NewDataset(), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Mark(errors.Newf("webhook read returned status %d", resp.StatusCode), vizmodel.ErrStoreUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to read webhook response"), vizmodel.ErrStoreUnavailable)
	}

	ds := vizmodel.NewDataset()
	if err := json.Unmarshal(body, ds); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal dataset"), vizmodel.ErrStoreUnavailable)
	}
	return ds, nil
}

func (s *WebhookStore) Write(ctx context.Context, scope string, ds *vizmodel.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to marshal dataset"), vizmodel.ErrStoreUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.scopeURL(scope), bytes.NewReader(data))
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create webhook request"), vizmodel.ErrStoreUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "webhook_put", "scope", scope, "err", err.Error())
		return errors.Mark(errors.Wrap(err, "failed to store dataset via webhook"), vizmodel.ErrStoreUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return errors.Mark(errors.Newf("webhook write returned status %d", resp.StatusCode), vizmodel.ErrStoreUnavailable)
	}
	return nil
}

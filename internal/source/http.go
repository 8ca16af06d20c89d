package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// DefaultURL is the public question API.
const DefaultURL = "https://banco-questoes-api.onrender.com/api/questoes"

// maxBodyBytes caps the decoded response size.
const maxBodyBytes = 32 << 20

// HTTPSource loads questions from a JSON HTTP endpoint.
type HTTPSource struct {
	url    string       // e.g. "https://host/api/questoes"
	client *http.Client // reused across calls
}

// Compile-time check: *HTTPSource satisfies Source and Pinger.
var (
	_ Source = (*HTTPSource)(nil)
	_ Pinger = (*HTTPSource)(nil)
)

// NewHTTPSource creates a source for the given endpoint. Per-request
// deadlines come from the caller's context; timeout is a hard upper bound.
func NewHTTPSource(endpoint string, timeout time.Duration) *HTTPSource {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPSource{
		url: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchQuestions requests the collection, passing non-empty predicates as
// query parameters (cargo, nivel, banca).
func (s *HTTPSource) FetchQuestions(ctx context.Context, p category.Predicates) ([]questionbank.Question, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, &TransportError{Reason: "invalid source url", Wrapped: err}
	}
	q := u.Query()
	if p.Role != "" {
		q.Set("cargo", p.Role)
	}
	if p.Level != "" {
		q.Set("nivel", p.Level)
	}
	if p.Source != "" {
		q.Set("banca", p.Source)
	}
	u.RawQuery = q.Encode()

	body, err := s.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var questions []questionbank.Question
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&questions); err != nil {
		return nil, &TransportError{Reason: "malformed response", Wrapped: err}
	}
	if err := questionbank.ValidateAll(questions); err != nil {
		return nil, &TransportError{Reason: "malformed response", Wrapped: err}
	}

	return questions, nil
}

// Ping issues a lightweight request so a sleeping host stays warm.
func (s *HTTPSource) Ping(ctx context.Context) error {
	body, err := s.get(ctx, s.url)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
	return body.Close()
}

func (s *HTTPSource) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Reason: "failed to create request", Wrapped: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Reason: "request failed", Wrapped: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &TransportError{Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	return resp.Body, nil
}

// Package supabase fetches record collections from the hosted backend's PostgREST API.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

// maxBodyBytes caps one collection response.
const maxBodyBytes = 32 << 20

// Config configures the Supabase source.
type Config struct {
	// ProjectURL is the project base URL (e.g. https://xyz.supabase.co).
	ProjectURL string
	// APIKey is sent as the apikey header and as the bearer token.
	APIKey string
	// HTTPClient is optional; a client with Timeout is used when nil.
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil. Defaults to 10s.
	Timeout time.Duration
}

// Source reads collections through /rest/v1/{table}.
type Source struct {
	prefix string
	apiKey string
	client *http.Client
}

// New returns a Source for the project in cfg.
func New(cfg Config) (*Source, error) {
	if cfg.ProjectURL == "" {
		return nil, errors.New("supabase: project URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("supabase: api key is required")
	}
	u, err := url.Parse(cfg.ProjectURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("supabase: invalid project URL %q", cfg.ProjectURL)
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Source{
		prefix: strings.TrimRight(cfg.ProjectURL, "/") + "/rest/v1",
		apiKey: cfg.APIKey,
		client: client,
	}, nil
}

// Fetch selects every row of the collection for the org, oldest first. A non-2xx response is an
// error; JSON nulls are left out of the record.
func (s *Source) Fetch(ctx context.Context, req source.Request) (source.Response, error) {
	if err := req.Validate(); err != nil {
		return source.Response{}, err
	}
	q := url.Values{}
	q.Set("select", "*")
	if req.Collection.TenantScoped() {
		q.Set("org_id", "eq."+req.OrgID)
	}
	q.Set("order", "created_at.asc,id.asc")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.prefix+"/"+url.PathEscape(string(req.Collection))+"?"+q.Encode(), nil)
	if err != nil {
		return source.Response{}, fmt.Errorf("supabase: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("apikey", s.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return source.Response{}, fmt.Errorf("supabase: select %s: %w", req.Collection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return source.Response{}, fmt.Errorf("supabase: read %s: %w", req.Collection, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return source.Response{}, fmt.Errorf("supabase: select %s: status %d: %s", req.Collection, resp.StatusCode, msg)
	}
	records, err := decodeRows(body)
	if err != nil {
		return source.Response{}, fmt.Errorf("supabase: decode %s: %w", req.Collection, err)
	}
	return source.Response{Records: records, Origin: source.OriginLive}, nil
}

func decodeRows(body []byte) ([]filter.Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON")
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return nil, errors.New("expected a JSON array of rows")
	}
	out := make([]filter.Record, 0)
	res.ForEach(func(_, row gjson.Result) bool {
		if !row.IsObject() {
			return true
		}
		rec := make(filter.Record)
		row.ForEach(func(key, v gjson.Result) bool {
			switch v.Type {
			case gjson.Null:
			case gjson.True, gjson.False:
				rec[key.String()] = v.Bool()
			case gjson.Number:
				rec[key.String()] = v.Float()
			case gjson.String:
				rec[key.String()] = v.String()
			default:
				rec[key.String()] = v.Raw
			}
			return true
		})
		out = append(out, rec)
		return true
	})
	return out, nil
}

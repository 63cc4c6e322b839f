// Package cache wraps a source.Source with a read-through record cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// DefaultTTL is used when New is given a non-positive ttl.
const DefaultTTL = 30 * time.Second

const keyPrefix = "bookingdesk:records:"

// Store is a byte-oriented key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// entry is the cached form of one response. The origin is stored so a cached demo
// response is never served as live.
type entry struct {
	Origin  source.Origin   `json:"origin"`
	Records []filter.Record `json:"records"`
}

// Source serves responses from the store and fills it from the inner source on a miss.
// Store failures are logged and fall through to the inner source.
type Source struct {
	inner  source.Source
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// New returns a caching Source. logger may be nil.
func New(inner source.Source, store Store, ttl time.Duration, logger *zap.Logger) *Source {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{inner: inner, store: store, ttl: ttl, logger: logger}
}

// Key returns the store key for req.
func Key(req source.Request) string {
	scope := req.OrgID
	if !req.Collection.TenantScoped() || scope == "" {
		scope = "public"
	}
	return keyPrefix + string(req.Collection) + ":" + scope
}

// Fetch implements source.Source.
func (s *Source) Fetch(ctx context.Context, req source.Request) (source.Response, error) {
	if err := req.Validate(); err != nil {
		return source.Response{}, err
	}
	key := Key(req)
	raw, err := s.store.Get(ctx, key)
	switch {
	case err == nil:
		var e entry
		jerr := json.Unmarshal(raw, &e)
		if jerr == nil {
			if e.Records == nil {
				e.Records = make([]filter.Record, 0)
			}
			return source.Response{Records: e.Records, Origin: e.Origin}, nil
		}
		s.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(jerr))
	case errors.Is(err, ErrMiss):
	default:
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	resp, err := s.inner.Fetch(ctx, req)
	if err != nil {
		return source.Response{}, err
	}
	raw, err = json.Marshal(entry{Origin: resp.Origin, Records: utcRecords(resp.Records)})
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return resp, nil
	}
	if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return resp, nil
}

// utcRecords returns records with every timestamp in UTC so cached and uncached text search
// see the same rendering. Records without timestamps are shared, not copied.
func utcRecords(records []filter.Record) []filter.Record {
	out := make([]filter.Record, len(records))
	for i, r := range records {
		out[i] = r
		cloned := false
		for k, v := range r {
			var t time.Time
			switch x := v.(type) {
			case time.Time:
				t = x
			case *time.Time:
				if x == nil {
					continue
				}
				t = *x
			default:
				continue
			}
			if !cloned {
				out[i] = r.Clone()
				cloned = true
			}
			out[i][k] = t.UTC()
		}
	}
	return out
}

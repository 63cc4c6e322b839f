package fixture

import (
	"context"
	"time"

	"bookingdesk/backend/internal/source"
)

// Source serves the demo dataset to any org. Every response is marked OriginDemo.
type Source struct {
	now func() time.Time
}

// New returns a demo Source. now may be nil to use time.Now.
func New(now func() time.Time) *Source {
	if now == nil {
		now = time.Now
	}
	return &Source{now: now}
}

// Fetch implements source.Source. The dataset is rebuilt per call so callers never share rows.
func (s *Source) Fetch(_ context.Context, req source.Request) (source.Response, error) {
	if err := req.Validate(); err != nil {
		return source.Response{}, err
	}
	return source.Response{
		Records: Demo(s.now()).Records(req.Collection, req.OrgID),
		Origin:  source.OriginDemo,
	}, nil
}

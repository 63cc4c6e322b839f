// Package view serves filtered, sorted and paged list screens for one business.
package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	membershipdomain "bookingdesk/backend/internal/membership/domain"
	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/policy/engine"
	"bookingdesk/backend/internal/screen"
	"bookingdesk/backend/internal/source"
)

var (
	// ErrAccessDenied is returned when the access policy does not let the caller open a screen.
	ErrAccessDenied = errors.New("view: access denied")
	// ErrMemberRequired is returned when a request carries no membership.
	ErrMemberRequired = errors.New("view: membership required")
	// ErrSourceUnavailable wraps data-source failures.
	ErrSourceUnavailable = errors.New("view: data source unavailable")
)

// UniqueUsersName is the policy screen name checked by UniqueUsers.
const UniqueUsersName = "unique_users"

// Request asks for one page of a screen.
type Request struct {
	Member *membershipdomain.Membership
	Screen string
	State  filter.State
	// Sort overrides the screen's default order when its Field is set.
	Sort filter.SortSpec
	Page filter.Page
	// Now anchors date presets. Zero means the service clock.
	Now time.Time
}

// Result is one page of a screen. Total counts the filtered records before paging; facet options
// are drawn from every fetched record, not only the filtered ones.
type Result struct {
	Screen  string
	Records []filter.Record
	Total   int
	Origin  source.Origin
	Facets  map[string][]string
	Sort    filter.SortSpec
}

// UsersResult lists the users referenced by the admin log collections.
type UsersResult struct {
	Users  []filter.Entity
	Origin source.Origin
}

// ScreenInfo describes a catalog entry to a client.
type ScreenInfo struct {
	Name        string
	Collection  source.Collection
	Access      screen.Access
	Criteria    []filter.Criterion
	Facets      []string
	DefaultSort filter.SortSpec
	// Allowed reports whether the caller may open the screen.
	Allowed bool
}

// Service resolves screens, enforces screen access and runs the filter engine over fetched records.
type Service struct {
	source   source.Source
	policy   engine.Evaluator
	logger   *zap.Logger
	now      func() time.Time
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used when a request has no Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMeter records view metrics on meter.
func WithMeter(meter metric.Meter) Option {
	return func(s *Service) {
		if meter != nil {
			s.initMetrics(meter)
		}
	}
}

// NewService returns a Service. logger may be nil.
func NewService(src source.Source, policy engine.Evaluator, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{source: src, policy: policy, logger: logger, now: time.Now}
	s.initMetrics(noop.NewMeterProvider().Meter("bookingdesk.view"))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) initMetrics(meter metric.Meter) {
	requests, err := meter.Int64Counter("bookingdesk.view.requests",
		metric.WithDescription("List view requests by screen, origin and outcome."))
	if err != nil {
		s.logger.Warn("view: create request counter", zap.Error(err))
		requests, _ = noop.NewMeterProvider().Meter("bookingdesk.view").Int64Counter("bookingdesk.view.requests")
	}
	latency, err := meter.Float64Histogram("bookingdesk.view.duration",
		metric.WithDescription("List view latency."), metric.WithUnit("ms"))
	if err != nil {
		s.logger.Warn("view: create latency histogram", zap.Error(err))
		latency, _ = noop.NewMeterProvider().Meter("bookingdesk.view").Float64Histogram("bookingdesk.view.duration")
	}
	s.requests = requests
	s.latency = latency
}

// List returns one page of the requested screen.
func (s *Service) List(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case err == nil:
		case errors.Is(err, ErrAccessDenied):
			outcome = "denied"
		case errors.Is(err, screen.ErrUnknownScreen):
			outcome = "unknown_screen"
		default:
			outcome = "error"
		}
		attrs := metric.WithAttributes(
			attribute.String("screen", req.Screen),
			attribute.String("origin", string(res.Origin)),
			attribute.String("outcome", outcome),
		)
		s.requests.Add(ctx, 1, attrs)
		s.latency.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	}()

	scr, err := screen.Lookup(req.Screen)
	if err != nil {
		return Result{}, err
	}
	if err := s.authorize(ctx, req.Member, string(scr.Name), scr.Access); err != nil {
		return Result{}, err
	}
	resp, err := s.fetch(ctx, req.Member.OrgID, scr.Collection)
	if err != nil {
		return Result{}, err
	}

	now := req.Now
	if now.IsZero() {
		now = s.now()
	}
	spec := scr.DefaultSort
	if req.Sort.Field != "" {
		spec = req.Sort
	}
	filtered := filter.Apply(resp.Records, req.State, scr.Criteria, now)
	page, total := filter.Paginate(filter.Sort(filtered, spec), req.Page)

	return Result{
		Screen:  string(scr.Name),
		Records: page,
		Total:   total,
		Origin:  resp.Origin,
		Facets:  scr.FacetOptions(resp.Records),
		Sort:    spec,
	}, nil
}

// UniqueUsers returns every user referenced by the audit, login and security logs of the
// member's org, in first-seen order. It requires admin screen access.
func (s *Service) UniqueUsers(ctx context.Context, member *membershipdomain.Membership) (UsersResult, error) {
	if err := s.authorize(ctx, member, UniqueUsersName, screen.AccessAdmin); err != nil {
		return UsersResult{}, err
	}
	origin := source.OriginLive
	var collections [][]filter.Record
	for _, c := range screen.UserCollections() {
		resp, err := s.fetch(ctx, member.OrgID, c)
		if err != nil {
			return UsersResult{}, err
		}
		if resp.Origin == source.OriginDemo {
			origin = source.OriginDemo
		}
		collections = append(collections, resp.Records)
	}
	return UsersResult{Users: filter.UniqueEntities(screen.UserRef, collections...), Origin: origin}, nil
}

// Screens describes the catalog, with Allowed evaluated for member (false for every screen when
// member is nil).
func (s *Service) Screens(ctx context.Context, member *membershipdomain.Membership) []ScreenInfo {
	all := screen.All()
	out := make([]ScreenInfo, 0, len(all))
	for _, scr := range all {
		info := ScreenInfo{
			Name:        string(scr.Name),
			Collection:  scr.Collection,
			Access:      scr.Access,
			Criteria:    scr.Criteria.List(),
			DefaultSort: scr.DefaultSort,
		}
		for _, f := range scr.Facets {
			info.Facets = append(info.Facets, f.Criterion)
		}
		if member != nil {
			info.Allowed = s.authorize(ctx, member, string(scr.Name), scr.Access) == nil
		}
		out = append(out, info)
	}
	return out
}

func (s *Service) authorize(ctx context.Context, member *membershipdomain.Membership, name string, access screen.Access) error {
	if member == nil || member.OrgID == "" {
		return ErrMemberRequired
	}
	if s.policy == nil {
		return fmt.Errorf("%w: no access policy configured", ErrAccessDenied)
	}
	ok, err := s.policy.AllowScreen(ctx, engine.AccessInput{
		OrgID:  member.OrgID,
		UserID: member.UserID,
		Role:   string(member.Role),
		Status: string(member.Status),
		Screen: name,
		Access: string(access),
	})
	if err != nil {
		s.logger.Error("view: access policy evaluation failed",
			zap.String("org_id", member.OrgID), zap.String("screen", name), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s requires %s access", ErrAccessDenied, name, access)
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, orgID string, c source.Collection) (source.Response, error) {
	resp, err := s.source.Fetch(ctx, source.Request{OrgID: orgID, Collection: c})
	if err != nil {
		s.logger.Warn("view: fetch failed", zap.String("org_id", orgID), zap.String("collection", string(c)), zap.Error(err))
		return source.Response{}, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, c, err)
	}
	return resp, nil
}

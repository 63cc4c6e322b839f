package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	membershipdomain "bookingdesk/backend/internal/membership/domain"
	"bookingdesk/backend/internal/platform/rbac"
	"bookingdesk/backend/internal/screen"
	"bookingdesk/backend/internal/source"
	"bookingdesk/backend/internal/view"
)

// ViewService is the list screen API the handler serves.
type ViewService interface {
	List(ctx context.Context, req view.Request) (view.Result, error)
	UniqueUsers(ctx context.Context, member *membershipdomain.Membership) (view.UsersResult, error)
	Screens(ctx context.Context, member *membershipdomain.Membership) []view.ScreenInfo
}

// Server implements ViewService (gRPC) on top of view.Service.
type Server struct {
	svc     ViewService
	members rbac.OrgMembershipGetter
	logger  *zap.Logger
}

// NewServer returns a new View gRPC server. logger may be nil.
func NewServer(svc ViewService, members rbac.OrgMembershipGetter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, members: members, logger: logger}
}

// ListView returns one filtered, sorted page of a screen for the caller's org.
func (s *Server) ListView(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	m, err := rbac.RequireOrgMember(ctx, s.members)
	if err != nil {
		return nil, err
	}
	req, err := decodeListRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := s.svc.List(ctx, view.Request{
		Member: m,
		Screen: req.Screen,
		State:  req.State,
		Sort:   req.Sort,
		Page:   req.Page,
		Now:    req.Now,
	})
	if err != nil {
		return nil, s.statusFor(err, req.Screen)
	}
	out, err := encodeListResult(res)
	if err != nil {
		s.logger.Error("view: encode list result", zap.String("screen", req.Screen), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode result")
	}
	return out, nil
}

// ListScreens describes every screen and whether the caller may open it.
func (s *Server) ListScreens(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	m, err := rbac.RequireOrgMember(ctx, s.members)
	if err != nil {
		return nil, err
	}
	out, err := encodeScreens(s.svc.Screens(ctx, m))
	if err != nil {
		s.logger.Error("view: encode screens", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode screens")
	}
	return out, nil
}

// ListUniqueUsers returns the users referenced by the org's audit, login and security logs.
func (s *Server) ListUniqueUsers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	m, err := rbac.RequireOrgMember(ctx, s.members)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.UniqueUsers(ctx, m)
	if err != nil {
		return nil, s.statusFor(err, view.UniqueUsersName)
	}
	out, err := encodeUsers(res)
	if err != nil {
		s.logger.Error("view: encode users", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode users")
	}
	return out, nil
}

func (s *Server) statusFor(err error, screenName string) error {
	switch {
	case errors.Is(err, screen.ErrUnknownScreen), errors.Is(err, source.ErrUnknownCollection):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, view.ErrMemberRequired):
		return status.Error(codes.Unauthenticated, "org membership required")
	case errors.Is(err, view.ErrAccessDenied):
		return status.Error(codes.PermissionDenied, "screen not allowed for this role")
	case errors.Is(err, view.ErrSourceUnavailable):
		s.logger.Warn("view: data source unavailable", zap.String("screen", screenName), zap.Error(err))
		return status.Error(codes.Unavailable, "data source unavailable")
	}
	s.logger.Error("view: request failed", zap.String("screen", screenName), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

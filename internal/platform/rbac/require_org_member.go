// Package rbac resolves the caller's membership in the org named by their access token.
package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bookingdesk/backend/internal/membership/domain"
	"bookingdesk/backend/internal/server/interceptors"
)

// OrgMembershipGetter returns a user's membership in an org, or nil when there is none.
type OrgMembershipGetter interface {
	GetMembershipByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error)
}

// RequireOrgMember ensures the caller is authenticated and is a member of the context org (any role
// or status; screen access decides what a role may open).
// Returns the membership on success; returns a gRPC error (Unauthenticated, PermissionDenied or
// Internal) on failure.
func RequireOrgMember(ctx context.Context, getter OrgMembershipGetter) (*domain.Membership, error) {
	orgID, okOrg := interceptors.GetOrgID(ctx)
	userID, okUser := interceptors.GetUserID(ctx)
	if !okOrg || orgID == "" || !okUser || userID == "" {
		return nil, status.Error(codes.Unauthenticated, "org and user context required")
	}
	m, err := getter.GetMembershipByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to resolve membership")
	}
	if m == nil {
		return nil, status.Error(codes.PermissionDenied, "not a member of this organization")
	}
	return m, nil
}

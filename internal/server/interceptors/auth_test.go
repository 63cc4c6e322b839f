package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"bookingdesk/backend/internal/security"
)

func bearerCtx(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

func TestAuthUnary_PublicMethod(t *testing.T) {
	interceptor := AuthUnary(nil, map[string]bool{"/grpc.health.v1.Health/Check": true})

	resp, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, okHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_ProtectedMethod_ValidToken(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _, err := tokens.IssueAccess("session-1", "user-1", "org-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{})

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		userID, _ := GetUserID(ctx)
		orgID, _ := GetOrgID(ctx)
		sessionID, _ := GetSessionID(ctx)
		if userID != "user-1" || orgID != "org-1" || sessionID != "session-1" {
			t.Errorf("identity = %q/%q/%q", userID, orgID, sessionID)
		}
		return "success", nil
	}
	resp, err := interceptor(bearerCtx(token), "request", &grpc.UnaryServerInfo{FullMethod: "/bookingdesk.view.v1.ViewService/ListView"}, handler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_ProtectedMethod_Rejected(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	good, _, err := tokens.IssueAccess("session-1", "user-1", "org-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	tests := []struct {
		name   string
		tokens AccessValidator
		ctx    context.Context
	}{
		{"no token", tokens, context.Background()},
		{"invalid token", tokens, bearerCtx("invalid-token")},
		{"no validator", nil, bearerCtx(good)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				called = true
				return "success", nil
			}
			_, err := AuthUnary(tt.tokens, map[string]bool{})(tt.ctx, "request", &grpc.UnaryServerInfo{FullMethod: "/bookingdesk.view.v1.ViewService/ListView"}, handler)
			if status.Code(err) != codes.Unauthenticated {
				t.Errorf("status code = %v, want %v", status.Code(err), codes.Unauthenticated)
			}
			if called {
				t.Error("handler should not run")
			}
		})
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer token123", "token123"},
		{"case insensitive", "bearer token123", "token123"},
		{"whitespace", "  Bearer   token123  ", "token123"},
		{"basic auth", "Basic token123", ""},
		{"too short", "Bear", ""},
	}
	for _, tt := range tests {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", tt.header))
		if got := extractBearer(ctx); got != tt.want {
			t.Errorf("%s: token = %q, want %q", tt.name, got, tt.want)
		}
	}
	if got := extractBearer(context.Background()); got != "" {
		t.Errorf("missing: token = %q, want empty", got)
	}
}

package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bookingdesk/backend/internal/policy/domain"
	"bookingdesk/backend/internal/policy/repository"
)

// mockPolicyRepo implements repository.Repository for tests.
type mockPolicyRepo struct {
	policies map[string][]*domain.Policy
	err      error
}

var _ repository.Repository = (*mockPolicyRepo)(nil)

func (m *mockPolicyRepo) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	return nil, nil
}

func (m *mockPolicyRepo) ListByOrg(ctx context.Context, orgID string) ([]*domain.Policy, error) {
	return m.policies[orgID], nil
}

func (m *mockPolicyRepo) GetEnabledPoliciesByOrg(ctx context.Context, orgID string) ([]*domain.Policy, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.policies == nil {
		return nil, nil
	}
	return m.policies[orgID], nil
}

func (m *mockPolicyRepo) Create(ctx context.Context, p *domain.Policy) error {
	return nil
}

func (m *mockPolicyRepo) Update(ctx context.Context, p *domain.Policy) error {
	return nil
}

func newEvaluator(t *testing.T, repo repository.Repository) *OPAEvaluator {
	t.Helper()
	e, err := NewOPAEvaluator(context.Background(), "", repo, nil)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	return e
}

func TestOPAEvaluator_HealthCheck(t *testing.T) {
	e := newEvaluator(t, nil)
	if err := e.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestOPAEvaluator_AllowScreen_DefaultPolicy(t *testing.T) {
	e := newEvaluator(t, nil)
	tests := []struct {
		name   string
		role   string
		status string
		access string
		want   bool
	}{
		{"member opens member screen", "member", "active", "member", true},
		{"member opens admin screen", "member", "active", "admin", false},
		{"admin opens admin screen", "admin", "active", "admin", true},
		{"owner opens admin screen", "owner", "active", "admin", true},
		{"suspended admin", "admin", "suspended", "admin", false},
		{"invited member", "member", "invited", "member", false},
		{"no membership", "", "", "member", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.AllowScreen(context.Background(), AccessInput{
				OrgID: "org-1", UserID: "user-1", Role: tt.role, Status: tt.status, Screen: "audit_logs", Access: tt.access,
			})
			if err != nil {
				t.Fatalf("AllowScreen: %v", err)
			}
			if got != tt.want {
				t.Errorf("AllowScreen = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOPAEvaluator_AllowScreen_OrgDeny(t *testing.T) {
	orgPolicy := `package bookingdesk.screen_access

deny if {
	input.screen.name == "security_events"
	input.member.role != "owner"
}
`
	repo := &mockPolicyRepo{policies: map[string][]*domain.Policy{
		"org-1": {{ID: "p1", OrgID: "org-1", Rules: orgPolicy, Enabled: true}},
	}}
	e := newEvaluator(t, repo)
	ctx := context.Background()

	admin := AccessInput{OrgID: "org-1", Role: "admin", Status: "active", Screen: "security_events", Access: "admin"}
	if ok, err := e.AllowScreen(ctx, admin); err != nil || ok {
		t.Errorf("admin on org-1 security_events = %v, %v; want denied", ok, err)
	}
	owner := admin
	owner.Role = "owner"
	if ok, err := e.AllowScreen(ctx, owner); err != nil || !ok {
		t.Errorf("owner on org-1 security_events = %v, %v; want allowed", ok, err)
	}
	other := admin
	other.OrgID = "org-2"
	if ok, err := e.AllowScreen(ctx, other); err != nil || !ok {
		t.Errorf("admin on org-2 = %v, %v; want allowed", ok, err)
	}
}

func TestOPAEvaluator_AllowScreen_OrgAllow(t *testing.T) {
	orgPolicy := `package bookingdesk.screen_access

allow if {
	input.member.status == "active"
	input.screen.name == "team_members"
}
`
	repo := &mockPolicyRepo{policies: map[string][]*domain.Policy{
		"org-1": {{ID: "p1", OrgID: "org-1", Rules: orgPolicy, Enabled: true}},
	}}
	e := newEvaluator(t, repo)
	in := AccessInput{OrgID: "org-1", Role: "member", Status: "active", Screen: "team_members", Access: "admin"}
	if ok, err := e.AllowScreen(context.Background(), in); err != nil || !ok {
		t.Errorf("AllowScreen = %v, %v; want allowed by org policy", ok, err)
	}
}

func TestOPAEvaluator_AllowScreen_DisabledAndBrokenPolicies(t *testing.T) {
	denyAll := "package bookingdesk.screen_access\n\ndeny if { true }\n"
	repo := &mockPolicyRepo{policies: map[string][]*domain.Policy{
		"org-1": {
			{ID: "p1", OrgID: "org-1", Rules: denyAll, Enabled: false},
			{ID: "p2", OrgID: "org-1", Rules: ""},
		},
		"org-2": {{ID: "p3", OrgID: "org-2", Rules: "package bookingdesk.screen_access\n\nallow if {", Enabled: true}},
	}}
	e := newEvaluator(t, repo)
	ctx := context.Background()
	in := AccessInput{OrgID: "org-1", Role: "member", Status: "active", Access: "member"}
	if ok, err := e.AllowScreen(ctx, in); err != nil || !ok {
		t.Errorf("disabled policy applied: %v, %v", ok, err)
	}
	in.OrgID = "org-2"
	if ok, err := e.AllowScreen(ctx, in); err != nil || !ok {
		t.Errorf("broken org policy should fall back to base: %v, %v", ok, err)
	}
}

func TestOPAEvaluator_AllowScreen_RepoError(t *testing.T) {
	e := newEvaluator(t, &mockPolicyRepo{err: errors.New("db down")})
	in := AccessInput{OrgID: "org-1", Role: "admin", Status: "active", Access: "admin"}
	if ok, err := e.AllowScreen(context.Background(), in); err != nil || !ok {
		t.Errorf("AllowScreen = %v, %v; want base policy decision", ok, err)
	}
}

func TestNewOPAEvaluator_InvalidBase(t *testing.T) {
	if _, err := NewOPAEvaluator(context.Background(), "package broken\n\nallow if {", nil, nil); err == nil {
		t.Error("NewOPAEvaluator should fail on an invalid base policy")
	}
}

func TestLoadPolicyFile(t *testing.T) {
	got, err := LoadPolicyFile("")
	if err != nil || got != DefaultRegoPolicy {
		t.Errorf("LoadPolicyFile(\"\") = %q, %v", got, err)
	}
	path := filepath.Join(t.TempDir(), "access.rego")
	src := "package bookingdesk.screen_access\n\ndefault allow := true\n\ndefault deny := false\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = LoadPolicyFile(path)
	if err != nil || got != src {
		t.Fatalf("LoadPolicyFile = %q, %v", got, err)
	}
	e, err := NewOPAEvaluator(context.Background(), got, nil, nil)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	if ok, _ := e.AllowScreen(context.Background(), AccessInput{Access: "admin"}); !ok {
		t.Error("file policy should allow everything")
	}
	if _, err := LoadPolicyFile(filepath.Join(t.TempDir(), "missing.rego")); err == nil {
		t.Error("missing file should fail")
	}
}

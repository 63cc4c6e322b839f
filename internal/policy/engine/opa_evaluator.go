package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
	"go.uber.org/zap"

	"bookingdesk/backend/internal/policy/repository"
)

const policyQuery = "data.bookingdesk.screen_access"

// DefaultRegoPolicy grants member screens to every active member and admin screens to active
// owners and admins. Org policies may add allow or deny rules to the same package.
const DefaultRegoPolicy = `package bookingdesk.screen_access

default allow := false

default deny := false

admin_roles := {"owner", "admin"}

allow if {
	input.member.status == "active"
	input.screen.access == "member"
}

allow if {
	input.member.status == "active"
	input.screen.access == "admin"
	admin_roles[input.member.role]
}
`

// OPAEvaluator evaluates screen access policies using OPA Rego.
type OPAEvaluator struct {
	base       string
	policyRepo repository.Repository
	logger     *zap.Logger
	prepared   rego.PreparedEvalQuery
}

// NewOPAEvaluator returns an OPA-based evaluator. base is the Rego source of the base policy
// (DefaultRegoPolicy when empty). policyRepo may be nil to disable org policies; logger may be nil.
func NewOPAEvaluator(ctx context.Context, base string, policyRepo repository.Repository, logger *zap.Logger) (*OPAEvaluator, error) {
	if base == "" {
		base = DefaultRegoPolicy
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &OPAEvaluator{base: base, policyRepo: policyRepo, logger: logger}
	pq, err := e.prepare(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}
	e.prepared = pq
	return e, nil
}

// LoadPolicyFile reads a base policy from path. An empty path returns DefaultRegoPolicy.
func LoadPolicyFile(path string) (string, error) {
	if path == "" {
		return DefaultRegoPolicy, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("policy: read %s: %w", path, err)
	}
	return string(b), nil
}

// HealthCheck evaluates the base policy against a minimal input.
// Does not call the policy repo or database. Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	_, err := e.decide(ctx, e.prepared, AccessInput{Status: "active", Access: "member"})
	return err
}

// AllowScreen evaluates the base policy together with the org's enabled policies.
// Access requires allow and no deny.
func (e *OPAEvaluator) AllowScreen(ctx context.Context, in AccessInput) (bool, error) {
	pq := e.prepared
	if e.policyRepo != nil && in.OrgID != "" {
		policies, err := e.policyRepo.GetEnabledPoliciesByOrg(ctx, in.OrgID)
		if err != nil {
			e.logger.Warn("policy: load org policies failed, using base policy",
				zap.String("org_id", in.OrgID), zap.Error(err))
		} else {
			var extra []string
			for _, p := range policies {
				if p.Enabled && p.Rules != "" {
					extra = append(extra, p.Rules)
				}
			}
			if len(extra) > 0 {
				orgPQ, err := e.prepare(ctx, extra)
				if err != nil {
					e.logger.Warn("policy: org policies do not compile, using base policy",
						zap.String("org_id", in.OrgID), zap.Error(err))
				} else {
					pq = orgPQ
				}
			}
		}
	}
	return e.decide(ctx, pq, in)
}

func (e *OPAEvaluator) prepare(ctx context.Context, extra []string) (rego.PreparedEvalQuery, error) {
	modules := map[string]string{"policy_0.rego": e.base}
	for i, src := range extra {
		modules[fmt.Sprintf("policy_%d.rego", i+1)] = src
	}
	compiler, err := ast.CompileModules(modules)
	if err != nil {
		return rego.PreparedEvalQuery{}, fmt.Errorf("compile policies: %w", err)
	}
	return rego.New(rego.Query(policyQuery), rego.Compiler(compiler)).PrepareForEval(ctx)
}

func (e *OPAEvaluator) decide(ctx context.Context, pq rego.PreparedEvalQuery, in AccessInput) (bool, error) {
	rs, err := pq.Eval(ctx, rego.EvalInput(buildInput(in)))
	if err != nil {
		return false, fmt.Errorf("eval policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("policy query returned no result")
	}
	doc, ok := rs[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return false, fmt.Errorf("policy query returned %T", rs[0].Expressions[0].Value)
	}
	allow, _ := doc["allow"].(bool)
	deny, _ := doc["deny"].(bool)
	return allow && !deny, nil
}

func buildInput(in AccessInput) map[string]interface{} {
	return map[string]interface{}{
		"org_id": in.OrgID,
		"user": map[string]interface{}{
			"id": in.UserID,
		},
		"member": map[string]interface{}{
			"role":   in.Role,
			"status": in.Status,
		},
		"screen": map[string]interface{}{
			"name":   in.Screen,
			"access": in.Access,
		},
	}
}

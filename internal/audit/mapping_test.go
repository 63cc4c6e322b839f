package audit

import "testing"

func TestParseFullMethod(t *testing.T) {
	tests := []struct {
		fullMethod string
		want       ActionResource
	}{
		{"/bookingdesk.view.v1.ViewService/ListView", ActionResource{"list", "view"}},
		{"/bookingdesk.view.v1.ViewService/ListScreens", ActionResource{"list", "view"}},
		{"/bookingdesk.view.v1.ViewService/ListUniqueUsers", ActionResource{"list", "user"}},
		{"/bookingdesk.policy.v1.PolicyService/GetPolicy", ActionResource{"get", "policy"}},
		{"/bookingdesk.policy.v1.PolicyService/CreatePolicy", ActionResource{"create", "policy"}},
		{"/bookingdesk.policy.v1.PolicyService/UpdatePolicy", ActionResource{"update", "policy"}},
		{"/bookingdesk.policy.v1.PolicyService/DeletePolicy", ActionResource{"delete", "policy"}},
		{"/grpc.health.v1.Health/Check", ActionResource{"check", "health"}},
		{"/bookingdesk.view.v1.ViewService/Get", ActionResource{"get", "view"}},
		{"/NoDots/Method", ActionResource{"method", "unknown"}},
		{"no-slash", ActionResource{"unknown", "unknown"}},
		{"/bookingdesk.v1.Service/Ping", ActionResource{"ping", "unknown"}},
	}
	for _, tt := range tests {
		if got := ParseFullMethod(tt.fullMethod); got != tt.want {
			t.Errorf("ParseFullMethod(%q) = %+v, want %+v", tt.fullMethod, got, tt.want)
		}
	}
}

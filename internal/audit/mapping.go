package audit

import "strings"

// ActionResource is the audit action and resource for one RPC.
type ActionResource struct {
	Action   string
	Resource string
}

// overrides hold methods whose resource is not the service they live on.
var overrides = map[string]ActionResource{
	"/bookingdesk.view.v1.ViewService/ListUniqueUsers": {Action: "list", Resource: "user"},
}

// verbPrefixes map method name prefixes to audit actions, checked in order.
var verbPrefixes = []struct {
	prefix string
	action string
}{
	{"Get", "get"},
	{"List", "list"},
	{"Create", "create"},
	{"Update", "update"},
	{"Delete", "delete"},
}

// ParseFullMethod derives the audit action and resource from a gRPC full method name such as
// /bookingdesk.view.v1.ViewService/ListView (list, view). Unrecognised shapes yield "unknown".
func ParseFullMethod(fullMethod string) ActionResource {
	if ar, ok := overrides[fullMethod]; ok {
		return ar
	}
	slash := strings.LastIndex(fullMethod, "/")
	if slash < 0 {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	service, method := fullMethod[:slash], fullMethod[slash+1:]
	ar := ActionResource{Action: actionFor(method), Resource: "unknown"}
	if dot := strings.LastIndex(service, "."); dot >= 0 {
		ar.Resource = resourceFor(service[dot+1:])
	} else {
		ar.Action = strings.ToLower(method)
	}
	return ar
}

// resourceFor turns ViewService into view and Health into health.
func resourceFor(service string) string {
	name := strings.TrimSuffix(service, "Service")
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func actionFor(method string) string {
	for _, v := range verbPrefixes {
		if strings.HasPrefix(method, v.prefix) {
			return v.action
		}
	}
	return strings.ToLower(method)
}

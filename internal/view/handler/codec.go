package handler

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/view"
)

// listRequest is the decoded form of a ListView request:
//
//	{
//	  "screen": "appointments",
//	  "state": {"search": "carla", "status": ["pending"], "starts": {"from": "2024-01-01", "to": "2024-01-31"}},
//	  "sort": {"field": "starts_at", "desc": true},
//	  "page": {"limit": 20, "offset": 0},
//	  "now": "2024-01-20T12:00:00Z"
//	}
type listRequest struct {
	Screen string
	State  filter.State
	Sort   filter.SortSpec
	Page   filter.Page
	Now    time.Time
}

func decodeListRequest(in *structpb.Struct) (listRequest, error) {
	var out listRequest
	fields := in.GetFields()
	out.Screen = fields["screen"].GetStringValue()
	if out.Screen == "" {
		return out, fmt.Errorf("screen is required")
	}
	state, err := decodeState(fields["state"])
	if err != nil {
		return out, err
	}
	out.State = state
	if v, ok := fields["sort"]; ok {
		s := v.GetStructValue()
		if s == nil {
			return out, fmt.Errorf("sort must be an object")
		}
		out.Sort = filter.SortSpec{
			Field: s.GetFields()["field"].GetStringValue(),
			Desc:  s.GetFields()["desc"].GetBoolValue(),
		}
	}
	if v, ok := fields["page"]; ok {
		p := v.GetStructValue()
		if p == nil {
			return out, fmt.Errorf("page must be an object")
		}
		limit, err := intField(p, "limit")
		if err != nil {
			return out, err
		}
		offset, err := intField(p, "offset")
		if err != nil {
			return out, err
		}
		out.Page = filter.Page{Limit: limit, Offset: offset}
	}
	if raw := fields["now"].GetStringValue(); raw != "" {
		now, ok := filter.ParseTime(raw)
		if !ok {
			return out, fmt.Errorf("now %q is not a timestamp", raw)
		}
		out.Now = now
	}
	return out, nil
}

func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue < 0 || n.NumberValue != math.Trunc(n.NumberValue) || n.NumberValue > math.MaxInt32 {
		return 0, fmt.Errorf("page.%s must be a non-negative integer", name)
	}
	return int(n.NumberValue), nil
}

// decodeState maps wire selections onto filter selections: a string is Text, a list is Set and an
// object is Range. Null entries are dropped.
func decodeState(v *structpb.Value) (filter.State, error) {
	state := filter.State{}
	if v == nil {
		return state, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return state, nil
	}
	s := v.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("state must be an object")
	}
	for name, sel := range s.GetFields() {
		switch k := sel.GetKind().(type) {
		case *structpb.Value_NullValue:
		case *structpb.Value_StringValue:
			state[name] = filter.Text(k.StringValue)
		case *structpb.Value_NumberValue:
			state[name] = filter.Text(strconv.FormatFloat(k.NumberValue, 'f', -1, 64))
		case *structpb.Value_BoolValue:
			state[name] = filter.Text(strconv.FormatBool(k.BoolValue))
		case *structpb.Value_ListValue:
			set := filter.Set{}
			for _, item := range k.ListValue.GetValues() {
				str, ok := item.GetKind().(*structpb.Value_StringValue)
				if !ok {
					return nil, fmt.Errorf("state.%s: set values must be strings", name)
				}
				set = append(set, str.StringValue)
			}
			state[name] = set
		case *structpb.Value_StructValue:
			f := k.StructValue.GetFields()
			state[name] = filter.Range{
				From:   f["from"].GetStringValue(),
				To:     f["to"].GetStringValue(),
				Preset: filter.Preset(f["preset"].GetStringValue()),
			}
		}
	}
	return state, nil
}

// wireValue converts a record value to a structpb-compatible value. Timestamps become RFC 3339
// strings in UTC.
func wireValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(x)
	case string, bool, float64, float32, int, int32, int64, uint, uint32, uint64, nil:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func recordsValue(records []filter.Record) []interface{} {
	out := make([]interface{}, 0, len(records))
	for _, r := range records {
		m := make(map[string]interface{}, len(r))
		for k, v := range r {
			m[k] = wireValue(v)
		}
		out = append(out, m)
	}
	return out
}

func stringsValue(vs []string) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func encodeListResult(res view.Result) (*structpb.Struct, error) {
	facets := make(map[string]interface{}, len(res.Facets))
	for name, opts := range res.Facets {
		facets[name] = stringsValue(opts)
	}
	return structpb.NewStruct(map[string]interface{}{
		"screen":  res.Screen,
		"records": recordsValue(res.Records),
		"total":   res.Total,
		"origin":  string(res.Origin),
		"facets":  facets,
		"sort":    map[string]interface{}{"field": res.Sort.Field, "desc": res.Sort.Desc},
	})
}

func encodeScreens(infos []view.ScreenInfo) (*structpb.Struct, error) {
	screens := make([]interface{}, 0, len(infos))
	for _, info := range infos {
		criteria := make([]interface{}, 0, len(info.Criteria))
		for _, c := range info.Criteria {
			criteria = append(criteria, map[string]interface{}{
				"name":   c.Name,
				"kind":   string(c.Kind),
				"fields": stringsValue(c.Fields),
			})
		}
		facets := append([]string(nil), info.Facets...)
		sort.Strings(facets)
		screens = append(screens, map[string]interface{}{
			"name":         info.Name,
			"collection":   string(info.Collection),
			"access":       string(info.Access),
			"allowed":      info.Allowed,
			"criteria":     criteria,
			"facets":       stringsValue(facets),
			"default_sort": map[string]interface{}{"field": info.DefaultSort.Field, "desc": info.DefaultSort.Desc},
		})
	}
	return structpb.NewStruct(map[string]interface{}{"screens": screens})
}

func encodeUsers(res view.UsersResult) (*structpb.Struct, error) {
	users := make([]interface{}, 0, len(res.Users))
	for _, u := range res.Users {
		users = append(users, map[string]interface{}{"id": u.ID, "label": u.Label})
	}
	return structpb.NewStruct(map[string]interface{}{
		"users":  users,
		"origin": string(res.Origin),
	})
}

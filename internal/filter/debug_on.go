//go:build filterdebug

package filter

import "fmt"

// assertDateValue panics when a date criterion inspects a bool or numeric field, which means the
// criteria declaration points at the wrong field.
func assertDateValue(field string, v any) {
	if _, ok := numeric(v); ok {
		panic(fmt.Sprintf("filter: date criterion on field %q found numeric value %v", field, v))
	}
	if _, ok := v.(bool); ok {
		panic(fmt.Sprintf("filter: date criterion on field %q found bool value %v", field, v))
	}
}

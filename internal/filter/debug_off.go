//go:build !filterdebug

package filter

func assertDateValue(string, any) {}

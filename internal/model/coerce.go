package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	errStrType      = errors.New(MsgStrType)
	errIntType      = errors.New(MsgIntType)
	errDateTimeType = errors.New(MsgDateTimeType)
)

// unixMillisWatershed: numeric timestamps above this are taken as
// milliseconds (and divided again while still above it).
const unixMillisWatershed = 2e10

var timeLayouts = buildTimeLayouts()

func buildTimeLayouts() []string {
	clocks := []string{"15:04:05", "15:04"}
	zones := []string{"Z07:00", "Z0700", "Z07", ""}
	var layouts []string
	for _, sep := range []string{"T", " "} {
		for _, clock := range clocks {
			for _, zone := range zones {
				layouts = append(layouts, "2006-01-02"+sep+clock+zone)
			}
		}
	}
	return layouts
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Interface()
}

func coerceString(v any) (string, error) {
	switch t := deref(v).(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case json.Number:
		return t.String(), nil
	case bool, time.Time:
		return "", errStrType
	case fmt.Stringer:
		return t.String(), nil
	}

	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}
	return "", errStrType
}

func coerceInt(v any) (int64, error) {
	switch t := deref(v).(type) {
	case bool:
		return 0, errIntType
	case string:
		return parseInt(t)
	case []byte:
		return parseInt(string(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, errIntType
		}
		return floatToInt(f)
	}

	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return 0, errIntType
		}
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt(rv.Float())
	}
	return 0, errIntType
}

// parseInt accepts decimal integer text only, so "1.0" and "1e3" fail.
func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errIntType
	}
	return n, nil
}

// floatToInt accepts only integral values in int64 range.
func floatToInt(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errIntType
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errIntType
	}
	return int64(f), nil
}

func coerceTime(v any) (time.Time, error) {
	switch t := deref(v).(type) {
	case time.Time:
		return t, nil
	case bool:
		return time.Time{}, errDateTimeType
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	case json.Number:
		return parseTime(t.String())
	}

	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromUnix(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUnix(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, errDateTimeType
		}
		return fromUnix(f), nil
	}
	return time.Time{}, errDateTimeType
}

// parseTime accepts ISO 8601 date-times with a 'T' or space separator,
// optional seconds, fraction and zone, or a numeric Unix timestamp.
// Values without a zone are taken as UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errDateTimeType
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return fromUnix(f), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errDateTimeType
}

func fromUnix(seconds float64) time.Time {
	for math.Abs(seconds) > unixMillisWatershed {
		seconds /= 1000
	}
	whole := math.Floor(seconds)
	nanos := math.Round((seconds - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

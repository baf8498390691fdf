package pgb

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	FieldTypeDefault FieldType = iota
	FieldTypeJson
	FieldTypeTime
)

/*
Semantic kind of an outgoing parameter, used by `TransformParam`. Most values
are sent as-is (`FieldTypeDefault`). Values for JSON columns are encoded to JSON
text. Values for timestamp columns are converted to `time.Time`, which keeps
the time zone correct without a type annotation on the placeholder.
*/
type FieldType byte

// Implement `fmt.Stringer` for debug purposes.
func (self FieldType) String() string {
	switch self {
	case FieldTypeJson:
		return `json`
	case FieldTypeTime:
		return `time`
	default:
		return `default`
	}
}

/*
Converts an application value into the value that should be sent to the
driver for a column of the given type:

	* Nil, including typed nil pointers, is returned as-is.
	* `FieldTypeJson`: encoded as JSON text.
	* `FieldTypeTime`: `time.Time` and `*time.Time` are returned as-is; numbers
	  are treated as Unix epoch milliseconds; strings are parsed as RFC 3339, or
	  as Postgres text timestamps.
	* Anything else is returned as-is.
*/
func TransformParam(val any, typ FieldType) (any, error) {
	if isNil(val) {
		return val, nil
	}

	switch typ {
	case FieldTypeJson:
		out, err := json.Marshal(val)
		if err != nil {
			return nil, Err{Code: ErrCodeInvalidInput, While: `encoding JSON parameter`, Cause: err}
		}
		return string(out), nil

	case FieldTypeTime:
		return toTime(val)

	default:
		return val, nil
	}
}

func toTime(val any) (any, error) {
	switch val := val.(type) {
	case time.Time, *time.Time:
		return val, nil
	case int:
		return time.UnixMilli(int64(val)), nil
	case int32:
		return time.UnixMilli(int64(val)), nil
	case int64:
		return time.UnixMilli(val), nil
	case uint32:
		return time.UnixMilli(int64(val)), nil
	case float64:
		return floatMilliToTime(val)
	case float32:
		return floatMilliToTime(float64(val))
	case json.Number:
		num, err := val.Float64()
		if err != nil {
			return nil, errInvalid(`converting time parameter`, `%w`, err)
		}
		return floatMilliToTime(num)
	case string:
		return parseTime(val)
	case []byte:
		return parseTime(string(val))
	default:
		return nil, errInvalid(`converting time parameter`, `unsupported type %T`, val)
	}
}

func floatMilliToTime(val float64) (any, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil, errInvalid(`converting time parameter`, `invalid epoch milliseconds %v`, val)
	}
	return time.UnixMilli(int64(val)), nil
}

func parseTime(src string) (any, error) {
	out, err := time.Parse(time.RFC3339Nano, src)
	if err == nil {
		return out, nil
	}

	out, err = pq.ParseTimestamp(nil, src)
	if err == nil {
		err = checkTimeFields(src, out)
	}
	if err == nil {
		return out, nil
	}

	return nil, errInvalid(`converting time parameter`, `can't parse %q as time: %w`, src, err)
}

/*
The Postgres timestamp parser accepts out-of-range fields such as month 13 and
normalizes them into a different time. Each field written in the source must
survive the round trip unchanged.
*/
func checkTimeFields(src string, val time.Time) error {
	match := timeFieldsReg.FindStringSubmatch(src)
	if match == nil {
		return fmt.Errorf(`unrecognized date format`)
	}

	year := val.Year()
	if strings.HasSuffix(src, ` BC`) {
		year = 1 - year
	}

	exp := [...]int{year, int(val.Month()), val.Day(), val.Hour(), val.Minute(), val.Second()}
	for ind, field := range match[1:] {
		if field == `` {
			continue
		}
		num, err := strconv.Atoi(field)
		if err != nil || num != exp[ind] {
			return fmt.Errorf(`field %q is out of range`, field)
		}
	}
	return nil
}

package pgb

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lib/pq/oid"
)

/*
Returns a new registry with parsers for common Postgres types which drivers
tend to return as text:

	json, jsonb                -> decoded via "encoding/json" into `any`
	timestamp, timestamptz     -> `time.Time`
	date                       -> `time.Time`
	uuid                       -> `uuid.UUID`
	int8                       -> `int64`
	_int4, _int8               -> `[]int64`
	_text, _varchar            -> `[]string`
	_float8                    -> `[]float64`
	_bool                      -> `[]bool`

The result is owned by the caller and may be modified.
*/
func DefaultTypeParsers() TypeParsers {
	return TypeParsers{
		oid.T_json:        parseJson,
		oid.T_jsonb:       parseJson,
		oid.T_timestamp:   parseTimestamp,
		oid.T_timestamptz: parseTimestamp,
		oid.T_date:        parseTimestamp,
		oid.T_uuid:        parseUuid,
		oid.T_int8:        parseInt8,
		oid.T__int4:       parseArray[pq.Int64Array],
		oid.T__int8:       parseArray[pq.Int64Array],
		oid.T__text:       parseArray[pq.StringArray],
		oid.T__varchar:    parseArray[pq.StringArray],
		oid.T__float8:     parseArray[pq.Float64Array],
		oid.T__bool:       parseArray[pq.BoolArray],
	}
}

func parseJson(src string) (any, error) {
	var out any
	err := json.Unmarshal([]byte(src), &out)
	return out, err
}

func parseTimestamp(src string) (any, error) {
	return pq.ParseTimestamp(nil, src)
}

func parseUuid(src string) (any, error) {
	return uuid.Parse(src)
}

func parseInt8(src string) (any, error) {
	return strconv.ParseInt(src, 10, 64)
}

type arrayScanner[A any] interface {
	*A
	sql.Scanner
}

func parseArray[A any, P arrayScanner[A]](src string) (any, error) {
	var out A
	err := P(&out).Scan([]byte(src))
	return out, err
}

package pgb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lib/pq/oid"
)

func TestDefaultTypeParsers(t *testing.T) {
	parsers := DefaultTypeParsers()

	parse := func(typ oid.Oid, src string) any {
		t.Helper()
		parser := parsers[typ]
		if parser == nil {
			t.Fatalf("missing parser for %v", oidName(typ))
		}
		out, err := parser(src)
		noErr(t, err)
		return out
	}

	t.Run(`json`, func(t *testing.T) {
		eq(t, map[string]any{`a`: list{float64(1), `two`}}, parse(oid.T_json, `{"a": [1, "two"]}`))
		eq(t, list{true, nil}, parse(oid.T_jsonb, `[true, null]`))
		eq(t, `text`, parse(oid.T_jsonb, `"text"`))
	})

	t.Run(`timestamps`, func(t *testing.T) {
		timeEq(t, time.Date(2020, 1, 2, 3, 4, 5, 123000000, time.UTC), parse(oid.T_timestamp, `2020-01-02 03:04:05.123`))
		timeEq(t, time.Date(2020, 1, 2, 0, 4, 5, 0, time.UTC), parse(oid.T_timestamptz, `2020-01-02 03:04:05+03`))
		timeEq(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), parse(oid.T_date, `2020-01-02`))
	})

	t.Run(`uuid`, func(t *testing.T) {
		const src = `f47ac10b-58cc-4372-a567-0e02b2c3d479`
		eq(t, uuid.MustParse(src), parse(oid.T_uuid, src))
	})

	t.Run(`int8`, func(t *testing.T) {
		eq(t, int64(9007199254740993), parse(oid.T_int8, `9007199254740993`))
		eq(t, int64(-1), parse(oid.T_int8, `-1`))
	})

	t.Run(`arrays`, func(t *testing.T) {
		eq(t, pq.Int64Array{1, 2, 3}, parse(oid.T__int4, `{1,2,3}`))
		eq(t, pq.Int64Array{}, parse(oid.T__int8, `{}`))
		eq(t, pq.StringArray{`a`, `b c`}, parse(oid.T__text, `{a,"b c"}`))
		eq(t, pq.StringArray{`x`}, parse(oid.T__varchar, `{x}`))
		eq(t, pq.Float64Array{1.5, 2}, parse(oid.T__float8, `{1.5,2}`))
		eq(t, pq.BoolArray{true, false}, parse(oid.T__bool, `{t,f}`))
	})

	t.Run(`failures`, func(t *testing.T) {
		fail := func(typ oid.Oid, src string) {
			t.Helper()
			_, err := parsers[typ](src)
			if err == nil {
				t.Fatalf("expected %v parser to fail on %q", oidName(typ), src)
			}
		}

		fail(oid.T_json, `{`)
		fail(oid.T_uuid, `not-a-uuid`)
		fail(oid.T_int8, `1.5`)
		fail(oid.T__int4, `{a}`)
		fail(oid.T__int4, `1,2`)
	})

	t.Run(`registry_is_owned_by_caller`, func(t *testing.T) {
		one := DefaultTypeParsers()
		delete(one, oid.T_json)
		eq(t, true, DefaultTypeParsers()[oid.T_json] != nil)
	})
}

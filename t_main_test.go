package pgb

import (
	"errors"
	r "reflect"
	"strings"
	"testing"
	"time"
)

type (
	T  = testing.T
	TB = testing.TB
)

type Inner struct {
	CreatedAt time.Time `db:"created_at"`
	Meta      any       `db:"meta" pgb:"json"`
}

// nolint:govet
type Outer struct {
	Inner
	Id       int64      `db:"id"`
	Name     string     `db:"name"`
	Deleted  *time.Time `db:"deleted_at"`
	private  string     `db:"private"`
	Untagged string     ``
	Skipped  string     `db:"-"`
}

func eq(t TB, exp any, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf("expected:\n%#v\nactual:\n%#v", exp, act)
	}
}

func noErr(t TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func errIs(t TB, exp error, act error) {
	t.Helper()
	if !errors.Is(act, exp) {
		t.Fatalf("expected error matching %v, got %#v", exp, act)
	}
}

func errMsg(t TB, act error, subs ...string) {
	t.Helper()
	if act == nil {
		t.Fatalf("expected an error containing %q, got nil", subs)
	}
	msg := act.Error()
	for _, sub := range subs {
		if !strings.Contains(msg, sub) {
			t.Fatalf("expected error message to contain %q, got %q", sub, msg)
		}
	}
}

func panics(t TB, fun func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fun()
}

type list = []any

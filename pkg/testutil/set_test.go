package testutil

import (
	"os"
	"testing"
)

type fakeCleanuper struct{ fns []func() }

func (c *fakeCleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *fakeCleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestSet(t *testing.T) {
	c := &fakeCleanuper{}
	s := "old"
	Set(c, &s, "new")
	if s != "new" {
		t.Errorf("After Set, s = %q, want %q", s, "new")
	}
	c.runCleanups()
	if s != "old" {
		t.Errorf("After cleanup, s = %q, want %q", s, "old")
	}
}

func TestSetenv(t *testing.T) {
	const name = "RANGEBAR_TESTUTIL_TEST_ENV"
	os.Unsetenv(name)
	c := &fakeCleanuper{}
	Setenv(c, name, "foo")
	if v := os.Getenv(name); v != "foo" {
		t.Errorf("After Setenv, $%s = %q, want %q", name, v, "foo")
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("After cleanup, $%s still exists", name)
	}
}

func TestDedent(t *testing.T) {
	got := Dedent(`
		foo
		  bar
		`)
	want := "foo\n  bar\n"
	if got != want {
		t.Errorf("Dedent -> %q, want %q", got, want)
	}
}

package layering

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestNewScopeChainOrderingFromFixture(t *testing.T) {
	fx := loadScopeChainFixture(t, "layering_scope_chain.json")

	for _, tc := range fx.Cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			input := make([]Scope, len(tc.Input))
			for i := range tc.Input {
				input[i] = scopeFromFixture(tc.Input[i])
			}

			chain := NewScopeChain(input...)
			got := chain.Ordered()

			expect := make([]Scope, len(tc.Expect))
			for i := range tc.Expect {
				expect[i] = scopeFromFixture(tc.Expect[i])
			}

			if !reflect.DeepEqual(expect, got) {
				t.Fatalf("unexpected layering order\nwant: %#v\n got: %#v", expect, got)
			}
			if chain.Len() != len(expect) {
				t.Fatalf("expected len %d, got %d", len(expect), chain.Len())
			}

			if len(expect) == 0 {
				if strongest := chain.Strongest(); strongest != (Scope{}) {
					t.Fatalf("expected zero strongest scope, got %#v", strongest)
				}
				if weakest := chain.Weakest(); weakest != (Scope{}) {
					t.Fatalf("expected zero weakest scope, got %#v", weakest)
				}
				return
			}

			if strongest := chain.Strongest(); strongest != expect[0] {
				t.Fatalf("expected strongest %#v, got %#v", expect[0], strongest)
			}
			if weakest := chain.Weakest(); weakest != expect[len(expect)-1] {
				t.Fatalf("expected weakest %#v, got %#v", expect[len(expect)-1], weakest)
			}
		})
	}
}

func TestScopeSegment(t *testing.T) {
	cases := []struct {
		scope Scope
		want  string
		err   string
	}{
		{scope: GlobalScope(), want: "global"},
		{scope: GroupScope("acme"), want: "group/acme"},
		{scope: UserScope("user-99"), want: "user/user-99"},
		{scope: UserScope(" "), err: "user scope requires an owner"},
		{scope: Scope{}, err: "unsupported scope level"},
	}

	for _, tc := range cases {
		got, err := tc.scope.Segment()
		if tc.err != "" {
			if err == nil || !strings.Contains(err.Error(), tc.err) {
				t.Fatalf("%v: expected error containing %q, got %v", tc.scope, tc.err, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%v: expected %q, got %q (%v)", tc.scope, tc.want, got, err)
		}
	}
}

func TestScopeString(t *testing.T) {
	if got := UserScope("42").String(); got != "user:42" {
		t.Fatalf("unexpected scope string %q", got)
	}
	if got := GlobalScope().String(); got != "global" {
		t.Fatalf("unexpected scope string %q", got)
	}
}

type scopeChainFixture struct {
	Description string                  `json:"description"`
	Cases       []scopeChainFixtureCase `json:"cases"`
}

type scopeChainFixtureCase struct {
	Name   string              `json:"name"`
	Input  []scopeFixtureScope `json:"input"`
	Expect []scopeFixtureScope `json:"expect"`
}

type scopeFixtureScope struct {
	Level string `json:"level"`
	Owner string `json:"owner"`
}

func loadScopeChainFixture(t *testing.T, name string) scopeChainFixture {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("unable to resolve caller for fixture %q", name)
	}
	path := filepath.Join(filepath.Dir(file), "testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read scope chain fixture %q: %v", name, err)
	}
	var fx scopeChainFixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("failed to unmarshal scope chain fixture %q: %v", name, err)
	}
	return fx
}

func scopeFromFixture(fx scopeFixtureScope) Scope {
	return Scope{
		Level: ParseScopeLevel(fx.Level),
		Owner: fx.Owner,
	}
}

package codec

import (
	"strings"
	"testing"

	"github.com/goliatone/go-dotpath/engine"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var containerOpts = cmp.Options{cmp.AllowUnexported(engine.Map{}), cmpopts.EquateEmpty()}

func TestDecodeKeepsKeyOrder(t *testing.T) {
	cases := map[string]string{
		"yaml": "zeta: 1\nalpha:\n  beta: two\n  gamma: [1, 2]\nlist:\n  - name: a\n  - name: b\n",
		"json": `{"zeta": 1, "alpha": {"beta": "two", "gamma": [1, 2]}, "list": [{"name": "a"}, {"name": "b"}]}`,
	}
	want := engine.MapOf(
		engine.Pair{Key: "zeta", Value: 1},
		engine.Pair{Key: "alpha", Value: engine.MapOf(
			engine.Pair{Key: "beta", Value: "two"},
			engine.Pair{Key: "gamma", Value: []any{1, 2}},
		)},
		engine.Pair{Key: "list", Value: []any{
			engine.MapOf(engine.Pair{Key: "name", Value: "a"}),
			engine.MapOf(engine.Pair{Key: "name", Value: "b"}),
		}},
	)

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode([]byte(input))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(want, got, containerOpts); diff != "" {
				t.Fatalf("decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeEmptyInputIsEmptyMapping(t *testing.T) {
	for _, input := range []string{"", "   \n", "null"} {
		got, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("%q: decode: %v", input, err)
		}
		m, ok := got.(*engine.Map)
		if !ok || m.Len() != 0 {
			t.Fatalf("%q: expected empty mapping, got %#v", input, got)
		}
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	if _, err := Decode([]byte("a: [1, 2")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEncodeJSONIsOrdered(t *testing.T) {
	value := engine.MapOf(
		engine.Pair{Key: "b", Value: 1},
		engine.Pair{Key: "a", Value: []any{true, nil}},
	)
	got, err := Encode(value, FormatJSON)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}\n"
	if string(got) != want {
		t.Fatalf("unexpected json:\nwant: %q\n got: %q", want, string(got))
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	value := engine.MapOf(
		engine.Pair{Key: "server", Value: engine.MapOf(
			engine.Pair{Key: "port", Value: 8080},
			engine.Pair{Key: "host", Value: "localhost"},
		)},
		engine.Pair{Key: "plain", Value: map[string]any{"z": "last", "a": "first"}},
		engine.Pair{Key: "tags", Value: []any{"x", "y"}},
	)

	out, err := Encode(value, FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(out)
	if strings.Index(text, "port") > strings.Index(text, "host") {
		t.Fatalf("expected insertion order in yaml output:\n%s", text)
	}
	if strings.Index(text, "a: first") > strings.Index(text, "z: last") {
		t.Fatalf("expected sorted keys for plain maps:\n%s", text)
	}

	back, err := Decode(out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := engine.MapOf(
		engine.Pair{Key: "server", Value: engine.MapOf(
			engine.Pair{Key: "port", Value: 8080},
			engine.Pair{Key: "host", Value: "localhost"},
		)},
		engine.Pair{Key: "plain", Value: engine.MapOf(
			engine.Pair{Key: "a", Value: "first"},
			engine.Pair{Key: "z", Value: "last"},
		)},
		engine.Pair{Key: "tags", Value: []any{"x", "y"}},
	)
	if diff := cmp.Diff(want, back, containerOpts); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	if _, err := Encode(1, Format("toml")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		input string
		want  any
	}{
		{input: "dark", want: "dark"},
		{input: "42", want: 42},
		{input: "-7", want: -7},
		{input: "1.5", want: 1.5},
		{input: "true", want: true},
		{input: "null", want: nil},
		{input: "", want: ""},
		{input: "hello world", want: "hello world"},
		{input: "a: b", want: "a: b"},
		{input: "[1, two]", want: []any{1, "two"}},
		{input: `{"a": 1}`, want: engine.MapOf(engine.Pair{Key: "a", Value: 1})},
	}
	for _, tc := range cases {
		got := ParseValue(tc.input)
		if diff := cmp.Diff(tc.want, got, containerOpts); diff != "" {
			t.Fatalf("%q: mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestFormats(t *testing.T) {
	if FormatFromPath("config.YML") != FormatYAML || FormatFromPath("a/b.yaml") != FormatYAML {
		t.Fatalf("expected yaml for yaml extensions")
	}
	if FormatFromPath("config.json") != FormatJSON || FormatFromPath("config") != FormatJSON {
		t.Fatalf("expected json default")
	}
	if f, err := ParseFormat(" YML "); err != nil || f != FormatYAML {
		t.Fatalf("expected yaml, got %q (%v)", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

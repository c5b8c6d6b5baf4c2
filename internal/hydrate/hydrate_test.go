package hydrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/goliatone/go-dotpath/engine"
)

func TestDecoderFromFixtures(t *testing.T) {
	fx := loadFixture(t, "hydrate_server.json")

	for _, tc := range fx.Cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			decoder := NewDecoder[serverSettings](buildOptions(tc)...)

			ctx := Context{
				Document: tc.Document,
				Path:     tc.Path,
			}

			result, err := decoder.Decode(ctx, tc.Input)

			if tc.ExpectErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tc.ExpectErr)
				}
				if !strings.Contains(err.Error(), tc.ExpectErr) {
					t.Fatalf("expected error containing %q, got %v", tc.ExpectErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}

			if !reflect.DeepEqual(tc.Expect, result) {
				t.Fatalf("decoded value mismatch:\nwant: %#v\n got: %#v", tc.Expect, result)
			}
		})
	}
}

func TestDecoderAcceptsOrderedMaps(t *testing.T) {
	input := engine.MapOf(
		engine.Pair{Key: "host", Value: "localhost"},
		engine.Pair{Key: "port", Value: 8080},
		engine.Pair{Key: "tags", Value: []any{"a", "b"}},
	)

	got, err := NewDecoder[serverSettings]().Decode(Context{Path: "server"}, input)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := serverSettings{Host: "localhost", Port: 8080, Tags: []string{"a", "b"}}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("decoded value mismatch:\nwant: %#v\n got: %#v", want, got)
	}
}

func TestDecoderScalarsAndSequences(t *testing.T) {
	port, err := NewDecoder[int]().Decode(Context{Path: "server.port"}, 8080)
	if err != nil || port != 8080 {
		t.Fatalf("expected 8080, got %v (%v)", port, err)
	}

	tags, err := NewDecoder[[]string]().Decode(Context{Path: "tags"}, []any{"x", "y"})
	if err != nil || !reflect.DeepEqual([]string{"x", "y"}, tags) {
		t.Fatalf("expected tags, got %v (%v)", tags, err)
	}
}

func TestDecoderNilPayload(t *testing.T) {
	_, err := NewDecoder[serverSettings]().Decode(Context{Path: "server"}, nil)
	if err == nil || !strings.Contains(err.Error(), "payload is nil for path \"server\"") {
		t.Fatalf("expected nil payload error, got %v", err)
	}

	got, err := NewDecoder[serverSettings](WithAllowNil[serverSettings]()).Decode(Context{Path: "server"}, nil)
	if err != nil {
		t.Fatalf("expected nil payload allowed, got %v", err)
	}
	if !reflect.DeepEqual(serverSettings{}, got) {
		t.Fatalf("expected zero value, got %#v", got)
	}
}

func TestDecoderPreHookDoesNotMutateSource(t *testing.T) {
	source := map[string]any{"address": "example.com:80"}
	decoder := NewDecoder[serverSettings](WithPreHook[serverSettings](addressPreHook))

	if _, err := decoder.Decode(Context{Path: "server"}, source); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := source["host"]; ok {
		t.Fatalf("expected source payload untouched, got %v", source)
	}
}

func buildOptions(tc fixtureCase) []DecoderOption[serverSettings] {
	options := []DecoderOption[serverSettings]{}

	for _, optName := range tc.Options {
		switch optName {
		case "use_number":
			options = append(options, WithUseNumber[serverSettings]())
		case "disallow_unknown":
			options = append(options, WithDisallowUnknownFields[serverSettings]())
		}
	}

	for _, hookName := range tc.PreHooks {
		switch hookName {
		case "address_split":
			options = append(options, WithPreHook[serverSettings](addressPreHook))
		}
	}

	for _, hookName := range tc.PostHooks {
		switch hookName {
		case "ensure_tag":
			options = append(options, WithPostHook[serverSettings](ensureTagPostHook))
		}
	}

	if tc.CustomDecoder == "snapshot_string" {
		options = append(options, WithCustomDecoder[serverSettings](snapshotStringDecoder))
	}

	return options
}

func addressPreHook(_ Context, payload any) (any, error) {
	fields, ok := payload.(map[string]any)
	if !ok {
		return payload, nil
	}
	value, ok := fields["address"].(string)
	if !ok || value == "" {
		return payload, nil
	}

	host, portText, found := strings.Cut(value, ":")
	if !found {
		return nil, fmt.Errorf("invalid address %q", value)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		return nil, fmt.Errorf("invalid port in %q: %w", value, err)
	}

	delete(fields, "address")
	fields["host"] = host
	fields["port"] = port
	return fields, nil
}

func ensureTagPostHook(ctx Context, settings *serverSettings) error {
	if settings == nil {
		return errors.New("settings is nil")
	}
	if len(settings.Tags) > 0 {
		return nil
	}
	settings.Tags = []string{fmt.Sprintf("%s:%s", ctx.Document, ctx.Path)}
	return nil
}

func snapshotStringDecoder(ctx Context, payload any) (serverSettings, error) {
	var zero serverSettings
	fields, _ := payload.(map[string]any)
	raw, ok := fields["snapshot"].(string)
	if !ok || raw == "" {
		return zero, fmt.Errorf("missing snapshot string for path %q", ctx.Path)
	}
	var out serverSettings
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return zero, err
	}
	return out, nil
}

type fixture struct {
	Description string        `json:"description"`
	Cases       []fixtureCase `json:"cases"`
}

type fixtureCase struct {
	Name          string         `json:"name"`
	Document      string         `json:"document"`
	Path          string         `json:"path"`
	Input         map[string]any `json:"input"`
	Expect        serverSettings `json:"expect"`
	ExpectErr     string         `json:"expectErr"`
	PreHooks      []string       `json:"preHooks"`
	PostHooks     []string       `json:"postHooks"`
	Options       []string       `json:"options"`
	CustomDecoder string         `json:"customDecoder"`
}

type serverSettings struct {
	Host string      `json:"host"`
	Port int         `json:"port"`
	TLS  tlsSettings `json:"tls"`
	Tags []string    `json:"tags"`
}

type tlsSettings struct {
	Enabled bool   `json:"enabled"`
	Cert    string `json:"cert"`
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()
	path := filepath.Join("testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read hydrate fixture %q: %v", name, err)
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("failed to unmarshal hydrate fixture %q: %v", name, err)
	}
	return fx
}

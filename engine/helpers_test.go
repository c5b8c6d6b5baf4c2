package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var containerOpts = []cmp.Option{
	cmp.AllowUnexported(Map{}),
	cmpopts.EquateEmpty(),
}

func assertEqual(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got, containerOpts...); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func usersFixture() *Map {
	names := []string{"John", "Alice", "Emma", "Emily", "Sofia"}
	users := make([]any, 0, len(names))
	for i, name := range names {
		users = append(users, MapOf(Pair{Key: "id", Value: i + 1}, Pair{Key: "name", Value: name}))
	}
	return MapOf(Pair{Key: "users", Value: users})
}

func profileFixture() *Map {
	return MapOf(Pair{Key: "user", Value: MapOf(
		Pair{Key: "profile", Value: MapOf(
			Pair{Key: "id", Value: 625},
			Pair{Key: "pic", Value: "625.png"},
		)},
	)})
}

func settingsFixture() *Map {
	return MapOf(
		Pair{Key: "app", Value: MapOf(
			Pair{Key: "name", Value: "My App"},
			Pair{Key: "version", Value: "1.0"},
		)},
		Pair{Key: "user", Value: MapOf(
			Pair{Key: "theme", Value: "light"},
		)},
	)
}

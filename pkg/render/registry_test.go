package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/builders"
	"github.com/goliatone/go-cardgen/pkg/render"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := render.NewRegistry()
	if err := reg.Register(builders.KindHero, builders.Hero); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(builders.KindHero, builders.Hero); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(builders.KindAlert, nil); err == nil {
		t.Fatalf("expected nil builder error")
	}
	if _, err := reg.Get(builders.KindAlert); err == nil {
		t.Fatalf("expected missing builder error")
	}
}

func TestDefaultRegistryListsEveryKind(t *testing.T) {
	reg := render.DefaultRegistry()
	got := reg.List()
	if len(got) != len(builders.Kinds()) {
		t.Fatalf("expected %d kinds, got %d", len(builders.Kinds()), len(got))
	}
	if diff := cmp.Diff(builders.KindAlert, got[0]); diff != "" {
		t.Fatalf("expected sorted kinds (-want +got):\n%s", diff)
	}
	for _, kind := range builders.Kinds() {
		if !reg.Has(kind) {
			t.Fatalf("missing %s", kind)
		}
	}
}

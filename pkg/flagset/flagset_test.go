// SPDX-License-Identifier: MPL-2.0

package flagset

import (
	"testing"
)

func TestCategoriesAreDisjoint(t *testing.T) {
	// Every flag name must appear in exactly one category; the map type
	// enforces at-most-one, so it is enough to check that every declared
	// constant is present and documented.
	for _, f := range All() {
		if _, ok := CategoryOf(f); !ok {
			t.Errorf("flag %q has no category", f)
		}
		if Describe(f) == "" {
			t.Errorf("flag %q has no doc entry", f)
		}
	}
	if len(All()) != len(docs) {
		t.Errorf("doc table has %d entries, want %d", len(docs), len(All()))
	}
}

func TestRegistryRaiseIsMonotonic(t *testing.T) {
	r := NewRegistry()

	if r.Has(DDSTooBig) {
		t.Fatal("fresh registry should have no raised flags")
	}

	r.Raise(DDSTooBig)
	r.Raise(DDSTooBig) // idempotent
	if !r.Has(DDSTooBig) {
		t.Fatal("DDSTooBig not raised")
	}

	if got := r.Names(); len(got) != 1 || got[0] != string(DDSTooBig) {
		t.Fatalf("Names() = %v, want [%s]", got, DDSTooBig)
	}
}

func TestRegistryIgnoresUnknownNames(t *testing.T) {
	r := NewRegistry()
	r.Raise(Flag("NOT_A_REAL_FLAG"))
	if len(r.Names()) != 0 {
		t.Fatalf("unknown flag leaked into raised set: %v", r.Names())
	}
}

func TestRegistryCategoryQueries(t *testing.T) {
	tests := []struct {
		name        string
		raise       []Flag
		wantBroken  bool
		wantProblem bool
	}{
		{name: "empty", raise: nil},
		{name: "info only", raise: []Flag{IsSaveGame, MaliciousCode}},
		{name: "problem only", raise: []Flag{PNGTooMany}, wantProblem: true},
		{name: "broken only", raise: []Flag{DescriptorMissing}, wantBroken: true},
		{name: "mixed", raise: []Flag{GarbageFile, SpaceInFile}, wantBroken: true, wantProblem: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for _, f := range tt.raise {
				r.Raise(f)
			}
			if got := r.AnyBroken(); got != tt.wantBroken {
				t.Errorf("AnyBroken() = %v, want %v", got, tt.wantBroken)
			}
			if got := r.AnyProblem(); got != tt.wantProblem {
				t.Errorf("AnyProblem() = %v, want %v", got, tt.wantProblem)
			}
		})
	}
}

package options

import (
	"errors"
	"testing"
)

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	d := Descriptor{Name: "anticache", Kind: Bool, Default: false}
	if err := r.Register(d); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	err := r.Register(d)
	if err == nil {
		t.Fatal("expected DuplicateOptionError, got nil")
	}
	var dup *DuplicateOptionError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateOptionError, got %T", err)
	}
	if dup.Name != "anticache" {
		t.Errorf("expected error to name 'anticache', got %q", dup.Name)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("never_registered")
	var unknown *UnknownOptionError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownOptionError, got %v", err)
	}
}

func TestRegistry_MustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustGet on an unknown name should panic")
		}
	}()
	NewRegistry().MustGet("nope")
}

func TestDefaults_DescriptorsAreConsistent(t *testing.T) {
	r := Defaults()
	names := r.Names()
	if len(names) == 0 {
		t.Fatal("Defaults returned an empty registry")
	}

	for _, name := range names {
		d := r.MustGet(name)
		var ok bool
		switch d.Kind {
		case Bool:
			_, ok = d.Default.(bool)
		case Int:
			_, ok = d.Default.(int)
		case String, Size:
			_, ok = d.Default.(string)
		case StringList:
			_, ok = d.Default.([]string)
		}
		if !ok {
			t.Errorf("option %q: default %#v does not match kind %s", name, d.Default, d.Kind)
		}
		if d.Help == "" {
			t.Errorf("option %q has no help text", name)
		}
	}
}

func TestDefaults_KnownValues(t *testing.T) {
	r := Defaults()

	if d := r.MustGet("upstream_cert"); d.Default != true {
		t.Errorf("upstream_cert should default to true, got %v", d.Default)
	}
	if d := r.MustGet("listen_port"); d.Default != 8080 {
		t.Errorf("listen_port should default to 8080, got %v", d.Default)
	}
	if d := r.MustGet("verbose"); d.Default != 2 {
		t.Errorf("verbose should default to 2, got %v", d.Default)
	}
}

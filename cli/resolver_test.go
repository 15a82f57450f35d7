package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_ReturnsCorrectConfig(t *testing.T) {
	source := `
log_level: debug
log_format: text
`

	resolver, err := resolve(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Verify values by creating mock flags and using Resolve
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log_format"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "text" {
		t.Errorf("expected log_format=text, got %v", val2)
	}
}

func TestResolve_UnderscoreHyphenMapping(t *testing.T) {
	source := `log_level: debug`

	resolver, err := resolve(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Test underscore version (as stored in config)
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	// Test hyphen version (should also work via underscore mapping)
	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log-level"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "debug" {
		t.Errorf("expected log-level=debug, got %v", val2)
	}
}

func TestResolve_NumbersAsStrings(t *testing.T) {
	source := `
count: 42
ratio: 1.5
`

	resolver, err := resolve(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "count"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != "42" {
		t.Errorf("expected count=%q, got %v (%T)", "42", val, val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "ratio"}}
	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val2 != "1.5" {
		t.Errorf("expected ratio=%q, got %v (%T)", "1.5", val2, val2)
	}
}

func TestResolve_MissingKey(t *testing.T) {
	source := `log_level: debug`

	resolver, err := resolve(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "missing"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil for missing key, got %v", val)
	}
}

func TestResolve_MalformedYAML(t *testing.T) {
	source := ":\n\t:::"

	resolver, err := resolve(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Malformed config resolves to nothing; Kong falls back to defaults
	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}
	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil from malformed config, got %v", val)
	}
}

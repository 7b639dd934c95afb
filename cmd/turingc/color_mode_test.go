package main

import (
	"os"
	"testing"
)

func TestResolveColorExplicitValues(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("failed to open %s: %v", os.DevNull, err)
	}
	defer f.Close()

	on, err := resolveColor("on", f)
	if err != nil || !on {
		t.Fatalf("resolveColor(on) = %v, %v, want true, nil", on, err)
	}
	off, err := resolveColor("OFF", f)
	if err != nil || off {
		t.Fatalf("resolveColor(OFF) = %v, %v, want false, nil", off, err)
	}
}

func TestResolveColorAutoFallsBackToIsTerminal(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("failed to open %s: %v", os.DevNull, err)
	}
	defer f.Close()

	got, err := resolveColor("auto", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != isTerminal(f) {
		t.Fatalf("resolveColor(auto) = %v, want isTerminal result %v", got, isTerminal(f))
	}
}

func TestResolveColorRejectsUnknownValue(t *testing.T) {
	if _, err := resolveColor("rainbow", os.Stdout); err == nil {
		t.Fatal("expected an error for an unrecognized --color value")
	}
}

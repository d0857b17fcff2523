package wildcard

import (
	"strings"
	"testing"
)

func TestNoFilterAcceptsEverything(t *testing.T) {
	if !None.Accept("anything_goes") {
		t.Errorf("expected nil filter to accept every name")
	}
}

func TestLoadAndAccept(t *testing.T) {
	m, err := Load(strings.NewReader("snd_*\nusb_register\n\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cases := map[string]bool{
		"snd_pcm_open": true,
		"usb_register": true,
		"usb_deregister": false,
		"other_export": false,
	}
	for name, want := range cases {
		if got := m.Accept(name); got != want {
			t.Errorf("Accept(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	cases := map[string]bool{
		"exact_name": true,
		"snd_*":      false,
		"usb_?":      false,
		"abc[0-9]":   false,
	}
	for pattern, want := range cases {
		if got := IsLiteral(pattern); got != want {
			t.Errorf("IsLiteral(%q) = %v, want %v", pattern, got, want)
		}
	}
}

package strtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "{name}", []string{"name"}},
		{"embedded", "Do you want to set up {name}?", []string{"name"}},
		{"multiple", "{name} at {host}", []string{"name", "host"}},
		{"duplicates collapsed", "{host} and {host}", []string{"host"}},
		{"none", "Missing UPnP settings on device.", nil},
		{"stray open brace ignored", "set { of items", nil},
		{"non-identifier ignored", "{Not Valid}", nil},
		{"underscore and digits", "{device_2}", []string{"device_2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholders(tt.in))
		})
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"host", true},
		{"reauth_confirm", true},
		{"upnp_not_configured", true},
		{"s2n_port", true},
		{"", false},
		{"Host", false},
		{"2port", false},
		{"_host", false},
		{"host-name", false},
		{"host name", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, validKey(tt.in))
		})
	}
}

package strtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReference(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"common registry token", "[%key:common::config_flow::data::host%]", true},
		{"dotted token", "[%key:common.config_flow.data.host%]", true},
		{"literal text", "Missing UPnP settings on device.", false},
		{"empty string", "", false},
		{"empty token", "[%key:%]", false},
		{"prefix only", "[%key:common::data", false},
		{"token embedded in text", "see [%key:common::data::host%] here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReference(tt.in))
		})
	}
}

func TestReferencePath(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{
			name:   "double-colon separators normalize to dots",
			in:     "[%key:common::config_flow::abort::already_configured%]",
			want:   "common.config_flow.abort.already_configured",
			wantOK: true,
		},
		{
			name:   "dotted path accepted as-is",
			in:     "[%key:common.config_flow.data.pin%]",
			want:   "common.config_flow.data.pin",
			wantOK: true,
		},
		{
			name:   "literal is not a token",
			in:     "Host",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReferencePath(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

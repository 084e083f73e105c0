package main

import (
	"errors"
	"testing"
)

func TestErrorAnnotation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "single line", err: errors.New("GITHUB_TOKEN not set"), want: "::error::GITHUB_TOKEN not set"},
		{name: "multi line", err: errors.New("first\nsecond\r\nthird"), want: "::error::first%0Asecond%0D%0Athird"},
		{name: "percent", err: errors.New("100% done %0A"), want: "::error::100%25 done %250A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorAnnotation(tt.err); got != tt.want {
				t.Errorf("errorAnnotation() = %q, want %q", got, tt.want)
			}
		})
	}
}

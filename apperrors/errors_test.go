package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"kinded error", E(NotFound, "missing"), NotFound},
		{"wrapped kinded error", fmt.Errorf("outer: %w", E(Conflict, "taken")), Conflict},
		{"foreign error", errors.New("boom"), Unexpected},
		{"wrap with cause", Wrap(ServiceUnavailable, "down", errors.New("dial tcp")), ServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(E(NotFound, "item not found")); got != "item not found" {
		t.Errorf("MessageOf() = %q, want item not found", got)
	}
	if got := MessageOf(errors.New("raw failure")); got != "raw failure" {
		t.Errorf("MessageOf() = %q, want raw failure", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp")
	err := Wrap(ServiceUnavailable, "weather provider unreachable", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

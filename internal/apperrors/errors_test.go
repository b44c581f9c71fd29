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
		{name: "not found", err: NotFound("topic"), want: KindNotFound},
		{name: "forbidden", err: Forbidden("nope"), want: KindForbidden},
		{name: "inactive", err: Inactive(), want: KindInactive},
		{name: "conflict", err: Conflict("duplicate"), want: KindConflict},
		{name: "validation", err: ValidationMsg("title", "required"), want: KindValidation},
		{name: "unexpected", err: Unexpected(errors.New("boom")), want: KindUnexpected},
		{name: "plain error", err: errors.New("boom"), want: KindUnexpected},
		{name: "wrapped", err: fmt.Errorf("listing topics: %w", NotFound("topic")), want: KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnexpectedKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unexpected(cause)
	if !errors.Is(err, cause) {
		t.Error("Unexpected() should wrap its cause")
	}
	if err.Message != "an unexpected error occurred" {
		t.Errorf("Unexpected() message leaks detail: %q", err.Message)
	}
}

func TestValidationFields(t *testing.T) {
	err := Validation(map[string]string{"end_time": "must be after start_time"})
	if err.Fields["end_time"] == "" {
		t.Error("Validation() should keep field messages")
	}
}

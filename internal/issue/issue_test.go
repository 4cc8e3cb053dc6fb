// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "stage module"},
			want: "failed to stage module",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load project", Resource: "/proj/project.toml"},
			want: "failed to load project: /proj/project.toml",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "load project",
				Resource:  "/proj/project.toml",
				Cause:     errors.New("permission denied"),
			},
			want: "failed to load project: /proj/project.toml: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("root cause")
	err := NewErrorContext().
		WithOperation("resolve dependency").
		Wrap(fmt.Errorf("fetch failed: %w", sentinel)).
		Build()

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestErrorContext_Builder(t *testing.T) {
	t.Parallel()

	cause := errors.New("no descriptor")
	err := NewErrorContext().
		WithOperation("load project").
		WithResource("/proj").
		WithSuggestion("Run 'modkit init' to scaffold a project").
		WithSuggestion("Check you are in the project root").
		Wrap(cause).
		Build()

	if err.Operation != "load project" || err.Resource != "/proj" {
		t.Errorf("built error = %+v", err)
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("len(Suggestions) = %d, want 2", len(err.Suggestions))
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want the wrapped error", err.Cause)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := NewErrorContext().
		WithOperation("resolve dependency").
		WithResource("io.vertx:vertx-core:2.1.6").
		WithSuggestion("Check your network connection").
		Wrap(fmt.Errorf("fetch jar: %w", inner)).
		Build()

	concise := err.Format(false)
	if strings.Contains(concise, "caused by") {
		t.Errorf("Format(false) = %q, want no cause chain", concise)
	}
	if !strings.Contains(concise, "Check your network connection") {
		t.Errorf("Format(false) = %q, want suggestion listed", concise)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "caused by: connection refused") {
		t.Errorf("Format(true) = %q, want unwrapped cause chain", verbose)
	}
}

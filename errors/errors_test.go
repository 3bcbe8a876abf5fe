package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid key", ErrInvalidKey, true},
		{"store closed", ErrStoreClosed, true},
		{"unresolved identity", ErrUnresolvedIdentity, true},
		{"binding terminated", ErrBindingTerminated, true},
		{"sink unavailable", ErrSinkUnavailable, false},
		{"snapshot corrupt", ErrSnapshotCorrupt, false},
		{"wrapped invalid key", fmt.Errorf("outer: %w", ErrInvalidKey), true},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"sink unavailable", ErrSinkUnavailable, true},
		{"invalid key", ErrInvalidKey, false},
		{"snapshot corrupt", ErrSnapshotCorrupt, false},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"snapshot corrupt", ErrSnapshotCorrupt, true},
		{"sink unavailable", ErrSinkUnavailable, false},
		{"binding terminated", ErrBindingTerminated, false},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, true},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsFatal(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil error", nil, ErrorTransient},
		{"invalid key", ErrInvalidKey, ErrorInvalid},
		{"store closed", ErrStoreClosed, ErrorInvalid},
		{"snapshot corrupt", ErrSnapshotCorrupt, ErrorFatal},
		{"sink unavailable", ErrSinkUnavailable, ErrorTransient},
		{"unknown error", fmt.Errorf("something else"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Classify(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	base := fmt.Errorf("boom")

	err := Wrap(base, "store", "Upsert", "validate key")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	expected := "store.Upsert: validate key failed: boom"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should match base via errors.Is")
	}

	if Wrap(nil, "store", "Upsert", "anything") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapClassified(t *testing.T) {
	base := ErrInvalidKey

	tests := []struct {
		name     string
		wrap     func(error, string, string, string) error
		expected ErrorClass
	}{
		{"invalid", WrapInvalid, ErrorInvalid},
		{"transient", WrapTransient, ErrorTransient},
		{"fatal", WrapFatal, ErrorFatal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.wrap(base, "store", "Upsert", "validate key")

			var ce *ClassifiedError
			if !errors.As(err, &ce) {
				t.Fatal("expected ClassifiedError in chain")
			}
			if ce.Class != test.expected {
				t.Errorf("expected class %v, got %v", test.expected, ce.Class)
			}
			if ce.Component != "store" || ce.Operation != "Upsert" {
				t.Errorf("unexpected component/operation: %s/%s", ce.Component, ce.Operation)
			}
			if !errors.Is(err, ErrInvalidKey) {
				t.Error("sentinel should survive classification wrapping")
			}
			if !strings.Contains(err.Error(), "store.Upsert") {
				t.Errorf("message should carry context, got %q", err.Error())
			}

			if test.wrap(nil, "store", "Upsert", "anything") != nil {
				t.Error("wrapping nil should return nil")
			}
		})
	}
}

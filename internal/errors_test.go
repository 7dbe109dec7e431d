package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/exports/chat.txt",
		Op:   "open",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/exports/chat.txt") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("month out of range")
	err := &ParseError{
		Line: 42,
		Text: "13/2/25, 09:00 - Marta: hola",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") {
		t.Errorf("ParseError.Error() should contain 'parse error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "line 42") {
		t.Errorf("ParseError.Error() should contain line number, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ParseError.Unwrap() should return original error")
	}
}

func TestInvariantError(t *testing.T) {
	tests := []struct {
		err  *InvariantError
		want string
	}{
		{&InvariantError{Kind: InvariantEmpty}, "invariant violation [empty]"},
		{&InvariantError{Kind: InvariantOrder, Detail: "message 3 is older"}, "invariant violation [order]: message 3 is older"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	var wrapped error = &InvariantError{Kind: InvariantOrder}
	var target *InvariantError
	if !errors.As(errors.Join(errors.New("analyze"), wrapped), &target) || target.Kind != InvariantOrder {
		t.Error("errors.As should find a wrapped InvariantError")
	}
}

func TestConfigError(t *testing.T) {
	originalErr := errors.New("invalid integer")
	err := &ConfigError{Path: EnvYear, Err: originalErr}

	if !strings.Contains(err.Error(), EnvYear) {
		t.Errorf("ConfigError.Error() should contain path, got: %q", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("ConfigError.Unwrap() should return original error")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{
		Format: "jsonl",
		Path:   "/output/file.jsonl",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "jsonl") {
		t.Errorf("ExportError.Error() should contain format, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}

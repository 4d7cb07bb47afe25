package mongodb

import (
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorPayloadPlain(t *testing.T) {
	payload := ErrorPayload(errors.New("something went wrong"))

	var decoded map[string]string
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if decoded["error"] != "something went wrong" {
		t.Errorf("error = %q", decoded["error"])
	}
	if _, ok := decoded["hint"]; ok {
		t.Error("Plain errors must not carry a hint")
	}
}

func TestErrorPayloadHinted(t *testing.T) {
	hinted := &HintedError{
		Err:  errors.New("unauthorized"),
		Hint: "The getLog command may require administrative privileges.",
	}

	payload := ErrorPayload(hinted)

	var decoded map[string]string
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if decoded["error"] != "unauthorized" {
		t.Errorf("error = %q", decoded["error"])
	}
	if decoded["hint"] != hinted.Hint {
		t.Errorf("hint = %q, want %q", decoded["hint"], hinted.Hint)
	}
}

func TestHintedErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	hinted := &HintedError{Err: inner, Hint: "try again"}

	if !errors.Is(hinted, inner) {
		t.Error("HintedError should unwrap to the inner error")
	}
}

func TestPolicyErrorMessage(t *testing.T) {
	err := &PolicyError{Code: PolicyCodeEmptyFilter, Message: "rejected"}
	if err.Error() != "rejected" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestConfigErrorIncludesUsage(t *testing.T) {
	err := &ConfigError{Message: "missing variable", Usage: "Usage: set it"}
	got := err.Error()
	if got != "missing variable\n\nUsage: set it" {
		t.Errorf("Error() = %q", got)
	}

	bare := &ConfigError{Message: "missing variable"}
	if bare.Error() != "missing variable" {
		t.Errorf("Error() without usage = %q", bare.Error())
	}
}

func TestIsUnsupportedOperation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"command not found code", mongo.CommandError{Code: 59, Message: "no such cmd: aggregate"}, true},
		{"unrecognized stage code 40324", mongo.CommandError{Code: 40324, Message: "Unrecognized pipeline stage name: '$sample'"}, true},
		{"unrecognized stage code 16436", mongo.CommandError{Code: 16436, Message: "Unrecognized pipeline stage name"}, true},
		{"message match without code", mongo.CommandError{Code: 8000, Message: "no such command: count"}, true},
		{"other command error", mongo.CommandError{Code: 13, Message: "unauthorized"}, false},
		{"plain error with message", errors.New("no such command: getLog"), true},
		{"plain unrelated error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUnsupportedOperation(tt.err); got != tt.want {
				t.Errorf("isUnsupportedOperation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

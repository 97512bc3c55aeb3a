package chat

import (
	"errors"
	"testing"
)

func TestDefaultResponder(t *testing.T) {
	t.Parallel()

	responder := Default()

	tests := []struct {
		name    string
		message string
		rule    string
	}{
		{name: "growth", message: "What is the GROWTH outlook?", rule: "growth"},
		{name: "demand", message: "which roles are in demand", rule: "demand"},
		{name: "salary", message: "Salary for AI engineers?", rule: "salary"},
		{name: "skills", message: "what skills should I learn", rule: "skills"},
		{name: "first rule wins", message: "salary growth and demand", rule: "growth"},
		{name: "fallback", message: "hello there", rule: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reply, err := responder.Respond(tt.message)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply.Rule != tt.rule {
				t.Fatalf("expected rule %q, got %q", tt.rule, reply.Rule)
			}
			if tt.rule == "" && reply.Text != DefaultFallback {
				t.Fatalf("expected fallback text, got %q", reply.Text)
			}
		})
	}
}

func TestRespondEmptyMessage(t *testing.T) {
	t.Parallel()

	for _, msg := range []string{"", "   \n"} {
		if _, err := Default().Respond(msg); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage for %q, got %v", msg, err)
		}
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	rules, err := FromConfig([]RuleConfig{
		{Name: "remote", Keywords: []string{"Remote", "WFH"}, Response: "Remote roles are common in software."},
		{Keywords: []string{"visa"}, Response: "Check sponsorship policies."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	responder := New(rules, "custom fallback")

	reply, err := responder.Respond("Any wfh jobs?")
	if err != nil || reply.Rule != "remote" {
		t.Fatalf("expected remote rule, got %+v, err=%v", reply, err)
	}

	reply, err = responder.Respond("visa questions")
	if err != nil || reply.Rule != "rule-1" {
		t.Fatalf("expected generated rule name, got %+v, err=%v", reply, err)
	}

	reply, err = responder.Respond("salary?")
	if err != nil || reply.Text != "custom fallback" {
		t.Fatalf("expected custom fallback, got %+v, err=%v", reply, err)
	}

	if _, err := FromConfig([]RuleConfig{{Name: "broken", Keywords: []string{"x"}}}); err == nil {
		t.Fatalf("expected error for missing response")
	}
	if _, err := FromConfig([]RuleConfig{{Name: "broken", Response: "x"}}); err == nil {
		t.Fatalf("expected error for missing keywords")
	}
}

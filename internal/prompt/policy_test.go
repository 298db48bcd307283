package prompt

import (
	"strings"
	"testing"
)

func TestAssembleIsDeterministic(t *testing.T) {
	policy := Default()
	first := policy.Assemble("How do I reset my password?")
	second := policy.Assemble("How do I reset my password?")
	if first != second {
		t.Errorf("Assemble() is not byte-identical across calls")
	}
}

func TestAssembleDirectiveOrder(t *testing.T) {
	policy := Default()
	out := policy.Assemble("anything")
	lines := strings.Split(out, "\n")
	if len(lines) != len(systemDirectives)+1 {
		t.Fatalf("Assemble() produced %d lines, want %d", len(lines), len(systemDirectives)+1)
	}
	for i, directive := range systemDirectives {
		want := directive.Role + ": " + directive.Text
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestAssembleQuestionSubstitution(t *testing.T) {
	policy := Default()
	out := policy.Assemble("the appeal process")
	last := out[strings.LastIndex(out, "\n")+1:]
	if last != "user: Please provide information on the appeal process" {
		t.Errorf("user directive = %q", last)
	}
}

func TestPolicyVersion(t *testing.T) {
	if Default().Version() != Version {
		t.Errorf("Version() = %q, want %q", Default().Version(), Version)
	}
}

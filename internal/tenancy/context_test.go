package tenancy

import (
	"strings"
	"testing"
)

func TestNewContextIsTotal(t *testing.T) {
	// Construction never fails; the empty tenant is rejected later, at the
	// first data operation.
	tc := NewContext("", "")
	if !tc.System() {
		t.Error("empty tenant context must report System()")
	}

	tc = NewContext("tenant-a", "user-1")
	if tc.System() {
		t.Error("tenant-bound context must not report System()")
	}
	if tc.TenantID != "tenant-a" || tc.ActorID != "user-1" {
		t.Errorf("unexpected context: %+v", tc)
	}
}

func TestContextValidationErrorMessage(t *testing.T) {
	err := &ContextValidationError{Op: "find_many", Target: "conversations"}
	msg := err.Error()
	if !strings.Contains(msg, "find_many") || !strings.Contains(msg, "conversations") {
		t.Errorf("error must name the operation and target: %q", msg)
	}

	bare := &ContextValidationError{}
	if bare.Error() == "" {
		t.Error("bare error must still produce a message")
	}
}

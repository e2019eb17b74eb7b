package utility

import (
	"testing"

	"github.com/google/uuid"
)

func TestGetRunID_Stable(t *testing.T) {
	a := GetRunID()
	b := GetRunID()

	if a == uuid.Nil {
		t.Fatal("run id is nil")
	}
	if a != b {
		t.Errorf("run id changed between calls: %s vs %s", a, b)
	}
}

func TestResetRunID(t *testing.T) {
	before := GetRunID()
	fresh := ResetRunID()

	if fresh == before {
		t.Error("reset did not produce a new run id")
	}
	if got := GetRunID(); got != fresh {
		t.Errorf("GetRunID = %s; want %s after reset", got, fresh)
	}
}

package data

import (
	"testing"
	"time"
)

func TestSchedulePoll(t *testing.T) {
	cmd := SchedulePoll(time.Millisecond, 7)
	if cmd == nil {
		t.Fatal("SchedulePoll returned nil cmd")
	}
	msg := cmd()
	poll, ok := msg.(PollMsg)
	if !ok {
		t.Fatalf("got %T, want PollMsg", msg)
	}
	if poll.Gen != 7 {
		t.Errorf("Gen = %d, want 7", poll.Gen)
	}
	if poll.At.IsZero() {
		t.Error("At is zero")
	}
}

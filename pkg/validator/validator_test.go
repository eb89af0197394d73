package validator

import (
	"errors"
	"testing"
)

type roomForm struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gt=0"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestMessages(t *testing.T) {
	v := New()

	if err := v.Validate(roomForm{Name: "A", Capacity: 4}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	err := v.Validate(roomForm{Email: "nope"})
	msgs := Messages(err)
	want := []string{"name is required", "capacity must be greater than 0", "email must be a valid email"}
	if len(msgs) != len(want) {
		t.Fatalf("messages = %v", msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Fatalf("message %d = %q, want %q", i, msgs[i], want[i])
		}
	}
}

func TestMessagePlainError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Fatalf("Message = %q", got)
	}
	if Messages(nil) != nil {
		t.Fatal("nil error must give no messages")
	}
}

package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"message", `{"message":"Room is already booked"}`, "Room is already booked"},
		{"errors list", `{"errors":["Title is required","Agenda is required"]}`, "Title is required; Agenda is required"},
		{"errors by field", `{"title":"One or more validation errors occurred.","errors":{"Title":["Title is required"],"Agenda":["Too long"]}}`, "Too long; Title is required"},
		{"identity array", `[{"code":"DuplicateEmail","description":"Email 'a@b.c' is already taken."}]`, "Email 'a@b.c' is already taken."},
		{"plain text", "Bad things", "Bad things"},
		{"title only", `{"title":"Unauthorized"}`, "Unauthorized"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractMessage([]byte(tc.body)); got != tc.want {
				t.Fatalf("ExtractMessage(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestErrHTTPStatusFallsBackToStatusText(t *testing.T) {
	err := ErrHTTPStatus(http.MethodGet, "/Meeting/1", http.StatusNotFound, nil)
	if err.Message != "Not Found" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if StatusOf(err) != http.StatusNotFound {
		t.Fatalf("StatusOf = %d", StatusOf(err))
	}
	if IsNetwork(err) {
		t.Fatal("http status error reported as network error")
	}
}

func TestIsNetworkThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load meeting: %w", ErrNetwork(http.MethodGet, "/Meeting/1", fmt.Errorf("connection refused")))
	if !IsNetwork(err) {
		t.Fatal("expected wrapped network error to be detected")
	}
	if StatusOf(err) != 0 {
		t.Fatal("network error must not carry an HTTP status")
	}
}

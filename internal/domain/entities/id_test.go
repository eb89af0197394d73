package entities

import (
	"encoding/json"
	"testing"
)

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		Meeting ID `json:"meeting"`
		User    ID `json:"user"`
		Missing ID `json:"missing"`
	}
	body := `{"meeting": 42, "user": "6f1c2a9e-0d7b-4a51-9c1e-2b9f8c1d3e4f", "missing": null}`
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Meeting != "42" || v.User != "6f1c2a9e-0d7b-4a51-9c1e-2b9f8c1d3e4f" || !v.Missing.IsZero() {
		t.Fatalf("unexpected ids: %+v", v)
	}
}

func TestIDMarshalKeepsNumericKind(t *testing.T) {
	cases := map[ID]string{
		"42":  `42`,
		"007": `"007"`,
		"abc": `"abc"`,
		"-3":  `-3`,
		"":    `""`,
	}
	for id, want := range cases {
		got, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %q: %v", id, err)
		}
		if string(got) != want {
			t.Fatalf("marshal %q = %s, want %s", id, got, want)
		}
	}
}

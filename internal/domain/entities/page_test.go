package entities

import (
	"encoding/json"
	"testing"
)

func TestPageDecodesBareArray(t *testing.T) {
	var p Page[Meeting]
	if err := json.Unmarshal([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"}]`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(p.Items) != 2 || p.Items[1].Title != "b" {
		t.Fatalf("items = %+v", p.Items)
	}
}

func TestPageDecodesEnvelopes(t *testing.T) {
	for _, body := range []string{
		`{"items":[{"id":1}],"page":2,"pageSize":5,"totalCount":6}`,
		`{"data":[{"id":1}],"page":2,"pageSize":5,"totalCount":6}`,
	} {
		var p Page[Meeting]
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", body, err)
		}
		if len(p.Items) != 1 || p.Page != 2 || p.TotalCount != 6 {
			t.Fatalf("decoded %s as %+v", body, p)
		}
		if p.HasNext(5) {
			t.Fatalf("page 2 of 6 items with size 5 has no next page")
		}
	}
}

func TestPageHasNextByLength(t *testing.T) {
	full := Page[Meeting]{Items: make([]Meeting, 5)}
	short := Page[Meeting]{Items: make([]Meeting, 4)}
	if !full.HasNext(5) {
		t.Fatal("a full page may have a successor")
	}
	if short.HasNext(5) {
		t.Fatal("a short page is the last page")
	}
}

package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/aseeltahaa/smartspace/errors"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestBearerOnlyWhenSignedIn(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct{ OK bool }
	if err := New(srv.URL, staticTokens("")).Get(context.Background(), "/ping", nil, &out); err != nil {
		t.Fatalf("anonymous get: %v", err)
	}
	if err := New(srv.URL, staticTokens("abc")).Get(context.Background(), "/ping", nil, &out); err != nil {
		t.Fatalf("signed-in get: %v", err)
	}
	if !out.OK {
		t.Fatal("body not decoded")
	}

	if got[0] != "" {
		t.Fatalf("anonymous request carried %q", got[0])
	}
	if got[1] != "Bearer abc" {
		t.Fatalf("authorization = %q", got[1])
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Room is already booked"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, nil).Post(context.Background(), "/Meeting", map[string]string{"title": "x"}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.StatusOf(err) != http.StatusConflict {
		t.Fatalf("status = %d", apperrors.StatusOf(err))
	}
	if !strings.Contains(err.Error(), "Room is already booked") {
		t.Fatalf("message lost: %v", err)
	}
}

func TestNetworkErrorIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, nil).Get(context.Background(), "/ping", nil, nil)
	if !apperrors.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := New(srv.URL, nil).Get(context.Background(), "/x", nil, &out)
	if err == nil || !strings.Contains(err.Error(), "DECODE_FAILED") {
		t.Fatalf("expected decode failure, got %v", err)
	}
}

func TestEmptyBodyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var out map[string]interface{}
	if err := New(srv.URL, nil).Put(context.Background(), "/x", struct{}{}, &out); err != nil {
		t.Fatalf("empty body: %v", err)
	}
}

func TestSendMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse: %v", err)
			return
		}
		if r.FormValue("description") != "Write report" {
			t.Errorf("field = %q", r.FormValue("description"))
		}
		f, hdr, err := r.FormFile("files")
		if err != nil {
			t.Errorf("file: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if hdr.Filename != "a.txt" || string(b) != "hello" {
			t.Errorf("file = %s %q", hdr.Filename, b)
		}
		_, _ = w.Write([]byte(`["a.txt"]`))
	}))
	defer srv.Close()

	var names []string
	err := New(srv.URL, nil).SendMultipart(context.Background(), http.MethodPost, "/upload",
		map[string]string{"description": "Write report"},
		[]FilePart{{Field: "files", Name: "a.txt", ContentType: "text/plain", Content: strings.NewReader("hello")}},
		&names)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	if len(names) != 1 || names[0] != "a.txt" {
		t.Fatalf("names = %v", names)
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	ct, err := New(srv.URL+"/", nil).Download(context.Background(), "files/a.pdf", &buf)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if ct != "application/pdf" || buf.String() != "%PDF" {
		t.Fatalf("got %q %q", ct, buf.String())
	}
}

func TestPathEscape(t *testing.T) {
	if got := PathEscape("Meeting", "7", "a b.pdf"); got != "/Meeting/7/a%20b.pdf" {
		t.Fatalf("PathEscape = %q", got)
	}
}

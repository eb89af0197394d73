package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/apiclient"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/cache"
)

func TestStoredTokenFollowsOtherProcessLogins(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	defer store.Close()

	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// The worker starts before anyone signed in.
	worker := apiclient.New(srv.URL, NewStoredToken(store, nil))
	apiSide := NewSessionManager(store, nil)

	deliver := func() {
		t.Helper()
		var out map[string]interface{}
		if err := worker.Get(ctx, "/Notifications", nil, &out); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}

	deliver()
	if _, err := apiSide.Login(ctx, "tok-a", &entities.User{ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	deliver()
	if _, err := apiSide.Login(ctx, "tok-b", &entities.User{ID: "u2"}); err != nil {
		t.Fatal(err)
	}
	deliver()
	if err := apiSide.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	deliver()

	want := []string{"", "Bearer tok-a", "Bearer tok-b", ""}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != len(want) {
		t.Fatalf("requests = %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("request %d Authorization = %q, want %q", i, seen[i], want[i])
		}
	}
}

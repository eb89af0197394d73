package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/aseeltahaa/smartspace/errors"
)

func TestJobEndSingleAttemptByDefault(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "notification:send", 0, Options{})
	defer cancel()

	calls := 0
	attempts, err := JobEnd(ctx, func(context.Context) error {
		calls++
		return apperrors.ErrNetwork(http.MethodPost, "/Notifications", fmt.Errorf("connection refused"))
	}, time.Millisecond)
	if err == nil {
		t.Fatal("expected failure")
	}
	if calls != 1 || attempts != 1 {
		t.Fatalf("calls=%d attempts=%d, want 1", calls, attempts)
	}
}

func TestJobEndRetriesRetryableErrors(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "notification:send", 1, Options{MaxRetries: 2})
	defer cancel()

	calls := 0
	attempts, err := JobEnd(ctx, func(ctx context.Context) error {
		if GetRetryAttempt(ctx) != calls {
			t.Errorf("retry attempt %d on call %d", GetRetryAttempt(ctx), calls)
		}
		calls++
		if calls < 3 {
			return apperrors.ErrHTTPStatus(http.MethodPost, "/Notifications", http.StatusServiceUnavailable, nil)
		}
		return nil
	}, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d", attempts)
	}
}

func TestJobEndStopsOnPermanentError(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "notification:send", 1, Options{MaxRetries: 5})
	defer cancel()

	calls := 0
	_, err := JobEnd(ctx, func(context.Context) error {
		calls++
		return apperrors.ErrHTTPStatus(http.MethodPost, "/Notifications", http.StatusBadRequest, []byte(`{"message":"bad"}`))
	}, time.Millisecond)
	if err == nil || calls != 1 {
		t.Fatalf("calls=%d err=%v", calls, err)
	}
	if apperrors.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestJobEndRecoversPanic(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "notification:send", 0, Options{})
	defer cancel()

	_, err := JobEnd(ctx, func(context.Context) error { panic("boom") }, time.Millisecond)
	if err == nil {
		t.Fatal("expected panic to surface as error")
	}
}

func TestMetadata(t *testing.T) {
	id := uuid.New()
	ctx, cancel := JobBegin(context.Background(), id, "notification:send", 3, Options{MaxRetries: 2})
	defer cancel()

	md := GetJobMetadata(ctx)
	if md.JobID != id || md.JobType != "notification:send" || md.WorkerID != 3 || md.MaxRetries != 2 {
		t.Fatalf("metadata = %+v", md)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("job context must carry a deadline")
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("plain"), false},
		{context.DeadlineExceeded, true},
		{apperrors.ErrNetwork("GET", "/x", errors.New("reset")), true},
		{apperrors.ErrHTTPStatus("GET", "/x", 429, nil), true},
		{apperrors.ErrHTTPStatus("GET", "/x", 502, nil), true},
		{apperrors.ErrHTTPStatus("GET", "/x", 404, nil), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Errorf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

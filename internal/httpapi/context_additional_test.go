package httpapi

import (
	"context"
	"errors"
	"testing"
	"time"
)

type ctxKey struct{}

func TestSetBaseContext_NilResetsToBackground(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	SetBaseContext(ctx)
	// nolint:staticcheck // SA1012: this test intentionally passes nil to verify fallback behavior
	SetBaseContext(nil)
	if serverBaseCtx != context.Background() {
		t.Fatal("expected Background after nil")
	}
}

func TestJoinContexts_CancelsWhenBaseDone(t *testing.T) {
	base, bc := context.WithCancel(context.Background())
	req, rc := context.WithCancel(context.Background())
	defer rc()
	j, cancelJ := joinContexts(base, req)
	defer cancelJ()
	bc()
	select {
	case <-j.Done():
		if !errors.Is(j.Err(), context.Canceled) {
			t.Fatalf("err=%v", j.Err())
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("joined context did not cancel when base canceled")
	}
}

func TestJoinContexts_CancelsWhenRequestDone(t *testing.T) {
	base, bc := context.WithCancel(context.Background())
	defer bc()
	req, rc := context.WithCancel(context.Background())
	j, cancelJ := joinContexts(base, req)
	defer cancelJ()
	rc()
	select {
	case <-j.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("joined context did not cancel when request canceled")
	}
}

func TestJoinContexts_KeepsRequestValues(t *testing.T) {
	req := context.WithValue(context.Background(), ctxKey{}, "rid-1")
	j, cancelJ := joinContexts(context.Background(), req)
	defer cancelJ()
	if got, _ := j.Value(ctxKey{}).(string); got != "rid-1" {
		t.Fatalf("value lost: %q", got)
	}
	cancelJ()
	if j.Err() == nil {
		t.Fatal("cancel func must cancel the joined context")
	}
}

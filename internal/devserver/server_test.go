package devserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/roster/pkg/client"
)

func TestServeAndShutdown(t *testing.T) {
	srv, err := Listen("127.0.0.1:0", NewStore(SchoolDomain, SeedActivities()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(srv.URL(), "http://127.0.0.1:") {
		t.Errorf("URL = %q", srv.URL())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	c := client.New(srv.URL())
	r, err := c.ListActivities(context.Background())
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if r.Len() != len(SeedActivities()) {
		t.Errorf("got %d activities, want %d", r.Len(), len(SeedActivities()))
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestListenBadAddress(t *testing.T) {
	if _, err := Listen("256.0.0.1:bad", NewStore(SchoolDomain, nil)); err == nil {
		t.Error("expected an error for an invalid address")
	}
}

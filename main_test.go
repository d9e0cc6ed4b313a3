package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/obaflips/court-reads/internal/lineup"
	"github.com/obaflips/court-reads/internal/logger"
	"github.com/obaflips/court-reads/internal/nbastats"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func TestSampleShelfSeriesReachThePool(t *testing.T) {
	books, characters, players, series := sampleLibrary()
	if len(series) == 0 {
		t.Fatal("sample shelf has no series")
	}

	provider := nbastats.NewProvider(nbastats.NewMemoryCache(nbastats.DefaultTTL))
	resolved := provider.ResolveAll(context.Background(), players)
	pool := lineup.BuildPool(books, characters, resolved, series)

	if len(pool) != len(characters) {
		t.Fatalf("pool has %d characters, want %d", len(pool), len(characters))
	}

	seriesNames := map[string]string{}
	for _, ec := range pool {
		seriesNames[ec.Name] = ec.SeriesName
	}
	// Two Mistborn books give the Storyteller a series to stack.
	if seriesNames["Vin"] != "Mistborn" || seriesNames["Sazed"] != "Mistborn" {
		t.Errorf("Mistborn series not linked: Vin=%q Sazed=%q",
			seriesNames["Vin"], seriesNames["Sazed"])
	}
	if seriesNames["Kaladin"] != "The Stormlight Archive" {
		t.Errorf("Kaladin series = %q, want The Stormlight Archive", seriesNames["Kaladin"])
	}
	if seriesNames["Kvothe"] != "" {
		t.Errorf("standalone book picked up series %q", seriesNames["Kvothe"])
	}
}

func TestSampleShelfStatsResolveFromFallback(t *testing.T) {
	_, _, players, _ := sampleLibrary()

	provider := nbastats.NewProvider(nbastats.NewMemoryCache(nbastats.DefaultTTL))
	resolved := provider.ResolveAll(context.Background(), players)

	for _, rp := range resolved {
		if rp.Stats == nil {
			t.Fatalf("%s resolved with nil stats", rp.Name)
		}
		// Every shelf comp is a known name; none should land on the
		// generic default line.
		if rp.Stats.PPG == 15 && rp.Stats.RPG == 5 && rp.Stats.APG == 3 {
			t.Errorf("%s fell through to default stats", rp.Name)
		}
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v after cancel, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after context cancel")
	}
}

func TestServeReportsListenFailure(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NewServeMux()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("serve returned nil for an unlistenable address")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not surface the listen error")
	}
}

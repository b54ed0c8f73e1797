package labels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgrid/deckgrid/pkg/cache"
	"github.com/deckgrid/deckgrid/pkg/errors"
)

func TestLocalDifferenceLabel(t *testing.T) {
	tests := []struct {
		name      string
		req       DifferenceRequest
		primary   string
		secondary string
	}{
		{
			name:      "reduction with plain amount",
			req:       DifferenceRequest{StartValue: 45, EndValue: 17, Currency: "€", Direction: DirectionReduction},
			primary:   "€28 savings",
			secondary: "(62% reduction)",
		},
		{
			name:      "thousands magnitude",
			req:       DifferenceRequest{StartValue: 90000, EndValue: 62000, Currency: "€", Direction: DirectionReduction},
			primary:   "€28.0K savings",
			secondary: "(31% reduction)",
		},
		{
			name:      "millions magnitude with increase",
			req:       DifferenceRequest{StartValue: 2000000, EndValue: 3500000, Currency: "$", Direction: DirectionIncrease},
			primary:   "$1.5M increase",
			secondary: "(75% increase)",
		},
		{
			name:      "zero start avoids division",
			req:       DifferenceRequest{StartValue: 0, EndValue: 40, Currency: "€", Direction: DirectionChange},
			primary:   "€40 change",
			secondary: "(0% change)",
		},
		{
			name:      "default currency",
			req:       DifferenceRequest{StartValue: 10, EndValue: 5, Direction: DirectionReduction},
			primary:   "€5 savings",
			secondary: "(50% reduction)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Local{}.DifferenceLabel(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("DifferenceLabel: %v", err)
			}
			if got.Primary != tt.primary || got.Secondary != tt.secondary {
				t.Errorf("got %q / %q, want %q / %q", got.Primary, got.Secondary, tt.primary, tt.secondary)
			}
		})
	}
}

func TestLocalCAGRLabel(t *testing.T) {
	tests := []struct {
		name string
		req  CAGRRequest
		want string
	}{
		{"positive growth", CAGRRequest{Series: []float64{22, 35, 42, 55, 65}, Rate: 0.31}, "4-Year CAGR: +31%"},
		{"negative growth", CAGRRequest{Series: []float64{100, 90, 80}, Rate: -0.11}, "2-Year CAGR: -11%"},
		{"zero is positive", CAGRRequest{Series: []float64{50, 50}, Rate: 0}, "1-Year CAGR: +0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Local{}.CAGRLabel(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("CAGRLabel: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoteEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/labels" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"primary":"€28 savings","secondary":"(62% reduction)","label":"4-Year CAGR: +31%"}`))
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL, nil)
	diff, err := remote.DifferenceLabel(context.Background(), DifferenceRequest{StartValue: 45, EndValue: 17})
	require.NoError(t, err)
	assert.Equal(t, "€28 savings", diff.Primary)
	assert.Equal(t, "(62% reduction)", diff.Secondary)

	cagr, err := remote.CAGRLabel(context.Background(), CAGRRequest{Series: []float64{1, 2}, Rate: 0.31})
	require.NoError(t, err)
	assert.Equal(t, "4-Year CAGR: +31%", cagr)
}

func TestRemoteEngineStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		code   errors.Code
	}{
		{http.StatusNotFound, errors.ErrCodeNotFound},
		{http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		remote := NewRemote(srv.URL, nil)
		_, err := remote.CAGRLabel(context.Background(), CAGRRequest{})
		if !errors.Is(err, tt.code) {
			t.Errorf("status %d: want %s, got %v", tt.status, tt.code, err)
		}
		srv.Close()
	}
}

func TestCachedEngineReplaysFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"primary":"€28 savings","secondary":"(62% reduction)","label":"2-Year CAGR: +22%"}`))
	}))
	defer srv.Close()

	store, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	engine := WithCache(NewRemote(srv.URL, nil), store, nil)

	req := DifferenceRequest{StartValue: 45, EndValue: 17, Currency: "€", Direction: DirectionReduction}
	first, err := engine.DifferenceLabel(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	second, err := engine.DifferenceLabel(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "repeat request must be served from cache")
	assert.Equal(t, first, second)

	// A different payload is a miss.
	_, err = engine.DifferenceLabel(context.Background(), DifferenceRequest{
		StartValue: 90, EndValue: 17, Currency: "€", Direction: DirectionReduction,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, hits)

	cagrReq := CAGRRequest{Series: []float64{100, 150}, Rate: 0.22}
	cagr, err := engine.CAGRLabel(context.Background(), cagrReq)
	require.NoError(t, err)
	assert.Equal(t, 3, hits)

	again, err := engine.CAGRLabel(context.Background(), cagrReq)
	require.NoError(t, err)
	assert.Equal(t, 3, hits, "repeat request must be served from cache")
	assert.Equal(t, cagr, again)
}

type failingEngine struct{}

func (failingEngine) DifferenceLabel(context.Context, DifferenceRequest) (DifferenceLabel, error) {
	return DifferenceLabel{}, errors.New(errors.ErrCodeNetwork, "service unreachable")
}

func (failingEngine) CAGRLabel(context.Context, CAGRRequest) (string, error) {
	return "", errors.New(errors.ErrCodeNetwork, "service unreachable")
}

func TestFallbackRecoversLocally(t *testing.T) {
	engine := WithFallback(failingEngine{}, Local{}, nil)

	diff, err := engine.DifferenceLabel(context.Background(), DifferenceRequest{
		StartValue: 45, EndValue: 17, Currency: "€", Direction: DirectionReduction,
	})
	require.NoError(t, err, "fallback must recover remote failures")
	assert.Equal(t, "€28 savings", diff.Primary)

	cagr, err := engine.CAGRLabel(context.Background(), CAGRRequest{Series: []float64{1, 2, 3}, Rate: 0.1})
	require.NoError(t, err, "fallback must recover remote failures")
	assert.Equal(t, "2-Year CAGR: +10%", cagr)
}

func TestFallbackPrefersPrimary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"label":"remote label"}`))
	}))
	defer srv.Close()

	engine := WithFallback(NewRemote(srv.URL, nil), Local{}, nil)
	got, err := engine.CAGRLabel(context.Background(), CAGRRequest{Series: []float64{1, 2}, Rate: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "remote label", got, "primary engine result must win")
}

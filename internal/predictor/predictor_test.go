package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 7, 15, 14, 30, 0, 0, time.UTC)

func testTask() domain.ConstructionTask {
	return domain.ConstructionTask{
		ID:           "task-1",
		Category:     "건축물",
		Subcategory:  "공동주택",
		Process:      "welding",
		ProgressRate: 40,
		Workers:      12,
		StartTime:    testStart,
	}
}

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.TimeoutMs = 1000
	return cfg
}

// stubModel returns canned results and counts calls.
type stubModel struct {
	features FeatureSet
	err      error
	calls    atomic.Int32
	last     Input
}

func (m *stubModel) Predict(_ context.Context, in Input) (FeatureSet, error) {
	m.calls.Add(1)
	m.last = in
	return m.features, m.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func TestHTTPModel_RiskFractionResolvesTo62(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "2025-07-15 14:30:00", in["time"])
		assert.Equal(t, "건축물/공동주택", in["constructionType"])
		assert.Equal(t, "10_19", in["workerCount"])
		assert.Equal(t, "sunny", in["weather"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":{"risk":0.62,"confidence":0.9}}`))
	}))
	defer srv.Close()

	p := New(NewHTTPModel(srv.URL, time.Second), testConfig(srv.URL), nil, nil)
	score, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())

	require.NoError(t, err)
	assert.Equal(t, 62, score)
}

func TestHTTPModel_ServerErrorIsInferenceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New(NewHTTPModel(srv.URL, time.Second), testConfig(srv.URL), nil, nil)
	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())

	assert.ErrorIs(t, err, ErrInferenceFailed)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPModel_MalformedBodyIsInferenceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":{"risk":"high"}}`))
	}))
	defer srv.Close()

	p := New(NewHTTPModel(srv.URL, time.Second), testConfig(srv.URL), nil, nil)
	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	assert.ErrorIs(t, err, ErrInferenceFailed)
}

func TestHTTPModel_UnreachableIsUnavailable(t *testing.T) {
	endpoint := "http://127.0.0.1:1" // nothing listening
	p := New(NewHTTPModel(endpoint, time.Second), testConfig(endpoint), nil, nil)

	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestHTTPModel_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"features":{"risk":0.5}}`))
	}))
	defer srv.Close()

	p := New(NewHTTPModel(srv.URL, 50*time.Millisecond), testConfig(srv.URL), nil, nil)
	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoad(t *testing.T) {
	t.Run("no endpoint", func(t *testing.T) {
		_, err := Load(context.Background(), DefaultConfig())
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		m, err := Load(context.Background(), testConfig(srv.URL+"/"))
		require.NoError(t, err)
		assert.NotNil(t, m)
	})

	t.Run("unhealthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := Load(context.Background(), testConfig(srv.URL))
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})
}

func TestScore_NilModel(t *testing.T) {
	obs := &recordingObserver{}
	p := New(nil, DefaultConfig(), obs, nil)

	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.False(t, p.Available())

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "UNAVAILABLE", obs.events[0].ErrorCode)
}

func TestScore_ScoreNotFoundCarriesAvailableNames(t *testing.T) {
	model := &stubModel{features: FeatureSet{"confidence": 0.8, "class": 2}}
	p := New(model, DefaultConfig(), nil, nil)

	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	require.ErrorIs(t, err, ErrScoreNotFound)

	var notFound *ScoreNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []string{"class", "confidence"}, notFound.Available)
	assert.Contains(t, err.Error(), "class, confidence")
}

func TestScore_BreakerOpensAfterConsecutiveConnectionFailures(t *testing.T) {
	model := &stubModel{err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}}
	cfg := DefaultConfig()
	cfg.BreakerFailures = 2
	cfg.BreakerTimeout = time.Minute
	p := New(model, cfg, nil, nil)

	for i := 0; i < 2; i++ {
		_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
		assert.ErrorIs(t, err, ErrModelUnavailable)
	}
	assert.False(t, p.Available())

	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Equal(t, int32(2), model.calls.Load(), "an open breaker short-circuits the model")
}

func TestScore_InferenceFailuresNeverOpenBreaker(t *testing.T) {
	model := &stubModel{err: errors.New("tensor shape mismatch")}
	cfg := DefaultConfig()
	cfg.BreakerFailures = 2
	cfg.BreakerTimeout = time.Minute
	p := New(model, cfg, nil, nil)

	for i := 0; i < 5; i++ {
		_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
		assert.ErrorIs(t, err, ErrInferenceFailed)
		assert.NotErrorIs(t, err, ErrModelUnavailable)
	}
	assert.True(t, p.Available())
	assert.Equal(t, int32(5), model.calls.Load())
}

func TestScore_NoRetry(t *testing.T) {
	model := &stubModel{err: errors.New("tensor shape mismatch")}
	p := New(model, DefaultConfig(), nil, nil)

	_, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	assert.ErrorIs(t, err, ErrInferenceFailed)
	assert.Equal(t, int32(1), model.calls.Load())
}

func TestScore_ObserverSeesSuccess(t *testing.T) {
	obs := &recordingObserver{}
	model := &stubModel{features: FeatureSet{"risk_index": 73.6}}
	p := New(model, DefaultConfig(), obs, nil)

	score, err := p.Score(context.Background(), testTask(), domain.DefaultEnvironment())
	require.NoError(t, err)
	assert.Equal(t, 74, score)

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 74, obs.events[0].Score)
	assert.Equal(t, "task-1", obs.events[0].TaskID)
}

func TestResolveScore_PriorityOrder(t *testing.T) {
	cases := []struct {
		name     string
		features FeatureSet
		want     float64
	}{
		{"risk_index wins", FeatureSet{"risk_index": 40, "risk": 0.9, "result": 10}, 40},
		{"risk before prediction", FeatureSet{"prediction": 55, "risk": 0.62}, 0.62},
		{"prediction", FeatureSet{"prediction": 55, "output": 1}, 55},
		{"output", FeatureSet{"output": 33, "result": 1}, 33},
		{"result", FeatureSet{"result": 12}, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveScore(tc.features, DefaultScoreKeys)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveScore_EmptyFeatures(t *testing.T) {
	_, err := ResolveScore(FeatureSet{}, DefaultScoreKeys)
	assert.ErrorIs(t, err, ErrScoreNotFound)
	assert.Contains(t, err.Error(), "no features")
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  float64
		want int
	}{
		{0.62, 62},
		{0, 0},
		{1, 100},
		{0.004, 0},
		{62.4, 62},
		{62.5, 63},
		{1.2, 1},
		{150, 100},
		{-3, 0},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.raw)
		require.NoError(t, err, "raw=%v", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%v", tc.raw)
	}
}

func TestNormalize_NonFinite(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, ErrInferenceFailed, "raw=%v", raw)
	}
}

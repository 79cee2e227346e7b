package predictor

import "time"

// WorkerEncoding selects how the crew size is sent to the model.
type WorkerEncoding string

const (
	EncodeWorkersInt    WorkerEncoding = "int"
	EncodeWorkersBucket WorkerEncoding = "bucket"
)

// WeatherVocabulary selects the weather strings the deployed model expects.
type WeatherVocabulary string

const (
	// VocabModel uses the labels the bundled model was trained with
	// (sunny, cloudy, foggy, windy, rainy, snowy).
	VocabModel WeatherVocabulary = "model"
	// VocabCanonical sends the canonical names unchanged.
	VocabCanonical WeatherVocabulary = "canonical"
)

// DefaultScoreKeys is the priority order used to find the score in the
// model's output features.
var DefaultScoreKeys = []string{"risk_index", "risk", "prediction", "output", "result"}

// Config holds all configuration for the predictor.
type Config struct {
	Endpoint       string
	TimeoutMs      int
	WorkerEncoding WorkerEncoding
	WeatherVocab   WeatherVocabulary
	ScoreKeys      []string

	// Breaker settings. The breaker opens after BreakerFailures consecutive
	// failures and stays open for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns a Config with no endpoint. A predictor built from it
// reports ErrModelUnavailable until an endpoint is configured.
func DefaultConfig() Config {
	return Config{
		Endpoint:        "",
		TimeoutMs:       5000,
		WorkerEncoding:  EncodeWorkersBucket,
		WeatherVocab:    VocabModel,
		ScoreKeys:       DefaultScoreKeys,
		BreakerFailures: 3,
		BreakerTimeout:  30 * time.Second,
	}
}

// Timeout returns the per-call timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c Config) scoreKeys() []string {
	if len(c.ScoreKeys) == 0 {
		return DefaultScoreKeys
	}
	return c.ScoreKeys
}

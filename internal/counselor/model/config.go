package model

// ================ Config ================

// ExtractorModelConfig configures the model used for profile extraction.
// Extraction wants low temperature so the JSON shape stays stable.
type ExtractorModelConfig struct {
	Model       string  `envconfig:"EXTRACTOR_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"EXTRACTOR_MAX_TOKENS" default:"1000"`
	Temperature float32 `envconfig:"EXTRACTOR_TEMPERATURE" default:"0.1"`
}

// ResponseModelConfig configures the model used for counselor-facing text
// (clarifying questions, recommendations, free discussion).
type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"1500"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.6"`
}

// CounselorConfig tunes the conversation policy.
type CounselorConfig struct {
	// CompletenessThreshold is the profile completeness at which the
	// counselor volunteers recommendations.
	CompletenessThreshold float64 `envconfig:"COUNSELOR_COMPLETENESS_THRESHOLD" default:"0.6"`
	// Patience is how many consecutive no-new-information turns are
	// tolerated before recommendations are forced.
	Patience int `envconfig:"COUNSELOR_PATIENCE" default:"3"`
	// MaxHistory bounds the stored turn history per session.
	MaxHistory int `envconfig:"COUNSELOR_MAX_HISTORY" default:"20"`
	// RequestsPerMinute caps outbound model calls across all sessions.
	RequestsPerMinute int `envconfig:"COUNSELOR_REQUESTS_PER_MINUTE" default:"25"`
	// GatewayTimeout is the per-call timeout, in seconds, on the model
	// gateway. A hung upstream degrades to the fallback strategy.
	GatewayTimeout int `envconfig:"COUNSELOR_GATEWAY_TIMEOUT" default:"10"`
}

// HistoryConfig selects and tunes the history driver.
type HistoryConfig struct {
	// Driver is either "memory" or "redis".
	Driver string `envconfig:"HISTORY_DRIVER" default:"memory"`
	// TTL is the Redis key expiry, refreshed on every append.
	TTL string `envconfig:"HISTORY_TTL" default:"15m"`
}

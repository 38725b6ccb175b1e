package model

// ================ Config ================

type ConversationConfig struct {
	TTL          string `envconfig:"CONVERSATION_TTL" default:"24h"`
	HistoryLimit int    `envconfig:"CONVERSATION_HISTORY_LIMIT" default:"10"`
}

type ClassifierModelConfig struct {
	Model          string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens      int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"512"`
	Temperature    float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.0"`
	TimeoutSeconds int     `envconfig:"CLASSIFIER_TIMEOUT_SECONDS" default:"30"`
}

type GeneratorModelConfig struct {
	Model          string  `envconfig:"GENERATOR_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"GENERATOR_MAX_TOKENS" default:"2000"`
	Temperature    float32 `envconfig:"GENERATOR_TEMPERATURE" default:"0.4"`
	TimeoutSeconds int     `envconfig:"GENERATOR_TIMEOUT_SECONDS" default:"60"`
}

type RoutingConfig struct {
	// Classifications at or below this confidence are not trusted for routing
	// and fall back to the default agent.
	ConfidenceThreshold float64 `envconfig:"ROUTING_CONFIDENCE_THRESHOLD" default:"0.7"`
}

type RetrievalConfig struct {
	TopK           int `envconfig:"RETRIEVAL_TOP_K" default:"5"`
	TimeoutSeconds int `envconfig:"RETRIEVAL_TIMEOUT_SECONDS" default:"10"`
}

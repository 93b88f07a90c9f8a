package llm

// Default model settings for document generation.
const (
	DefaultModel = "gemini-2.0-flash"
	// DefaultTemperature leaves room for natural phrasing in synthesized
	// documents while keeping structured extraction stable.
	DefaultTemperature = 0.7
)

// Config holds generation settings for a Client.
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns the default generation settings.
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
	}
}

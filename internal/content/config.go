package content

// PurposeConfig holds generation settings for one kind of request.
type PurposeConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// Config holds content generation settings per purpose.
type Config struct {
	Intro      PurposeConfig `mapstructure:"intro"`
	Reply      PurposeConfig `mapstructure:"reply"`
	Quiz       PurposeConfig `mapstructure:"quiz"`
	Insight    PurposeConfig `mapstructure:"insight"`
	Curriculum PurposeConfig `mapstructure:"curriculum"`
}

// DefaultConfig returns sensible defaults for content generation.
// Token limits leave room for models that spend output tokens on reasoning.
func DefaultConfig() Config {
	return Config{
		Intro:      PurposeConfig{MaxTokens: 1024, Temperature: 0.8},
		Reply:      PurposeConfig{MaxTokens: 1024, Temperature: 0.7},
		Quiz:       PurposeConfig{MaxTokens: 2048, Temperature: 0.4},
		Insight:    PurposeConfig{MaxTokens: 512, Temperature: 0.3},
		Curriculum: PurposeConfig{MaxTokens: 2048, Temperature: 0.4},
	}
}

package llm

// Generation defaults.
const (
	DefaultMaxLength   = 280
	DefaultTemperature = 0.8
	DefaultTopK        = 50
	DefaultTopP        = 0.95
	DefaultNumReturn   = 3

	// maxNewTokens caps the completion size regardless of MaxLength.
	maxNewTokens = 100
)

// GenerationOptions tunes sampling. Zero fields take the defaults above.
type GenerationOptions struct {
	MaxLength   int
	Temperature float64
	TopK        int
	TopP        float64
	NumReturn   int
}

// DefaultGenerationOptions returns the built-in sampling settings.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		MaxLength:   DefaultMaxLength,
		Temperature: DefaultTemperature,
		TopK:        DefaultTopK,
		TopP:        DefaultTopP,
		NumReturn:   DefaultNumReturn,
	}
}

func (o GenerationOptions) withDefaults() GenerationOptions {
	def := DefaultGenerationOptions()
	if o.MaxLength <= 0 {
		o.MaxLength = def.MaxLength
	}
	if o.Temperature <= 0 {
		o.Temperature = def.Temperature
	}
	if o.TopK <= 0 {
		o.TopK = def.TopK
	}
	if o.TopP <= 0 {
		o.TopP = def.TopP
	}
	if o.NumReturn <= 0 {
		o.NumReturn = def.NumReturn
	}
	return o
}

func (o GenerationOptions) maxTokens() int {
	if o.MaxLength < maxNewTokens {
		return o.MaxLength
	}
	return maxNewTokens
}

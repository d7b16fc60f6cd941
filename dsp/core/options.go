package core

// DefaultStreamFrequency is the pointer sampling rate assumed when a caller
// does not supply one, in Hz.
const DefaultStreamFrequency = 60.0

// StreamConfig defines common settings for a sampled pointer stream.
type StreamConfig struct {
	// Frequency is the expected sampling rate in Hz.
	Frequency float64
	// BlockSize is the analysis block length in samples. 0 selects the
	// smallest power of two that holds the whole trace.
	BlockSize int
}

// StreamOption mutates a StreamConfig.
type StreamOption func(*StreamConfig)

// DefaultStreamConfig returns the settings of a typical 60 Hz display-rate
// pointer stream.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Frequency: DefaultStreamFrequency,
		BlockSize: 0,
	}
}

// WithFrequency sets the stream sampling rate. Non-positive values are ignored.
func WithFrequency(hz float64) StreamOption {
	return func(cfg *StreamConfig) {
		if hz > 0 {
			cfg.Frequency = hz
		}
	}
}

// WithBlockSize sets the analysis block length. Negative values are ignored.
func WithBlockSize(blockSize int) StreamOption {
	return func(cfg *StreamConfig) {
		if blockSize >= 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyStreamOptions applies zero or more options to the default config.
func ApplyStreamOptions(opts ...StreamOption) StreamConfig {
	cfg := DefaultStreamConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

package practicesession

// DefaultSize is the number of questions drawn per session.
const DefaultSize = 10

// SessionConfig holds the sampling constraints for a practice session.
type SessionConfig struct {
	Size int // K, maximum questions per session
}

// DefaultConfig returns the standard ten-question session.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		Size: DefaultSize,
	}
}

// EffectiveSize falls back to DefaultSize for non-positive values.
func (c SessionConfig) EffectiveSize() int {
	if c.Size <= 0 {
		return DefaultSize
	}
	return c.Size
}

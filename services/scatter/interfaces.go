package scatter

// RandomGeneratorInterface defines the interface for random number generation.
type RandomGeneratorInterface interface {
	Float64() float64
	FloatRange(min, max float64) float64
}

// LoggerInterface abstracts logging operations for dependency injection.
type LoggerInterface interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) LoggerInterface
}

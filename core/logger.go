package core

// Logger is the app-wide logging contract. Implementations may ship errors to
// an external reporter in addition to the standard log output.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, err error, args ...interface{})
}

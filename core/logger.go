package core

// Logger is any levelled logger the services can report through.
// Implementations may inspect args for known types (errors, the acting
// principal) and forward them to an error tracker.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

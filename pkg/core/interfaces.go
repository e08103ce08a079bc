package core

// Logger receives progress and diagnostic output from the renderer and shells
type Logger interface {
	Printf(format string, args ...interface{})
}

// discardLogger drops everything; used when a caller passes a nil Logger
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// DiscardLogger returns a Logger that produces no output
func DiscardLogger() Logger {
	return discardLogger{}
}

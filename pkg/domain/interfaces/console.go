package interfaces

// Console prints operator-facing status and diagnostics
type Console interface {
	Success(format string, args ...any)
	Failure(format string, args ...any)
	BuildLog(header string, log []byte)
}

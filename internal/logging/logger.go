// Package logging provides the structured logger used by every component.
// Components depend on the Logger interface; the application wires a logrus
// backed implementation and tests use MockLogger.
package logging

// Logger is the structured logging interface injected into components.
// Components never exit the process; fatal handling stays in main.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a derived logger carrying err on every entry
	WithError(err error) Logger
	WithField(key string, value any) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key/value pair attached to a log entry. Prefer the Field*
// constants for keys so entries stay queryable.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

package i

// Logger is the leveled logger long-lived components write to.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

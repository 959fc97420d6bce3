package middleware

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс сбора HTTP метрик
type Metrics interface {
	ObserveHTTPRequest(method, route string, status int, seconds float64)
}

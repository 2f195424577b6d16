package logger

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"time"
)

// Group nests attrs under a single key.
func Group(key string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: key, Value: slog.GroupValue(attrs...)}
}

// Error returns an "error" attr, or an empty attr for a nil error so it
// disappears from the log line.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple errors under "errors", skipping nils. All-nil input
// yields an empty attr.
func Errors(errs ...error) slog.Attr {
	attrs := make([]slog.Attr, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			attrs = append(attrs, slog.Any(fmt.Sprintf("%d", len(attrs)), err))
		}
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return Group("errors", attrs...)
}

// Duration returns a "duration" attr.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Latency returns a "latency" attr.
func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

// Elapsed returns an "elapsed" attr measured from start to now.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ID returns an identifier attr under the given key; nil values vanish.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// RequestID returns a "request_id" attr; empty IDs vanish.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// TraceID returns a "trace_id" attr; empty IDs vanish.
func TraceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("trace_id", id)
}

// CorrelationID returns a "correlation_id" attr; empty IDs vanish.
func CorrelationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("correlation_id", id)
}

// Method returns a "method" attr.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path returns a "path" attr.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// StatusCode returns a "status_code" attr.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// ClientIP returns a "client_ip" attr.
func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

// UserAgent returns a "user_agent" attr.
func UserAgent(ua string) slog.Attr {
	return slog.String("user_agent", ua)
}

// BytesIn returns a "bytes_in" attr.
func BytesIn(n int64) slog.Attr {
	return slog.Int64("bytes_in", n)
}

// BytesOut returns a "bytes_out" attr.
func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Component returns a "component" attr.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event returns an "event" attr.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Type returns a "type" attr.
func Type(name string) slog.Attr {
	return slog.String("type", name)
}

// Action returns an "action" attr.
func Action(name string) slog.Attr {
	return slog.String("action", name)
}

// Result returns a "result" attr.
func Result(name string) slog.Attr {
	return slog.String("result", name)
}

// Count returns an integer attr under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Version returns a "version" attr.
func Version(v string) slog.Attr {
	return slog.String("version", v)
}

// Key returns a generic attr under the given key; nil values vanish.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// RetryCount returns a "retry_count" attr.
func RetryCount(n int) slog.Attr {
	return slog.Int("retry_count", n)
}

// Stack returns a "stack" attr with the current goroutine's stack trace.
func Stack() slog.Attr {
	return slog.String("stack", string(debug.Stack()))
}

// Caller returns a "caller" attr with the file:line of the calling function.
func Caller() slog.Attr {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return slog.Attr{}
	}
	return slog.String("caller", fmt.Sprintf("%s:%d", file, line))
}

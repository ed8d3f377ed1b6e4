package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// loggingLineWriter logs complete lines of a response body.
type loggingLineWriter struct {
	prefix string
	buf    []byte
}

func (lw *loggingLineWriter) Write(p []byte) (int, error) {
	lw.buf = append(lw.buf, p...)
	for {
		idx := bytes.IndexByte(lw.buf, '\n')
		if idx < 0 {
			break
		}
		line := string(lw.buf[:idx])
		if len(line) > 0 {
			if zlog != nil {
				zlog.Debug().Msg(lw.prefix + line)
			} else {
				log.Printf("%s%s", lw.prefix, line)
			}
		}
		lw.buf = lw.buf[idx+1:]
	}
	return len(p), nil
}

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error", "warn":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

var defaultLogLevel = LevelInfo

// SetLogLevel sets the request log level used when a request carries no override.
func SetLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

func logRequestStart(r *http.Request, lvl LogLevel, textLen int) {
	if lvl < LevelInfo {
		return
	}
	rid := middleware.GetReqID(r.Context())
	if zlog == nil {
		log.Printf("extract start path=%s text_len=%d request_id=%s", r.URL.Path, textLen, rid)
		return
	}
	z := zlog.Info().Str("path", r.URL.Path).Int("text_len", textLen)
	if rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("extract start")
}

// logRequestEnd logs the outcome. Failures are logged at LevelError and up,
// everything else at LevelInfo. status 0 means the client went away.
func logRequestEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	failed := status >= http.StatusInternalServerError
	if lvl < LevelInfo && !(failed && lvl >= LevelError) {
		return
	}
	dur := time.Since(start)
	rid := middleware.GetReqID(r.Context())
	if zlog == nil {
		log.Printf("extract end status=%d dur=%s request_id=%s err=%v", status, dur, rid, err)
		return
	}
	z := zlog.Info()
	if failed {
		z = zlog.Error()
	}
	z = z.Int("status", status).Dur("dur", dur)
	if rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg("extract end")
}

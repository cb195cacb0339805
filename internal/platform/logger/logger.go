// Package logger is the service's structured logger. Every key/value pair
// passes through a redactor before it reaches zap: secrets and personal
// data are masked and identifiers are replaced by a salted short hash.
package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
	redact        *redactor
}

// New builds a logger for mode: "production" (JSON, info), "test" (no
// output) or anything else for development (console, debug). LOG_LEVEL
// overrides the level of the first two.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "test":
		return &Logger{SugaredLogger: zap.NewNop().Sugar(), redact: envRedactor()}, nil
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		lvl, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zl.Sugar(), redact: envRedactor()}, nil
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, kv ...any) { l.SugaredLogger.Debugw(msg, l.redact.pairs(kv)...) }
func (l *Logger) Info(msg string, kv ...any)  { l.SugaredLogger.Infow(msg, l.redact.pairs(kv)...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.SugaredLogger.Warnw(msg, l.redact.pairs(kv)...) }
func (l *Logger) Error(msg string, kv ...any) { l.SugaredLogger.Errorw(msg, l.redact.pairs(kv)...) }
func (l *Logger) Fatal(msg string, kv ...any) { l.SugaredLogger.Fatalw(msg, l.redact.pairs(kv)...) }

// Named scopes a child logger under a dotted component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name), redact: l.redact}
}

// With returns a child logger carrying kv on every entry.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(l.redact.pairs(kv)...), redact: l.redact}
}

const masked = "[REDACTED]"

// redactor rewrites log values by key. A nil redactor passes values
// through unchanged.
type redactor struct {
	salt string
	// masked when the lowercased key contains any of these
	secrets []string
	// hashed when the lowercased key equals one of these
	ids map[string]struct{}
	// hashed when the lowercased key ends with one of these
	idSuffixes []string
}

var envRedactor = sync.OnceValue(func() *redactor {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
	case "0", "false", "no", "off":
		return nil
	}
	return newRedactor(strings.TrimSpace(os.Getenv("LOG_HASH_SALT")))
})

func newRedactor(salt string) *redactor {
	return &redactor{
		salt: salt,
		secrets: []string{
			"password", "secret", "token", "refresh", "authorization", "cookie",
			"api_key", "apikey", "email", "first_name", "last_name",
		},
		ids: map[string]struct{}{
			"user_id": {}, "entity_id": {}, "username": {}, "remote_addr": {},
		},
		idSuffixes: []string{"_user_id"},
	}
}

// pairs redacts a sugared key/value list. A trailing key without a value
// is kept as is.
func (r *redactor) pairs(kv []any) []any {
	if r == nil || len(kv) == 0 {
		return kv
	}
	out := make([]any, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		out[i+1] = r.value(keyString(out[i]), out[i+1])
	}
	return out
}

func (r *redactor) value(key string, v any) any {
	switch r.classify(key) {
	case keySecret:
		return masked
	case keyID:
		return r.hash(v)
	}
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = r.value(keyString(k), inner)
		}
		return m
	case []any:
		if t == nil {
			return t
		}
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = r.value("", inner)
		}
		return s
	case string:
		if isBearerToken(t) {
			return masked
		}
	}
	return v
}

type keyKind int

const (
	keyPlain keyKind = iota
	keySecret
	keyID
)

func (r *redactor) classify(key string) keyKind {
	if key == "" {
		return keyPlain
	}
	for _, s := range r.secrets {
		if strings.Contains(key, s) {
			return keySecret
		}
	}
	if _, ok := r.ids[key]; ok {
		return keyID
	}
	for _, suffix := range r.idSuffixes {
		if strings.HasSuffix(key, suffix) {
			return keyID
		}
	}
	return keyPlain
}

// hash is stable per salt and truncated to 12 hex chars.
func (r *redactor) hash(v any) string {
	raw := valueString(v)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

// isBearerToken matches JWT-shaped strings: three dot-separated segments
// with a long header and payload.
func isBearerToken(s string) bool {
	head, rest, ok := strings.Cut(s, ".")
	if !ok {
		return false
	}
	payload, sig, ok := strings.Cut(rest, ".")
	return ok && !strings.Contains(sig, ".") && len(head) > 10 && len(payload) > 10
}

func keyString(k any) string {
	return strings.ToLower(valueString(k))
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Package logger holds the application and audit loggers. Both write to
// stdout and to a size-rotated file under the configured log directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Context keys shared with the middleware.
const (
	RequestIDKey = "requestID"
	UserIDKey    = "userID"
)

// Config selects level, format and destination.
type Config struct {
	Level string
	Path  string
	JSON  bool
	// MaxSizeMB, MaxBackups and MaxAgeDays control file rotation.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu    sync.RWMutex
	app   = logrus.New()
	audit = logrus.New()
	files []io.Closer
)

// Init builds both loggers from cfg. It may be called again to reconfigure.
func Init(cfg Config) error {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	newApp, appFile := build(cfg, level, "app.log")
	newAudit, auditFile := build(cfg, logrus.InfoLevel, "audit.log")

	mu.Lock()
	defer mu.Unlock()
	for _, f := range files {
		f.Close()
	}
	files = files[:0]
	for _, f := range []io.Closer{appFile, auditFile} {
		if f != nil {
			files = append(files, f)
		}
	}
	app, audit = newApp, newAudit
	return nil
}

func build(cfg Config, level logrus.Level, file string) (*logrus.Logger, io.Closer) {
	l := logrus.New()
	l.SetLevel(level)
	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	}
	if cfg.Path == "" {
		l.SetOutput(os.Stdout)
		return l, nil
	}
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Path, file),
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: orDefault(cfg.MaxBackups, 7),
		MaxAge:     orDefault(cfg.MaxAgeDays, 7),
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return l, rotating
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Close flushes and closes the rotated files.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	for _, f := range files {
		f.Close()
	}
	files = nil
}

// App returns the application logger.
func App() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return app
}

// AuditLogger returns the audit logger.
func AuditLogger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return audit
}

// WithRequest returns an entry carrying the request id, user id, method
// and path of c.
func WithRequest(c *gin.Context) *logrus.Entry {
	return requestFields(App().WithContext(c.Request.Context()), c)
}

func requestFields(entry *logrus.Entry, c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"ip":     c.ClientIP(),
	}
	if id := c.GetString(RequestIDKey); id != "" {
		fields["request_id"] = id
	}
	if uid := c.GetString(UserIDKey); uid != "" {
		fields["user_id"] = uid
	}
	return entry.WithFields(fields)
}

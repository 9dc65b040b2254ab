// Package logger provides the leveled stdout logger every audit line of
// the mount pipeline flows through.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a configured level name onto a Level. Unknown names
// fall back to the informational default.
func ParseLevel(name string) Level {
	for i, n := range levelNames {
		if strings.EqualFold(name, n) {
			return Level(i)
		}
	}
	return LevelInfo
}

var (
	mu           sync.Mutex
	out          io.Writer = os.Stdout
	currentLevel           = LevelInfo
)

// SetLevel sets the minimum level that reaches the output.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// SetOutput redirects log output, mainly so tests can capture audit lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func log(level Level, format string, v ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < currentLevel {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(out, "[%s] [%s] %s\n", timestamp, level, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) {
	log(LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	log(LevelInfo, format, v...)
}

func Warn(format string, v ...any) {
	log(LevelWarn, format, v...)
}

func Error(format string, v ...any) {
	log(LevelError, format, v...)
}

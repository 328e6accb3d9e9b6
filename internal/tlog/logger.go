// Package tlog is a small structured logger: one line per call, level-gated,
// key/value pairs, colorized when writing to a terminal. Call sites look
// like log.Info("msg", "k", v, "k2", v2) throughout node and httpapi.
package tlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level selects which calls are written.
type Level int

const (
	LvlCrit Level = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
)

func (l Level) String() string {
	switch l {
	case LvlCrit:
		return "CRIT"
	case LvlError:
		return "ERRO"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DBUG"
	default:
		return "????"
	}
}

var levelColor = map[Level]*color.Color{
	LvlCrit:  color.New(color.FgWhite, color.BgRed, color.Bold),
	LvlError: color.New(color.FgRed),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
}

// Logger writes level-gated, colorized lines to an underlying writer.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	useColor bool
}

// New wraps w (made TTY-aware if it is *os.File) into a Logger at LvlInfo.
func New(w io.Writer) *Logger {
	useColor := false
	out := w
	if f, ok := w.(*os.File); ok {
		out = colorable.NewColorable(f)
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{out: out, level: LvlInfo, useColor: useColor}
}

// SetLevel changes the minimum level written.
func (l *Logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lvl
}

func (l *Logger) log(lvl Level, msg string, ctx []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl > l.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	b.WriteByte(' ')

	levelStr := lvl.String()
	if l.useColor {
		levelStr = levelColor[lvl].Sprint(levelStr)
	}
	b.WriteString(levelStr)
	b.WriteByte(' ')
	b.WriteString(msg)

	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(&b, " %v=%v", ctx[i], ctx[i+1])
	}
	if len(ctx)%2 == 1 {
		fmt.Fprintf(&b, " %v=MISSING", ctx[len(ctx)-1])
	}

	if lvl <= LvlError {
		b.WriteByte(' ')
		b.WriteString(callerFrame())
	}

	b.WriteByte('\n')
	io.WriteString(l.out, b.String())
}

func callerFrame() string {
	c := stack.Caller(3)
	return fmt.Sprintf("(%+v)", c)
}

func (l *Logger) Debug(msg string, ctx ...interface{}) { l.log(LvlDebug, msg, ctx) }
func (l *Logger) Info(msg string, ctx ...interface{})  { l.log(LvlInfo, msg, ctx) }
func (l *Logger) Warn(msg string, ctx ...interface{})  { l.log(LvlWarn, msg, ctx) }
func (l *Logger) Error(msg string, ctx ...interface{}) { l.log(LvlError, msg, ctx) }

// Crit logs at LvlCrit and terminates the process: internal invariant
// violations (e.g. a negative balance observed) are fatal by design, not
// recoverable error conditions.
func (l *Logger) Crit(msg string, ctx ...interface{}) {
	l.log(LvlCrit, msg, ctx)
	os.Exit(1)
}

var std = New(os.Stderr)

// SetLevel changes the minimum level the default logger writes.
func SetLevel(lvl Level) { std.SetLevel(lvl) }

func Debug(msg string, ctx ...interface{}) { std.Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { std.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { std.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { std.Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})  { std.Crit(msg, ctx...) }

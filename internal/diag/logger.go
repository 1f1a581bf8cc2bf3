package diag

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 级别定义
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// DefaultLogDir 为日志文件默认目录。
const DefaultLogDir = "logs"

// Logger 为结构化事件日志器：zap JSON 编码，单行写入轮转文件。
type Logger struct {
	corrID string
	level  Level
	z      *zap.Logger
	sink   *RotatingFile
}

// NewCorrID 返回新的进程关联 ID。
func NewCorrID() string { return uuid.NewString() }

// NewLogger 通过配置的 level 初始化，写入 dir/surfaces-current.txt，10 MiB 轮转。
// dir 为空时使用 DefaultLogDir。
func NewLogger(corrID, level, dir string) *Logger {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultLogDir
	}
	sink := NewRotatingFile(dir, 10*1024*1024)
	l := newLogger(corrID, level, zapcore.AddSync(sink))
	l.sink = sink
	return l
}

// NewLoggerTo 将日志写入任意 io.Writer（测试与 stderr 回退使用）。
func NewLoggerTo(w io.Writer, corrID, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return newLogger(corrID, level, zapcore.AddSync(w))
}

// Nop 返回丢弃一切事件的日志器。
func Nop() *Logger { return &Logger{level: Error + 1, z: zap.NewNop()} }

func newLogger(corrID, level string, ws zapcore.WriteSyncer) *Logger {
	lvl := parseLevel(strings.TrimSpace(level))
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(ws), lvl.zap())
	z := zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr))).With(zap.String("corr_id", corrID))
	return &Logger{corrID: corrID, level: lvl, z: z}
}

func parseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return Debug
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// CorrID 返回本日志器的关联 ID。
func (l *Logger) CorrID() string { return l.corrID }

// Event 为标准事件结构。
type Event struct {
	Comp    string
	Stage   string // start|finish|error
	Code    string
	DurMS   int64
	Count   int64
	StoreID string
	Variant string
	Msg     string
	KV      map[string]string
}

func (ev Event) fields() []zap.Field {
	fs := make([]zap.Field, 0, 8)
	fs = append(fs, zap.String("comp", ev.Comp), zap.String("stage", ev.Stage))
	if ev.Code != "" {
		fs = append(fs, zap.String("code", ev.Code))
	}
	if ev.DurMS != 0 {
		fs = append(fs, zap.Int64("dur_ms", ev.DurMS))
	}
	if ev.Count != 0 {
		fs = append(fs, zap.Int64("count", ev.Count))
	}
	if ev.StoreID != "" {
		fs = append(fs, zap.String("store_id", ev.StoreID))
	}
	if ev.Variant != "" {
		fs = append(fs, zap.String("variant", ev.Variant))
	}
	if len(ev.KV) > 0 {
		fs = append(fs, zap.Any("kv", ev.KV))
	}
	return fs
}

func (l *Logger) log(lv Level, ev Event) {
	if l == nil || l.z == nil || lv < l.level {
		return
	}
	if ce := l.z.Check(lv.zap(), ev.Msg); ce != nil {
		ce.Write(ev.fields()...)
	}
}

// Start 记录 start 事件；返回计时器用于 Finish。
func (l *Logger) Start(comp, msg string) *Timer {
	l.log(Info, Event{Comp: comp, Stage: "start", Msg: msg})
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// StartWith 记录带 store_id/variant 的 start。
func (l *Logger) StartWith(comp, msg, storeID, variant string) *Timer {
	l.log(Info, Event{Comp: comp, Stage: "start", StoreID: storeID, Variant: variant, Msg: msg})
	return &Timer{l: l, comp: comp, storeID: storeID, variant: variant, t0: time.Now()}
}

// Error 记录 error 事件。
func (l *Logger) Error(comp, code, msg string, durSince *time.Time) {
	l.ErrorWithKV(comp, code, msg, durSince, "", "", nil)
}

// ErrorWith 支持 store_id/variant。
func (l *Logger) ErrorWith(comp, code, msg string, durSince *time.Time, storeID, variant string) {
	l.ErrorWithKV(comp, code, msg, durSince, storeID, variant, nil)
}

// ErrorWithKV 支持附带键值对。
func (l *Logger) ErrorWithKV(comp, code, msg string, durSince *time.Time, storeID, variant string, kv map[string]string) {
	var dur int64
	if durSince != nil {
		dur = time.Since(*durSince).Milliseconds()
	}
	l.log(Error, Event{Comp: comp, Stage: "error", Code: code, DurMS: dur, Msg: msg, StoreID: storeID, Variant: variant, KV: kv})
}

// InfoFinish 在已有起点的情况下记录 finish。
func (l *Logger) InfoFinish(comp, msg string, start time.Time, count int64) {
	l.log(Info, Event{Comp: comp, Stage: "finish", DurMS: time.Since(start).Milliseconds(), Count: count, Msg: msg})
}

// DebugStart 输出调试级别的 start 事件（仅在 level=debug 时生效）。
func (l *Logger) DebugStart(comp, msg, storeID, variant string, kv map[string]string) {
	l.log(Debug, Event{Comp: comp, Stage: "start", StoreID: storeID, Variant: variant, Msg: msg, KV: kv})
}

// Close 刷新编码器并关闭文件。
func (l *Logger) Close() error {
	if l == nil || l.z == nil {
		return nil
	}
	_ = l.z.Sync()
	if l.sink != nil {
		return l.sink.Close()
	}
	return nil
}

// Timer 用于 start→finish 计时。
type Timer struct {
	l       *Logger
	comp    string
	storeID string
	variant string
	t0      time.Time
}

// Finish 记录 finish；可选 count。
func (t *Timer) Finish(msg string, count int64) {
	if t == nil || t.l == nil {
		return
	}
	t.l.log(Info, Event{Comp: t.comp, Stage: "finish", DurMS: time.Since(t.t0).Milliseconds(), Count: count, StoreID: t.storeID, Variant: t.variant, Msg: msg})
}

// Since 返回计时起点（用于 Error 的 durSince）。
func (t *Timer) Since() *time.Time {
	if t == nil {
		return nil
	}
	return &t.t0
}

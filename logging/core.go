package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// core 全エントリにserviceContextを、ERROR以上のエントリに発生箇所を付与するCore
type core struct {
	zapcore.Core
	name    string
	version string
}

// With adds structured context to the Core.
func (c *core) With(fields []zap.Field) zapcore.Core {
	return &core{
		Core:    c.Core.With(fields),
		name:    c.name,
		version: c.version,
	}
}

// Check determines whether the supplied Entry should be logged.
func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write serializes the Entry and any Fields supplied at the log site and
// writes them to their destination.
func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if !hasField(fields, serviceContextKey) {
		fields = append(fields, ServiceContext(c.name, c.version))
	}
	if zapcore.ErrorLevel.Enabled(ent.Level) && ent.Caller.Defined && !hasField(fields, reportContextKey) {
		fields = append(fields, ReportLocation(ent.Caller.PC, ent.Caller.File, ent.Caller.Line, true))
	}
	return c.Core.Write(ent, fields)
}

func hasField(fields []zapcore.Field, key string) bool {
	for i := range fields {
		if fields[i].Key == key {
			return true
		}
	}
	return false
}

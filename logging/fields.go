package logging

import (
	"runtime"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serviceContextKey = "serviceContext"
	reportContextKey  = "context"
)

type serviceContext struct {
	Name    string `json:"service"`
	Version string `json:"version"`
}

// ServiceContext サービス名とバージョンを表すField
func ServiceContext(name, version string) zap.Field {
	return zap.Object(serviceContextKey, &serviceContext{
		Name:    name,
		Version: version,
	})
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (sc serviceContext) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("service", sc.Name)
	enc.AddString("version", sc.Version)
	return nil
}

type reportLocation struct {
	File     string `json:"filePath"`
	Line     string `json:"lineNumber"`
	Function string `json:"functionName"`
}

type reportContext struct {
	ReportLocation reportLocation `json:"reportLocation"`
}

// ReportLocation エラーの発生箇所を表すField
//
// 引数はruntime.Callerの戻り値と同じです
func ReportLocation(pc uintptr, file string, line int, ok bool) zap.Field {
	if !ok {
		return zap.Skip()
	}
	c := &reportContext{
		ReportLocation: reportLocation{
			File: file,
			Line: strconv.Itoa(line),
		},
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		c.ReportLocation.Function = fn.Name()
	}
	return zap.Object(reportContextKey, c)
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (c reportContext) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return enc.AddObject("reportLocation", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("filePath", c.ReportLocation.File)
		enc.AddString("lineNumber", c.ReportLocation.Line)
		enc.AddString("functionName", c.ReportLocation.Function)
		return nil
	}))
}

package logging

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestServiceContext(t *testing.T) {
	t.Parallel()

	name := "pnmshrink"
	ver := "v1.2.3.abcdef"

	sc := ServiceContext(name, ver).Interface.(*serviceContext)

	assert.Equal(t, name, sc.Name)
	assert.Equal(t, ver, sc.Version)
}

func TestServiceContext_MarshalLogObject(t *testing.T) {
	t.Parallel()

	sc := &serviceContext{
		Name:    "pnmshrink",
		Version: "v1.2.3.abcdef",
	}

	enc := zapcore.NewMapObjectEncoder()

	if assert.NoError(t, sc.MarshalLogObject(enc)) {
		assert.EqualValues(t, sc.Name, enc.Fields["service"])
		assert.EqualValues(t, sc.Version, enc.Fields["version"])
	}
}

func TestReportLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.SkipType, ReportLocation(0, "", 0, false).Type)

	c := ReportLocation(runtime.Caller(0)).Interface.(*reportContext)

	assert.Contains(t, c.ReportLocation.File, "logging/fields_test.go")
	assert.Equal(t, "44", c.ReportLocation.Line)
	assert.Equal(t, "github.com/traPtitech/pnmshrink/logging.TestReportLocation", c.ReportLocation.Function)
}

func TestReportContext_MarshalLogObject(t *testing.T) {
	t.Parallel()

	c := &reportContext{
		ReportLocation: reportLocation{
			File:     "test1",
			Line:     "test2",
			Function: "test3",
		},
	}

	enc := zapcore.NewMapObjectEncoder()

	if assert.NoError(t, c.MarshalLogObject(enc)) {
		loc := enc.Fields["reportLocation"].(map[string]interface{})
		assert.EqualValues(t, c.ReportLocation.File, loc["filePath"])
		assert.EqualValues(t, c.ReportLocation.Line, loc["lineNumber"])
		assert.EqualValues(t, c.ReportLocation.Function, loc["functionName"])
	}
}

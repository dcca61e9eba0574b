package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options ロガーの設定
type Options struct {
	// ServiceName サービス名
	ServiceName string
	// ServiceVersion サービスのバージョン
	ServiceVersion string
	// Level 出力する最低レベル
	Level zapcore.Level
	// Development trueの場合、人間向けのコンソール形式で出力します
	Development bool
}

// CreateNewLogger wに書き出すロガーを生成します
//
// 標準出力は画像の出力に使うので、wには標準エラー出力を渡してください
func CreateNewLogger(w io.Writer, o Options) *zap.Logger {
	ws := zapcore.Lock(zapcore.AddSync(w))

	if o.Development {
		c := zapcore.NewCore(zapcore.NewConsoleEncoder(devEncoderConfig), ws, o.Level)
		return zap.New(c, zap.Development(), zap.AddCaller())
	}

	c := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, o.Level)
	return zap.New(&core{
		Core:    c,
		name:    o.ServiceName,
		version: o.ServiceVersion,
	}, zap.AddCaller())
}

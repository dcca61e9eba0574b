package cmd

import (
	vd "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/traPtitech/pnmshrink/logging"
	"github.com/traPtitech/pnmshrink/service/imaging"
	"github.com/traPtitech/pnmshrink/utils/optional"
	"github.com/traPtitech/pnmshrink/utils/validator"
)

// Config 設定
type Config struct {
	// DevMode 開発モードかどうか (default: false)
	DevMode bool `mapstructure:"dev" yaml:"dev" json:"dev"`
	// LogLevel ログレベル (default: warn)
	LogLevel string `mapstructure:"logLevel" yaml:"logLevel" json:"logLevel"`

	// SizeHint 出力サイズのヒント (default: min)
	// 	min/minimal 8x8, tiny 16x16, small 32x32, normal 64x64,
	// 	large 128x128, Large 256x256, LARGE 512x512,
	// 	huge 1024x1024, Huge 2048x2048, HUGE 4096x4096
	SizeHint string `mapstructure:"sizeHint" yaml:"sizeHint" json:"sizeHint"`
	// Width 出力幅。指定された場合SizeHintの幅を上書きします
	Width optional.Of[uint32] `mapstructure:"-" yaml:"width" json:"width"`
	// Height 出力高さ。指定された場合SizeHintの高さを上書きします
	Height optional.Of[uint32] `mapstructure:"-" yaml:"height" json:"height"`
	// Aspect アスペクト比の扱い (default: preserve)
	// 	preserve: アスペクト比を保って収める
	// 	ignore: 引き伸ばして合わせる
	// 	clip: アスペクト比を保って覆い、はみ出た部分を切り取る
	Aspect string `mapstructure:"aspect" yaml:"aspect" json:"aspect"`
	// Filter リサンプリングフィルタ (default: catmull-rom)
	Filter string `mapstructure:"filter" yaml:"filter" json:"filter"`

	// Input 入力設定
	Input struct {
		// Limit 入力画像の最大バイト数 (default: 1048576)
		Limit uint64 `mapstructure:"limit" yaml:"limit" json:"limit"`
		// Strict Limitを超える入力をエラーにするかどうか (default: false)
		// falseの場合、超えた部分は読まずに捨てられます
		Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`
	} `mapstructure:"input" yaml:"input" json:"input"`

	// Imaging 画像処理設定
	Imaging struct {
		// MaxPixels 処理可能な最大画素数。0以下は無制限 (default: 0)
		MaxPixels int `mapstructure:"maxPixels" yaml:"maxPixels" json:"maxPixels"`
		// AutoOrientation EXIFのOrientationを適用するかどうか (default: false)
		AutoOrientation bool `mapstructure:"autoOrientation" yaml:"autoOrientation" json:"autoOrientation"`
	} `mapstructure:"imaging" yaml:"imaging" json:"imaging"`
}

// Validate github.com/go-ozzo/ozzo-validation.Validatable 実装
func (c Config) Validate() error {
	return vd.ValidateStruct(&c,
		vd.Field(&c.Aspect, validator.OneOfRequired(imaging.AspectModeNames()...)...),
		vd.Field(&c.Filter, validator.OneOfRequired(imaging.FilterNames()...)...),
		vd.Field(&c.LogLevel, validator.ParsableBy(logging.ParseLevel)),
	)
}

// shrinkSpec 設定から変換内容を決定します
func (c *Config) shrinkSpec() (imaging.ShrinkSpec, error) {
	size, err := imaging.ResolveSize(c.SizeHint, c.Width, c.Height)
	if err != nil {
		return imaging.ShrinkSpec{}, err
	}
	aspect, err := imaging.ParseAspectMode(c.Aspect)
	if err != nil {
		return imaging.ShrinkSpec{}, err
	}
	filter, err := imaging.ParseFilter(c.Filter)
	if err != nil {
		return imaging.ShrinkSpec{}, err
	}
	return imaging.ShrinkSpec{
		Filter: filter,
		Aspect: aspect,
		Size:   size,
	}, nil
}

func (c *Config) imagingConfig() imaging.Config {
	return imaging.Config{
		MaxPixels:       c.Imaging.MaxPixels,
		AutoOrientation: c.Imaging.AutoOrientation,
	}
}

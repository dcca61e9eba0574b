package imaging

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/traPtitech/pnmshrink/utils/optional"
)

// Dimensions 画像の幅と高さ
type Dimensions struct {
	Width  uint32 `yaml:"width" json:"width"`
	Height uint32 `yaml:"height" json:"height"`
}

// Square 一辺がsizeの正方形
func Square(size uint32) Dimensions {
	return Dimensions{Width: size, Height: size}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

type sizeHint struct {
	name string
	size uint32
}

// 大文字小文字は区別する (large, Large, LARGE はそれぞれ別のサイズ)
var sizeHints = []sizeHint{
	{"min", 8},
	{"minimal", 8},
	{"tiny", 16},
	{"small", 32},
	{"normal", 64},
	{"large", 128},
	{"Large", 256},
	{"LARGE", 512},
	{"huge", 1024},
	{"Huge", 2048},
	{"HUGE", 4096},
}

// DefaultSizeHint --size-hint のデフォルト値
const DefaultSizeHint = "min"

// SizeHintNames 使用可能なサイズヒントを小さい順に返します
func SizeHintNames() []string {
	return lo.Map(sizeHints, func(h sizeHint, _ int) string { return h.name })
}

// LookupSizeHint サイズヒントに対応する正方形のサイズを返します
func LookupSizeHint(hint string) (Dimensions, bool) {
	h, ok := lo.Find(sizeHints, func(h sizeHint) bool { return h.name == hint })
	if !ok {
		return Dimensions{}, false
	}
	return Square(h.size), true
}

// ResolveSize サイズヒントと幅・高さの明示指定から出力サイズを決定します
//
// width, heightはそれぞれ独立にヒントのサイズを上書きします。値の範囲は検査しません
func ResolveSize(hint string, width, height optional.Of[uint32]) (Dimensions, error) {
	d, ok := LookupSizeHint(hint)
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: %s", ErrUnknownSizeHint, hint)
	}
	d.Width = width.Or(d.Width)
	d.Height = height.Or(d.Height)
	return d, nil
}

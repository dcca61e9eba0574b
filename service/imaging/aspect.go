package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// AspectMode 元画像と出力サイズのアスペクト比が異なる場合の扱い
type AspectMode int

const (
	// AspectPreserve アスペクト比を保ったまま出力サイズに収まるように縮小・拡大する
	// 片方の辺は出力サイズより小さくなることがある
	AspectPreserve AspectMode = iota
	// AspectIgnore アスペクト比を無視して出力サイズに引き伸ばす
	AspectIgnore
	// AspectClip アスペクト比を保ったまま出力サイズを覆うように拡大・縮小し、はみ出た部分を中央基準で切り取る
	AspectClip
)

// DefaultAspectMode デフォルトのAspectMode
const DefaultAspectMode = AspectPreserve

var aspectModeNames = [...]string{
	AspectPreserve: "preserve",
	AspectIgnore:   "ignore",
	AspectClip:     "clip",
}

// AspectModeNames 使用可能なAspectMode名を返します
func AspectModeNames() []string {
	return append([]string(nil), aspectModeNames[:]...)
}

// ParseAspectMode AspectMode名をAspectModeに変換します
func ParseAspectMode(name string) (AspectMode, error) {
	for i, n := range aspectModeNames {
		if n == name {
			return AspectMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownAspectMode, name)
}

func (m AspectMode) String() string {
	if m < 0 || int(m) >= len(aspectModeNames) {
		return fmt.Sprintf("AspectMode(%d)", int(m))
	}
	return aspectModeNames[m]
}

// Apply srcをsizeに合わせてリサイズした新しい画像を返します。srcは変更されません
func (m AspectMode) Apply(src image.Image, size Dimensions, filter Filter) *image.NRGBA {
	f := filter.resampleFilter()
	w, h := int(size.Width), int(size.Height)

	switch m {
	case AspectIgnore:
		return resize(src, w, h, f)
	case AspectClip:
		sw, sh := scaledSize(src.Bounds(), size, math.Max)
		return imaging.CropCenter(resize(src, sw, sh, f), w, h)
	default:
		sw, sh := scaledSize(src.Bounds(), size, math.Min)
		return resize(src, sw, sh, f)
	}
}

// scaledSize 縦横共通の拡大・縮小比率で変換したbのサイズを返します
//
// 比率はpickで幅と高さの比率のどちらかを選びます (Minなら内接、Maxなら外接)
func scaledSize(b image.Rectangle, size Dimensions, pick func(x, y float64) float64) (int, int) {
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= 0 || srcH <= 0 || size.Width == 0 || size.Height == 0 {
		return int(size.Width), int(size.Height)
	}

	ratio := pick(float64(size.Width)/float64(srcW), float64(size.Height)/float64(srcH))
	w := int(math.Round(float64(srcW) * ratio))
	h := int(math.Round(float64(srcH) * ratio))
	// 極端に細長い画像でも1px は残す
	return max(w, 1), max(h, 1)
}

// resize imaging.Resize と同じだが、0を「アスペクト比維持」ではなく空の画像として扱う
func resize(src image.Image, width, height int, filter imaging.ResampleFilter) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}
	return imaging.Resize(src, width, height, filter)
}

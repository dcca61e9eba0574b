package imaging

import (
	"image"
	"io"

	"github.com/traPtitech/pnmshrink/utils/pnm"
)

// Image デコード済みの画像
type Image struct {
	image.Image
	// Format 元画像のフォーマット名 (png, jpeg など)
	Format string
	// Layout 出力時の画素の並び
	Layout pnm.Layout
}

// Processor 画像処理器
type Processor interface {
	// Decode srcから画像をデコードします
	//
	// 画像として解釈できない場合はErrInvalidImageSrcを返します
	Decode(src io.ReadSeeker) (*Image, error)
	// Shrink imgにspecを適用した新しい画像を返します
	Shrink(img *Image, spec ShrinkSpec) *Image
	// Encode imgをNetpbm形式でdstに書き出します
	Encode(dst io.Writer, img *Image) error
}

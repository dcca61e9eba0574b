package imaging

import (
	"image"
)

// ShrinkSpec 1回の変換の内容
//
// 値型なので、作成後に変更されることはありません
type ShrinkSpec struct {
	Filter Filter     `yaml:"filter" json:"filter"`
	Aspect AspectMode `yaml:"aspect" json:"aspect"`
	Size   Dimensions `yaml:"size" json:"size"`
}

// Transform srcにこの変換を適用した新しい画像を返します
func (s ShrinkSpec) Transform(src image.Image) *image.NRGBA {
	return s.Aspect.Apply(src, s.Size, s.Filter)
}

package imaging

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Filter リサンプリングフィルタ
//
// 後のものほど遅く、滑らかになります
type Filter int

const (
	// FilterNearest 最近傍法。最速だがブロック状になる
	FilterNearest Filter = iota
	// FilterTriangle 線形補間
	FilterTriangle
	// FilterCatmullRom 3次補間 (デフォルト)
	FilterCatmullRom
	// FilterGaussian ぼやけるが滑らか
	FilterGaussian
	// FilterLanczos3 最高品質で最も遅い。アーティファクトが出ることがある
	FilterLanczos3
)

// DefaultFilter デフォルトのフィルタ
const DefaultFilter = FilterCatmullRom

var filterNames = [...]string{
	FilterNearest:    "nearest",
	FilterTriangle:   "triangle",
	FilterCatmullRom: "catmull-rom",
	FilterGaussian:   "gaussian",
	FilterLanczos3:   "lanczos3",
}

// FilterNames 使用可能なフィルタ名を返します
func FilterNames() []string {
	return append([]string(nil), filterNames[:]...)
}

// ParseFilter フィルタ名をFilterに変換します
func ParseFilter(name string) (Filter, error) {
	for i, n := range filterNames {
		if n == name {
			return Filter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

func (f Filter) resampleFilter() imaging.ResampleFilter {
	switch f {
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterTriangle:
		return imaging.Linear
	case FilterGaussian:
		return imaging.Gaussian
	case FilterLanczos3:
		return imaging.Lanczos
	default:
		return imaging.CatmullRom
	}
}

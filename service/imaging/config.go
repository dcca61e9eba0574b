package imaging

import (
	"errors"
)

var (
	ErrPixelLimitExceeded = errors.New("the image exceeds max pixels limit")
	ErrInvalidImageSrc    = errors.New("unsupported or corrupt image")
	ErrEncodeFailed       = errors.New("failed to encode image")
	ErrUnknownSizeHint    = errors.New("invalid resize config value")
	ErrUnknownAspectMode  = errors.New("unknown aspect mode")
	ErrUnknownFilter      = errors.New("unknown filter")
)

type Config struct {
	// MaxPixels 処理可能な最大画素数
	// この値を超える画素数の画像を処理しようとした場合、全てエラーになります
	// 0の場合は無制限です
	MaxPixels int
	// AutoOrientation EXIFのOrientationに従って画像を回転させるかどうか
	AutoOrientation bool
}

package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // image.Decode用
	_ "image/jpeg" // image.Decode用
	_ "image/png"  // image.Decode用
	"io"

	_ "golang.org/x/image/bmp"  // image.Decode用
	_ "golang.org/x/image/tiff" // image.Decode用
	_ "golang.org/x/image/webp" // image.Decode用

	"github.com/disintegration/imaging"
	"github.com/sapphi-red/midec"
	_ "github.com/sapphi-red/midec/gif"  // midec.IsAnimated用
	_ "github.com/sapphi-red/midec/png"  // midec.IsAnimated用
	_ "github.com/sapphi-red/midec/webp" // midec.IsAnimated用
	"go.uber.org/zap"

	"github.com/traPtitech/pnmshrink/utils/pnm"
)

type defaultProcessor struct {
	c      Config
	logger *zap.Logger
}

func NewProcessor(c Config, logger *zap.Logger) Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &defaultProcessor{
		c:      c,
		logger: logger,
	}
}

func (p *defaultProcessor) Decode(src io.ReadSeeker) (*Image, error) {
	imgCfg, format, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSrc, err)
	}
	p.logger.Debug("decoding image",
		zap.String("format", format),
		zap.Int("width", imgCfg.Width),
		zap.Int("height", imgCfg.Height))

	// 画素数チェック
	if p.c.MaxPixels > 0 && imgCfg.Width*imgCfg.Height > p.c.MaxPixels {
		return nil, ErrPixelLimitExceeded
	}

	if err := p.warnIfAnimated(src); err != nil {
		return nil, err
	}

	// 先頭に戻す
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	orig, err := imaging.Decode(src, imaging.AutoOrientation(p.c.AutoOrientation))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSrc, err)
	}

	return &Image{
		Image:  orig,
		Format: format,
		Layout: pnm.LayoutOf(orig),
	}, nil
}

// warnIfAnimated アニメーション画像の場合、最初のフレームしか使われない旨を警告します
func (p *defaultProcessor) warnIfAnimated(src io.ReadSeeker) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	animated, err := midec.IsAnimated(src)
	if err != nil {
		// jpegなど判定できないフォーマットはアニメーションしない
		p.logger.Debug("skipped animation check", zap.Error(err))
		return nil
	}
	if animated {
		p.logger.Warn("animated image detected, only the first frame is used")
	}
	return nil
}

func (p *defaultProcessor) Shrink(img *Image, spec ShrinkSpec) *Image {
	resized := spec.Transform(img.Image)
	p.logger.Debug("image resized",
		zap.Stringer("aspect", spec.Aspect),
		zap.Stringer("filter", spec.Filter),
		zap.Stringer("target", spec.Size),
		zap.Int("width", resized.Bounds().Dx()),
		zap.Int("height", resized.Bounds().Dy()))

	return &Image{
		Image:  resized,
		Format: img.Format,
		Layout: img.Layout,
	}
}

func (p *defaultProcessor) Encode(dst io.Writer, img *Image) error {
	if err := pnm.Encode(dst, img.Image, img.Layout); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return nil
}

package cmd

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/traPtitech/pnmshrink/service/imaging"
	"github.com/traPtitech/pnmshrink/utils/ioext"
)

// shrink inから画像を読み込み、設定に従ってリサイズしてoutに書き出します
func (a *app) shrink(in io.Reader, out io.Writer) error {
	// 入力を読む前に設定の誤りを検出する
	spec, err := a.c.shrinkSpec()
	if err != nil {
		return err
	}
	a.logger.Debug("shrink spec resolved",
		zap.Stringer("size", spec.Size),
		zap.Stringer("aspect", spec.Aspect),
		zap.Stringer("filter", spec.Filter))

	p := imaging.NewProcessor(a.c.imagingConfig(), a.logger.Named("imaging"))

	data, err := a.readInput(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	a.logger.Debug("input read", zap.Int("bytes", len(data)))

	img, err := p.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	resized := p.Shrink(img, spec)

	// 全て成功するまで何も出力しない
	var buf bytes.Buffer
	if err := p.Encode(&buf, resized); err != nil {
		return err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Info("image written",
		zap.String("format", img.Format),
		zap.Stringer("layout", resized.Layout),
		zap.Int("bytes", buf.Len()))
	return nil
}

func (a *app) readInput(in io.Reader) ([]byte, error) {
	if a.c.Input.Strict {
		return ioext.ReadWithin(in, a.c.Input.Limit)
	}
	return ioext.ReadAtMost(in, a.c.Input.Limit)
}

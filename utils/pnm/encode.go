// Package pnm Netpbm形式 (PGM/PPM/PAM) のバイナリエンコーダ
package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// ErrEmptyImage 幅または高さが0の画像はエンコードできない
var ErrEmptyImage = errors.New("image has no pixels")

// Layout 出力する画素の並び
type Layout int

const (
	// LayoutRGB P6 (PPM)
	LayoutRGB Layout = iota
	// LayoutGray P5 (PGM)
	LayoutGray
	// LayoutRGBA P7 (PAM, TUPLTYPE RGB_ALPHA)
	LayoutRGBA
)

func (l Layout) String() string {
	switch l {
	case LayoutRGB:
		return "rgb"
	case LayoutGray:
		return "gray"
	case LayoutRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// LayoutOf mを欠落なく書き出せるLayoutを返します
func LayoutOf(m image.Image) Layout {
	switch m.(type) {
	case *image.Gray, *image.Gray16:
		return LayoutGray
	}
	if isOpaque(m) {
		return LayoutRGB
	}
	return LayoutRGBA
}

func isOpaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// Encode mをlayoutに従ってwに書き出します
//
// サンプルは8bit (MAXVAL 255) で出力されます
func Encode(w io.Writer, m image.Image, layout Layout) error {
	b := m.Bounds()
	if b.Empty() {
		return ErrEmptyImage
	}

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, b.Dx(), b.Dy(), layout); err != nil {
		return err
	}

	row := make([]byte, b.Dx()*channels(layout))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		fillRow(row, m, y, layout)
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func channels(layout Layout) int {
	switch layout {
	case LayoutGray:
		return 1
	case LayoutRGBA:
		return 4
	default:
		return 3
	}
}

func writeHeader(w io.Writer, width, height int, layout Layout) error {
	var err error
	switch layout {
	case LayoutGray:
		_, err = fmt.Fprintf(w, "P5\n%d %d\n255\n", width, height)
	case LayoutRGB:
		_, err = fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)
	case LayoutRGBA:
		_, err = fmt.Fprintf(w, "P7\nWIDTH %d\nHEIGHT %d\nDEPTH 4\nMAXVAL 255\nTUPLTYPE RGB_ALPHA\nENDHDR\n", width, height)
	default:
		err = fmt.Errorf("unknown layout: %v", layout)
	}
	return err
}

func fillRow(row []byte, m image.Image, y int, layout Layout) {
	b := m.Bounds()

	// リサイズ後の画像は常に*image.NRGBAなので、その場合はPixから直接取り出す
	if nrgba, ok := m.(*image.NRGBA); ok && layout != LayoutGray {
		pix := nrgba.Pix[nrgba.PixOffset(b.Min.X, y):nrgba.PixOffset(b.Max.X-1, y)+4]
		if layout == LayoutRGBA {
			copy(row, pix)
			return
		}
		for i, j := 0, 0; i < len(pix); i, j = i+4, j+3 {
			row[j], row[j+1], row[j+2] = pix[i], pix[i+1], pix[i+2]
		}
		return
	}

	i := 0
	for x := b.Min.X; x < b.Max.X; x++ {
		c := m.At(x, y)
		switch layout {
		case LayoutGray:
			row[i] = color.GrayModel.Convert(c).(color.Gray).Y
			i++
		case LayoutRGBA:
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			row[i], row[i+1], row[i+2], row[i+3] = n.R, n.G, n.B, n.A
			i += 4
		default:
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			row[i], row[i+1], row[i+2] = n.R, n.G, n.B
			i += 3
		}
	}
}

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traPtitech/pnmshrink/service/imaging"
	"github.com/traPtitech/pnmshrink/utils/ioext"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

type result struct {
	stdout []byte
	stderr string
	err    error
}

func executeCommand(in io.Reader, out io.Writer, args ...string) result {
	var stdout, stderr bytes.Buffer
	if out == nil {
		out = &stdout
	}
	cmd := rootCommand()
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.Bytes(), stderr: stderr.String(), err: err}
}

func pngOf(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func opaqueImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func assertPPM(t *testing.T, out []byte, w, h int) {
	t.Helper()
	header := fmt.Sprintf("P6\n%d %d\n255\n", w, h)
	if assert.GreaterOrEqual(t, len(out), len(header)) {
		assert.Equal(t, header, string(out[:len(header)]))
		assert.Len(t, out, len(header)+w*h*3)
	}
}

func TestRootCommand_Shrink(t *testing.T) {
	t.Parallel()

	src := pngOf(t, opaqueImage(64, 32))

	tests := []struct {
		name   string
		args   []string
		width  int
		height int
	}{
		{"defaults", nil, 8, 4},
		{"small preserve nearest", []string{"-s", "small", "-a", "preserve", "-f", "nearest"}, 32, 16},
		{"ignore with explicit size", []string{"-a", "ignore", "--width", "10", "--height", "10"}, 10, 10},
		{"clip", []string{"--size-hint", "tiny", "--aspect", "clip"}, 16, 16},
		{"width override only", []string{"-s", "normal", "--width", "20", "-a", "ignore"}, 20, 64},
		{"upscale", []string{"-s", "large", "-f", "lanczos3"}, 128, 64},
		{"gaussian", []string{"-s", "normal", "-f", "gaussian"}, 64, 32},
		{"triangle", []string{"-s", "small", "-f", "triangle"}, 32, 16},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := executeCommand(bytes.NewReader(src), nil, tt.args...)
			require.NoError(t, res.err)
			assertPPM(t, res.stdout, tt.width, tt.height)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestRootCommand_Layouts(t *testing.T) {
	t.Parallel()

	t.Run("gray", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(pngOf(t, image.NewGray(image.Rect(0, 0, 16, 16)))), nil)
		require.NoError(t, res.err)
		assert.Equal(t, "P5\n8 8\n255\n", string(res.stdout[:len("P5\n8 8\n255\n")]))
		assert.Len(t, res.stdout, len("P5\n8 8\n255\n")+8*8)
	})

	t.Run("translucent", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(pngOf(t, image.NewNRGBA(image.Rect(0, 0, 16, 16)))), nil)
		require.NoError(t, res.err)
		assert.True(t, bytes.HasPrefix(res.stdout, []byte("P7\nWIDTH 8\nHEIGHT 8\nDEPTH 4\nMAXVAL 255\nTUPLTYPE RGB_ALPHA\nENDHDR\n")))
	})
}

func TestRootCommand_Errors(t *testing.T) {
	t.Parallel()

	src := pngOf(t, opaqueImage(64, 32))

	t.Run("malformed input", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(strings.NewReader("definitely not an image"), nil)
		assert.ErrorIs(t, res.err, imaging.ErrInvalidImageSrc)
		assert.Empty(t, res.stdout)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(nil), nil)
		assert.ErrorIs(t, res.err, imaging.ErrInvalidImageSrc)
		assert.Empty(t, res.stdout)
	})

	t.Run("unknown size hint", func(t *testing.T) {
		t.Parallel()
		in := &countingReader{r: bytes.NewReader(src)}
		res := executeCommand(in, nil, "-s", "gigantic")
		assert.ErrorIs(t, res.err, imaging.ErrUnknownSizeHint)
		assert.EqualError(t, res.err, "invalid resize config value: gigantic")
		assert.Zero(t, in.n, "stdin must not be read")
		assert.Empty(t, res.stdout)
	})

	t.Run("size hint is case sensitive", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "-s", "MIN")
		assert.ErrorIs(t, res.err, imaging.ErrUnknownSizeHint)
	})

	t.Run("unknown aspect", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "-a", "stretch")
		if assert.Error(t, res.err) {
			assert.Contains(t, res.err.Error(), "aspect")
		}
		assert.Empty(t, res.stdout)
	})

	t.Run("unknown filter", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "-f", "bicubic")
		if assert.Error(t, res.err) {
			assert.Contains(t, res.err.Error(), "filter")
		}
		assert.Empty(t, res.stdout)
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--log-level", "loud")
		assert.Error(t, res.err)
	})

	t.Run("positional arguments", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "image.png")
		assert.Error(t, res.err)
	})

	t.Run("zero width", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--width", "0")
		assert.ErrorIs(t, res.err, imaging.ErrEncodeFailed)
		assert.Empty(t, res.stdout)
	})

	t.Run("pixel limit", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--max-pixels", "100")
		assert.ErrorIs(t, res.err, imaging.ErrPixelLimitExceeded)
	})

	t.Run("write failure", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), failWriter{})
		if assert.Error(t, res.err) {
			assert.Contains(t, res.err.Error(), "failed to write output")
		}
	})
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestRootCommand_InputLimit(t *testing.T) {
	t.Parallel()

	src := pngOf(t, opaqueImage(64, 32))
	limit := strconv.Itoa(len(src))
	under := strconv.Itoa(len(src) - 1)

	t.Run("exactly the limit", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--input-limit", limit, "--strict-input-limit")
		require.NoError(t, res.err)
		assertPPM(t, res.stdout, 8, 4)
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--input-limit", under)
		assert.ErrorIs(t, res.err, imaging.ErrInvalidImageSrc)
		assert.Empty(t, res.stdout)
	})

	t.Run("strict", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--input-limit", under, "--strict-input-limit")
		assert.ErrorIs(t, res.err, ioext.ErrLimitExceeded)
		assert.Empty(t, res.stdout)
	})

	t.Run("trailing garbage is dropped", func(t *testing.T) {
		t.Parallel()
		in := io.MultiReader(bytes.NewReader(src), strings.NewReader(strings.Repeat("x", 4096)))
		res := executeCommand(in, nil, "--input-limit", limit)
		require.NoError(t, res.err)
		assertPPM(t, res.stdout, 8, 4)
	})
}

func TestRootCommand_Environment(t *testing.T) {
	src := pngOf(t, opaqueImage(64, 32))

	t.Setenv("PNMSHRINK_SIZEHINT", "small")
	t.Setenv("PNMSHRINK_WIDTH", "12")
	t.Setenv("PNMSHRINK_ASPECT", "ignore")

	res := executeCommand(bytes.NewReader(src), nil)
	require.NoError(t, res.err)
	assertPPM(t, res.stdout, 12, 32)

	// フラグは環境変数より優先される
	res = executeCommand(bytes.NewReader(src), nil, "--width", "40")
	require.NoError(t, res.err)
	assertPPM(t, res.stdout, 40, 32)
}

func TestRootCommand_Environment_InvalidWidth(t *testing.T) {
	t.Setenv("PNMSHRINK_WIDTH", "-3")

	res := executeCommand(bytes.NewReader(nil), nil)
	if assert.Error(t, res.err) {
		assert.Contains(t, res.err.Error(), "invalid width")
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	t.Parallel()

	src := pngOf(t, opaqueImage(64, 32))
	path := filepath.Join(t.TempDir(), "pnmshrink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(`
sizeHint: tiny
height: 6
aspect: ignore
filter: nearest
`)), 0o644))

	t.Run("applied", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--config", path)
		require.NoError(t, res.err)
		assertPPM(t, res.stdout, 16, 6)
	})

	t.Run("overridden by flags", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "-c", path, "-s", "small")
		require.NoError(t, res.err)
		assertPPM(t, res.stdout, 32, 6)
	})

	t.Run("broken file", func(t *testing.T) {
		t.Parallel()
		broken := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(broken, []byte("sizeHint: [tiny"), 0o644))
		res := executeCommand(bytes.NewReader(src), nil, "--config", broken)
		if assert.Error(t, res.err) {
			assert.Contains(t, res.err.Error(), "failed to read config file")
		}
	})
}

func TestRootCommand_Logging(t *testing.T) {
	t.Parallel()

	src := pngOf(t, opaqueImage(64, 32))

	t.Run("debug", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--log-level", "debug")
		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, "shrink spec resolved")
		assert.Contains(t, res.stderr, `"severity":"DEBUG"`)
		assertPPM(t, res.stdout, 8, 4)
	})

	t.Run("dev", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(bytes.NewReader(src), nil, "--dev")
		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, "image written")
		assertPPM(t, res.stdout, 8, 4)
	})
}

func TestConfCommand(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(nil, nil, "conf", "-s", "huge", "--width", "0")
		require.NoError(t, res.err)
		out := string(res.stdout)
		assert.Contains(t, out, "sizeHint: huge\n")
		assert.Contains(t, out, "width: 0\n")
		assert.Contains(t, out, "height: null\n")
		assert.Contains(t, out, "aspect: preserve\n")
		assert.Contains(t, out, "filter: catmull-rom\n")
		assert.Contains(t, out, "limit: 1048576\n")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(nil, nil, "conf", "--json", "--height", "7")
		require.NoError(t, res.err)

		var c map[string]any
		require.NoError(t, jsoniter.Unmarshal(res.stdout, &c))
		assert.Equal(t, "min", c["sizeHint"])
		assert.Nil(t, c["width"])
		assert.EqualValues(t, 7, c["height"])
		assert.Equal(t, "warn", c["logLevel"])
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		res := executeCommand(nil, nil, "conf", "-f", "box")
		assert.Error(t, res.err)
		assert.Empty(t, res.stdout)
	})
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	res := executeCommand(nil, nil, "version")
	require.NoError(t, res.err)
	assert.Equal(t, "pnmshrink UNKNOWN (revision UNKNOWN)\n", string(res.stdout))
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/traPtitech/pnmshrink/logging"
	"github.com/traPtitech/pnmshrink/service/imaging"
	"github.com/traPtitech/pnmshrink/utils/optional"
)

var (
	Version  = "UNKNOWN"
	Revision = "UNKNOWN"
)

const (
	serviceName = "pnmshrink"
	envPrefix   = "PNMSHRINK"

	defaultInputLimit = 1048576
)

// app 1回の実行の状態
type app struct {
	v *viper.Viper
	// configFile 設定ファイルのパス
	configFile string
	// c 設定
	c      Config
	logger *zap.Logger
}

// rootCommand 標準入力の画像をリサイズし、PNMとして標準出力に書き出すコマンド
func rootCommand() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: zap.NewNop(),
	}

	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Shrink images to PNM format via stdin/stdout",
		Long: strings.TrimSpace(`
Resize an image read from stdin and write it to stdout as PNM (PGM, PPM or PAM).

The target size is a square picked by --size-hint, optionally overridden per axis
by --width and --height. --aspect decides how the original aspect ratio is handled
and --filter selects the resampling algorithm.
`),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		// 全コマンド共通の前処理
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			a.logger = a.newLogger(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.logger.Sync()
			return a.shrink(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(
		versionCommand(),
		confCommand(a),
	)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file path")

	flags.Bool("dev", false, "development mode")
	a.bindPFlag(flags, "dev", "dev")
	flags.String("log-level", "warn", "log level written to stderr")
	a.bindPFlag(flags, "logLevel", "log-level")

	flags.StringP("size-hint", "s", imaging.DefaultSizeHint, "resize mode hint ("+strings.Join(imaging.SizeHintNames(), "|")+")")
	a.bindPFlag(flags, "sizeHint", "size-hint")
	flags.Uint32("width", 0, "explicit target width in pixels, overrides the size hint")
	a.bindPFlag(flags, "width", "width")
	flags.Uint32("height", 0, "explicit target height in pixels, overrides the size hint")
	a.bindPFlag(flags, "height", "height")
	flags.StringP("aspect", "a", imaging.DefaultAspectMode.String(), "aspect ratio handling ("+strings.Join(imaging.AspectModeNames(), "|")+")")
	a.bindPFlag(flags, "aspect", "aspect")
	flags.StringP("filter", "f", imaging.DefaultFilter.String(), "resampling filter ("+strings.Join(imaging.FilterNames(), "|")+")")
	a.bindPFlag(flags, "filter", "filter")

	flags.Uint64("input-limit", defaultInputLimit, "maximum input image size in bytes")
	a.bindPFlag(flags, "input.limit", "input-limit")
	flags.Bool("strict-input-limit", false, "fail instead of truncating input larger than --input-limit")
	a.bindPFlag(flags, "input.strict", "strict-input-limit")
	flags.Bool("auto-orient", false, "rotate the image according to its EXIF orientation")
	a.bindPFlag(flags, "imaging.autoOrientation", "auto-orient")
	flags.Int("max-pixels", 0, "maximum number of decoded pixels, 0 for no limit")
	a.bindPFlag(flags, "imaging.maxPixels", "max-pixels")

	return cmd
}

// Execute コマンドを実行します
func Execute() error {
	return rootCommand().Execute()
}

func (a *app) loadConfig() error {
	v := a.v
	if len(a.configFile) > 0 {
		v.SetConfigFile(a.configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(serviceName)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := v.Unmarshal(&a.c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// 幅と高さは「指定なし」と0を区別する
	var err error
	if a.c.Width, err = a.getOptionalUint32("width"); err != nil {
		return err
	}
	if a.c.Height, err = a.getOptionalUint32("height"); err != nil {
		return err
	}

	return a.c.Validate()
}

func (a *app) getOptionalUint32(key string) (optional.Of[uint32], error) {
	if !a.v.IsSet(key) {
		return optional.Of[uint32]{}, nil
	}
	n, err := cast.ToUint32E(a.v.Get(key))
	if err != nil {
		return optional.Of[uint32]{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return optional.From(n), nil
}

func (a *app) newLogger(cmd *cobra.Command) *zap.Logger {
	level := zapcore.DebugLevel
	if !a.c.DevMode {
		// Validateで検証済み
		level, _ = logging.ParseLevel(a.c.LogLevel)
	}
	return logging.CreateNewLogger(cmd.ErrOrStderr(), logging.Options{
		ServiceName:    serviceName,
		ServiceVersion: fmt.Sprintf("%s.%s", Version, Revision),
		Level:          level,
		Development:    a.c.DevMode,
	})
}

func (a *app) bindPFlag(flags *pflag.FlagSet, key, flag string) {
	if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(err)
	}
}

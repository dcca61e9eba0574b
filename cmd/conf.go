package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// confCommand 設定確認・ベース設定ファイル出力用コマンド
func confCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "conf",
		Short: "Print loaded config variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				bs  []byte
				err error
			)
			if asJSON {
				bs, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(a.c, "", "  ")
				bs = append(bs, '\n')
			} else {
				bs, err = yaml.Marshal(a.c)
			}
			if err != nil {
				return fmt.Errorf("unable to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(bs)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON instead of YAML")

	return cmd
}

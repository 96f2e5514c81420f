package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags persistent flags shared by every subcommand
// rootFlags 所有子命令共享的全局参数
type rootFlags struct {
	dir    string // Working directory // 工作目录
	config string // Specified configuration file path // 指定要使用的配置文件路径
}

var configDefault string
var globalFlags = new(rootFlags)

var rootCmd = &cobra.Command{
	Use:           "note-discord-share",
	Short:         "Share Obsidian notes to Discord webhooks",
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpTemplate()
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.dir, "dir", "d", "", "working directory")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.config, "config", "c", "", "config file, defaults to config/config.yaml")
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

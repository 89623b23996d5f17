package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:           "sds-cli",
	Short:         "Inspect SCAP source data streams and their compliance profiles",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func rootPersistentPreRunE(cmd *cobra.Command, args []string) error {
	// init config
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".sds-cli")
		viper.SetConfigType("yaml")
	}
	_ = viper.ReadInConfig()
	applyConfigDefaults(cmd)

	// init logger
	var l *zap.Logger
	if verbose {
		l, _ = zap.NewDevelopment()
	} else {
		l = zap.NewNop()
	}
	logger = l.Sugar()
	return nil
}

// Execute runs the CLI and maps error categories to exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError(err.Error()))
		os.Exit(exitCode(err))
	}
}

var verbose bool

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sds-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cliConfig.Stream, "stream", "", "data stream id (default is the first declared stream)")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.Strict, "strict", cliConfig.Strict, "treat components without catalog digests as integrity failures")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

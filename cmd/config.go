package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultFetchTimeoutSeconds = 30
	defaultFetchRateLimit      = 2
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Format string
	Stream string
	Strict bool
	Fetch  FetchConfig
}

// FetchConfig groups options for resolving out-of-line component
// references.
type FetchConfig struct {
	Enabled     bool
	TimeoutSecs int
	RateLimit   int
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Format: "text",
		Fetch: FetchConfig{
			Enabled:     false,
			TimeoutSecs: defaultFetchTimeoutSeconds,
			RateLimit:   defaultFetchRateLimit,
		},
	}
}

// applyConfigDefaults merges config file values into the runtime config
// when the user did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	if viper.IsSet("defaults.format") {
		setStringFlagIfUnset(cmd.Flags(), "format", viper.GetString("defaults.format"))
		if f := cmd.Flags().Lookup("format"); f == nil || !f.Changed {
			cliConfig.Format = viper.GetString("defaults.format")
		}
	}

	if viper.IsSet("defaults.strict") {
		applyBoolDefault(rootCmd.PersistentFlags(), "strict", viper.GetBool("defaults.strict"), func(v bool) {
			cliConfig.Strict = v
		})
	}

	if viper.IsSet("fetch.enabled") {
		cliConfig.Fetch.Enabled = viper.GetBool("fetch.enabled")
	}
	if viper.IsSet("fetch.timeout_secs") {
		cliConfig.Fetch.TimeoutSecs = viper.GetInt("fetch.timeout_secs")
	}
	if viper.IsSet("fetch.rate_limit") {
		cliConfig.Fetch.RateLimit = viper.GetInt("fetch.rate_limit")
	}
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}

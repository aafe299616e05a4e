package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Terminal quiz trainer",
	Long: "quizdrill asks free-text questions one at a time, grades the answers " +
		"and keeps a log of finished attempts.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/quizdrill/config.yaml)")
	pf.String("db", "", "Path to the SQLite attempt log (overrides QUIZDRILL_DB)")
	pf.String("log-file", "", "Path to the JSON log file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	f := rootCmd.Flags()
	f.String("quiz", "", "Question file (.json, .yaml, .yml); default is the embedded quiz")
	f.String("title", "", "Quiz title (default is derived from the file name)")
	f.Bool("shuffle", false, "Shuffle the questions once at load")
	f.Int("limit", 0, "Ask at most N questions (0 asks all)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration, binding only the given flags so
// that subcommand flags with clashing names stay local.
func loadConfig(cmd *cobra.Command, flags *pflag.FlagSet) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(configFile, flags)
}

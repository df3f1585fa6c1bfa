package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

// app carries what every command shares: the configuration source.
type app struct {
	v *viper.Viper
}

// NewRootCmd builds the command tree. Each call has its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "lms",
		Short: "keep track of persons",
		Long: fmt.Sprintf(`lms (v%s)

A small register of persons, kept in a JSON file,
searchable by firstname.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lms",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lms v%s\n", Version)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.v)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}

	setupFlags(root)

	root.AddCommand(newListCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newSampleCmd(a))
	root.AddCommand(newLinkCmd(a))
	root.AddCommand(newUnlinkCmd(a))
	root.AddCommand(newRelationshipsCmd(a))
	root.AddCommand(newDumpCmd(a))
	root.AddCommand(configCmd)
	root.AddCommand(versionCmd)

	return root
}

// initConfig loads env files and binds the command's flags, so that flags
// win over LMS_* environment variables, which win over defaults.
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	a.v.SetEnvPrefix("lms")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	return a.v.BindPFlags(cmd.Flags())
}

// Execute runs the command line. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

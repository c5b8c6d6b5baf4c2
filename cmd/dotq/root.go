package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.1.0"
)

var (
	// RootCmd is the base command when called without any subcommands.
	RootCmd = &cobra.Command{
		Use:   "dotq",
		Short: "read and edit JSON/YAML documents with dotted paths",
		Long: fmt.Sprintf(`dotq (v%s)

Read, write, delete and check nested values in JSON or YAML documents
using dotted paths such as "server.tls.cert" or "users.0.name".`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: bindFlags,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dotq",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dotq v%s\n", Version)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.AddCommand(getCmd, setCmd, deleteCmd, hasCmd, versionCmd)

	flags := RootCmd.PersistentFlags()
	flags.StringP("file", "f", "-", "document to read, - for stdin")
	flags.String("format", "", "input format (json, yaml); detected from the file extension when empty")
	flags.StringP("output", "o", "", "output format (json, yaml, merge-patch); defaults to the input format")
	flags.String("color", "auto", "colorize status output (auto, always, never)")
	flags.BoolP("verbose", "v", false, "log every document access to stderr")
}

// initConfig loads .env files and maps DOTQ_* environment variables onto
// flags.
func initConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("dotq")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func bindFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	configureColor(viper.GetString("color"), cmd.OutOrStdout())
	return nil
}

// config is the resolved command configuration.
type config struct {
	File    string
	Format  string
	Output  string
	Verbose bool
}

func loadConfig() config {
	return config{
		File:    viper.GetString("file"),
		Format:  viper.GetString("format"),
		Output:  viper.GetString("output"),
		Verbose: viper.GetBool("verbose"),
	}
}

func (c config) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func configureColor(mode string, out io.Writer) {
	switch strings.ToLower(mode) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		f, ok := out.(*os.File)
		color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
	}
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shwimple/shwimple/internal/config"
	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Messages go to out; tests replace it.
var out io.Writer = os.Stdout

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the CLI and reports a failure on stderr, as JSON when
// --json-errors is set. It returns the process exit code.
func execute(args []string, stderr io.Writer) int {
	cmd, a := newRoot()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if a.jsonErrors {
		errors.PrintErrorJSON(stderr, err)
	} else {
		errors.PrintError(err)
	}
	return 1
}

// app carries state shared by commands: the viper instance flags are bound
// to, and the loaded configuration.
type app struct {
	v          *viper.Viper
	cfgFile    string
	dir        string
	jsonErrors bool

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *app) {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "shwimple",
		Short: "Compose and serve server-rendered HTML pages",
		Long: `shwimple builds HTML documents from page files.

A page file is YAML or JSON describing a title, a layout and the
elements of the head, main and body sections. shwimple can:

  • render a page file to HTML or Markdown
  • build every page of a project into a directory
  • serve pages with live reload while you edit
  • publish rendered pages to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./shwimple.yaml)")
	flags.StringVarP(&a.dir, "dir", "C", ".", "project directory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.BoolVar(&a.jsonErrors, "json-errors", false, "report errors as a JSON object on stderr")
	a.bind("log.level", flags.Lookup("log-level"))
	a.bind("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(a),
		buildCmd(a),
		serveCmd(a),
		publishCmd(a),
		versionCmd(),
	)

	return rootCmd, a
}

// bind ties a config key to a flag. Flags only override the config file
// when they are set.
func (a *app) bind(key string, flag *pflag.Flag) {
	_ = a.v.BindPFlag(key, flag)
}

// load reads the configuration and installs the configured logger as the
// slog default.
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.LoadWith(a.v, a.dir, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger, a.closer = logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(a.logger)
	return nil
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(out, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(out, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(out, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

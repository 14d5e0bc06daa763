// Package cli implements the shelter command-line interface. It stands in
// for the catalog screen: list the pets, insert the sample pet, and the
// delete-all placeholder.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelter/internal/paths"
	"github.com/mesh-intelligence/shelter/pkg/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// annotationCatalog marks commands that need an open catalog.
const annotationCatalog = "catalog"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one invocation: resolved config, the logger
// and the single catalog every subcommand uses.
type app struct {
	flags     rootFlags
	configDir string
	dataDir   string
	config    *viper.Viper
	logger    *slog.Logger
	catalog   types.Catalog
}

// NewRootCmd creates the top-level "shelter" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shelter",
		Short: "A local catalog of shelter pets",
		Long:  "Shelter keeps a catalog of pets in a local SQLite file (shelter.db).",
		// Errors are printed once by run, with the matching exit code.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.shelter-db)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newInsertCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newDeleteAllCmd(a))

	return root
}

// Execute runs the CLI and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code. The catalog is
// closed on every path, including command errors.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.closeCatalog(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "shelter:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads config, builds the logger and, for commands annotated with
// annotationCatalog, opens the catalog.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.config = cfg

	level := a.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	a.logger, err = newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}

	if cmd.Annotations[annotationCatalog] == "" {
		return nil
	}
	return a.openCatalog()
}

// openCatalog resolves the data directory and opens the process's single
// catalog instance.
func (a *app) openCatalog() error {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	catalog := sqlite.NewStore(a.logger)
	if err := catalog.Open(types.Config{
		DataDir:  dataDir,
		FileName: a.config.GetString(cfgKeyFileName),
	}); err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	a.catalog = catalog
	a.dataDir = dataDir
	return nil
}

func (a *app) closeCatalog() error {
	if a.catalog == nil {
		return nil
	}
	err := a.catalog.Close()
	a.catalog = nil
	return err
}

// newLogger builds a text logger on w. An empty level means info.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("%w: log level %q", errUsage, level)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// errUsage marks bad command-line input.
var errUsage = errors.New("usage error")

// usageArgs tags positional-argument errors from v as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

// exitCode maps an error to an exit code: bad input and catalog contract
// violations are user errors, everything else is a system error.
func exitCode(err error) int {
	for _, userErr := range []error{
		errUsage,
		types.ErrConstraintViolation,
		types.ErrUnknownColumn,
		types.ErrInvalidValues,
		types.ErrInvalidGender,
		types.ErrNotFound,
	} {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}

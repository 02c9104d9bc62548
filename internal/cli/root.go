package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pablasso/kanban/internal/app"
	"github.com/pablasso/kanban/internal/config"
	"github.com/pablasso/kanban/internal/tui"
	"github.com/pablasso/kanban/internal/version"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	backend    string
	ephemeral  bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "A three-column task board for the terminal",
		Long: `Kanban keeps tasks in three columns: todo, Running and Completed.
Run it without arguments to open the board. Only the todo column is saved
between sessions.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultConfigFile+")")
	pf.StringVar(&opts.backend, "backend", "", "storage backend: file|redis|memory")
	pf.BoolVar(&opts.ephemeral, "ephemeral", false, "keep the board in memory only")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newMoveCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadConfig applies flag overrides on top of the file and environment.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *globalOptions) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.Open(cmd.Context(), cfg)
}

func runBoard(cmd *cobra.Command, opts *globalOptions) error {
	a, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return tui.Run(ctx, a.Store)
}

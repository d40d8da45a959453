// Command i18nsync keeps JSON translation dictionaries in step with the
// data-i18n annotations of an HTML project.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runContext(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return runContext(context.Background(), args, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "i18nsync [TARGET] [ROOT]",
		Short: "Synchronize translation dictionaries with data-i18n annotations",
		Long: `i18nsync scans the HTML files under ROOT for data-i18n annotations and
reconciles the JSON dictionaries in ROOT/locales with them: missing keys are
added (optionally machine-translated), keys no longer used are removed.

TARGET names a single dictionary (e.g. "fr" or "locales/fr.json"). Without it,
every dictionary except the reference ones is updated.`,
		Args:          cobra.MaximumNArgs(2),
		Version:       i18nsync.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, rootArg := positional(args)
			return syncOnce(cmd.Context(), cmd, o, target, rootArg, stdout, stderr)
		},
	}
	o.bind(root.PersistentFlags())

	root.AddCommand(
		newCheckCommand(o, stdout, stderr),
		newExtractCommand(o, stdout, stderr),
		newWatchCommand(o, stdout, stderr),
		newVersionCommand(stdout),
		newConfigCommand(o, stdout, stderr),
	)

	return root
}

func positional(args []string) (target, root string) {
	if len(args) > 0 {
		target = args[0]
	}
	if len(args) > 1 {
		root = args[1]
	}
	return target, root
}

// setup resolves configuration and builds the app for one command.
func setup(cmd *cobra.Command, o *options, rootArg string, stdout, stderr io.Writer) (*app, error) {
	logger := newLogger(stderr, o)
	cfg, err := loadConfig(o, cmd.Flags(), logger, rootArg)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, o, stdout, logger)
}

func syncOnce(ctx context.Context, cmd *cobra.Command, o *options, target, rootArg string, stdout, stderr io.Writer) error {
	a, err := setup(cmd, o, rootArg, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if target == "" && !o.quiet {
		fmt.Fprintln(stdout, "Updating all JSON files...")
	}

	report, err := a.syncer.Sync(ctx, i18nsync.SyncRequest{
		Root:   a.cfg.Root,
		Target: target,
		Flags:  a.cfg.ReconcileFlags(),
	})
	a.finish()
	if err != nil {
		return err
	}

	if failed := report.Failed(); len(failed) > 0 {
		a.logger.Warn("some dictionaries were not fully updated", "count", len(failed))
	}
	if !o.quiet {
		fmt.Fprintln(stdout, "Done!")
	}
	return nil
}

func newCheckCommand(o *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check [TARGET] [ROOT]",
		Short: "Report dictionaries that are out of date without writing them",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, rootArg := positional(args)
			a, err := setup(cmd, o, rootArg, stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()

			flags := a.cfg.ReconcileFlags()
			report, err := a.syncer.Check(cmd.Context(), i18nsync.SyncRequest{
				Root:   a.cfg.Root,
				Target: target,
				Flags:  flags,
			})
			if err != nil {
				return err
			}

			drifted := report.Drifted(flags)
			for _, f := range drifted {
				fmt.Fprintf(stdout, "%s: %d missing, %d stale", f.Path, len(f.Diff.Missing), len(f.Diff.Stale))
				if flags.SortKeys && f.Diff.Reordered {
					fmt.Fprint(stdout, ", unsorted")
				}
				fmt.Fprintln(stdout)
			}
			for _, lerr := range report.LoadErrors {
				fmt.Fprintf(stderr, "warning: %v\n", lerr)
			}

			if len(drifted) > 0 {
				return fmt.Errorf("%d of %d dictionaries are out of date", len(drifted), len(report.Files))
			}
			if !o.quiet {
				fmt.Fprintf(stdout, "%d dictionaries up to date\n", len(report.Files))
			}
			return nil
		},
	}
}

func newExtractCommand(o *options, stdout, stderr io.Writer) *cobra.Command {
	var bindings bool

	cmd := &cobra.Command{
		Use:   "extract [ROOT]",
		Short: "Print the keys and texts found in the markup",
		Long: `Print the canonical key→text mapping as a dictionary document, suitable
for seeding the reference dictionary. With --bindings, list every annotation
with the file and element it was found on instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rootArg string
			if len(args) > 0 {
				rootArg = args[0]
			}
			a, err := setup(cmd, o, rootArg, stdout, stderr)
			if err != nil {
				return err
			}
			defer a.close()

			root, err := a.syncer.ResolveRoot(a.cfg.Root)
			if err != nil {
				return err
			}
			if bindings {
				return printBindings(stdout, a, root)
			}
			return printCanonical(cmd.Context(), stdout, a, root)
		},
	}
	cmd.Flags().BoolVar(&bindings, "bindings", false, "List each annotation with its file and element")

	return cmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "%s %s\n", i18nsync.Name, i18nsync.FullVersion())
			if i18nsync.BuildDate != "" {
				fmt.Fprintf(stdout, "built %s\n", i18nsync.BuildDate)
			}
		},
	}
}

// exitCode maps an error to a process exit status.
func exitCode(err error) int {
	var dirErr *i18nsync.DirectoryNotFoundError
	var dictErr *i18nsync.DictionaryNotFoundError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &dirErr), errors.As(err, &dictErr):
		return 2
	default:
		return 1
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/tmplwalk/internal/config"
	"github.com/dshills/tmplwalk/internal/fsutil"
	"github.com/dshills/tmplwalk/internal/logger"
	"github.com/dshills/tmplwalk/internal/merge"
	"github.com/dshills/tmplwalk/internal/render"
	"github.com/dshills/tmplwalk/internal/walker"
	"github.com/dshills/tmplwalk/internal/watch"
	"github.com/spf13/cobra"
)

// Render flags
var (
	flagOutput    string
	flagExtension string
	flagNamespace string
	flagEngine    string
	flagLogLevel  string
	flagWatch     bool
)

var errWatchTarget = errors.New("--watch requires an --output that does not contain the source tree")

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Destination root (default: render in place)")
	cmd.Flags().StringVarP(&flagExtension, "extension", "e", "", "Only render files with this extension and strip it; copy all other files")
	cmd.Flags().StringVarP(&flagNamespace, "namespace", "n", "", "Name the merged configuration is bound to in templates (default \"config\")")
	cmd.Flags().StringVar(&flagEngine, "engine", "", "Template engine (text, html)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Re-render on every change to the source tree or configuration")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagOutput != "" {
		m["output"] = flagOutput
	}
	if flagExtension != "" {
		m["extension"] = flagExtension
	}
	if flagNamespace != "" {
		m["namespace"] = flagNamespace
	}
	if flagEngine != "" {
		m["engine"] = flagEngine
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	return m
}

func runRender(cmd *cobra.Command, args []string) error {
	source, confs := args[0], args[1:]

	settings, err := config.Load(buildOverrides())
	if err != nil {
		fail(ExitUsageError, err)
		return nil
	}
	if err := settings.Validate(); err != nil {
		fail(ExitUsageError, err)
		return nil
	}

	if flagWatch {
		if err := checkWatchTarget(source, settings.Output); err != nil {
			fail(ExitUsageError, err)
			return nil
		}
	}

	log, err := logger.New(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		fail(ExitUsageError, err)
		return nil
	}
	engine, err := render.Get(settings.Engine)
	if err != nil {
		fail(ExitUsageError, err)
		return nil
	}

	w := walker.New(
		walker.WithRule(walker.ExtensionRule(settings.Extension)),
		walker.WithEngine(engine),
		walker.WithLogger(log),
	)
	renderOnce := func() error {
		_, err := w.Walk(merge.Paths(confs...), source, settings.Output, settings.Namespace)
		return err
	}

	if err := renderOnce(); err != nil {
		if errors.Is(err, walker.ErrInvalidNamespace) {
			fail(ExitUsageError, err)
		} else {
			fail(ExitRuntimeError, err)
		}
		return nil
	}

	if !flagWatch {
		return nil
	}

	watcher, err := watch.New(log, source, settings.Output, confs)
	if err != nil {
		fail(ExitRuntimeError, err)
		return nil
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("source", source).Msg("watching for changes")
	if err := watcher.Run(ctx, renderOnce); err != nil {
		fail(ExitRuntimeError, err)
	}
	return nil
}

// checkWatchTarget rejects outputs the watcher would have to ignore the whole
// source tree for: in place, the source itself, or an ancestor of it.
func checkWatchTarget(source, output string) error {
	if output == "" {
		return errWatchTarget
	}
	src, err := fsutil.Resolve(source)
	if err != nil {
		return fmt.Errorf("resolving source %s: %w", source, err)
	}
	out, err := fsutil.Resolve(output)
	if err != nil {
		return fmt.Errorf("resolving output %s: %w", output, err)
	}
	if fsutil.Within(out, src) {
		return fmt.Errorf("%w: %s", errWatchTarget, output)
	}
	return nil
}

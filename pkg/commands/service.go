package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/reconcile"
	"tableflip.dev/packlist/pkg/remote"
	"tableflip.dev/packlist/pkg/sharing"
	"tableflip.dev/packlist/pkg/store"
)

type runner interface {
	Do(ctx context.Context) error
}

// loadService opens the configured local store and, when configured, the
// remote store. The returned func closes both.
func loadService() (*app.Service, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if user.User != "" {
		cfg.User = user.User
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := &app.Service{
		Persistence: p,
		User:        app.UserContext{UserID: cfg.User},
	}
	closers := []func() error{p.Close}
	done := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	if cfg.Remote.Enabled() {
		r, err := remote.Open(cfg.Remote)
		if err != nil {
			done()
			return nil, nil, err
		}
		closers = append(closers, r.Close)
		log := newLogger()
		svc.Sync = reconcile.New(r, log)
		svc.Sharing = sharing.New(r, r, log)
		svc.Directory = r
	}
	return svc, done, nil
}

func newLogger() *slog.Logger {
	if !user.Verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// run builds a runner against a freshly loaded service and executes it.
func run(cmd *cobra.Command, build func(svc *app.Service) runner) error {
	return runContext(cmd.Context(), cmd, build)
}

func runContext(ctx context.Context, cmd *cobra.Command, build func(svc *app.Service) runner) error {
	cmd.SilenceUsage = true
	svc, done, err := loadService()
	if err != nil {
		return output.HandleError(err)
	}
	defer done()
	return output.HandleError(build(svc).Do(ctx))
}

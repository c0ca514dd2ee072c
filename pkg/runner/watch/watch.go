// Package watch contains the runner that follows local changes.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/printers"
	"tableflip.dev/packlist/pkg/store"
)

// Watch redraws the trip dashboard whenever the current user's stored
// snapshot changes, until ctx is cancelled.
type Watch struct {
	ShowID  bool
	Service *app.Service
}

func (w *Watch) Do(ctx context.Context) error {
	events, err := w.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if err := w.render(ctx, nil); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := w.render(ctx, &ev); err != nil {
				return err
			}
		}
	}
}

func (w *Watch) render(ctx context.Context, ev *store.Event) error {
	report, err := w.Service.Report(ctx)
	if err != nil {
		return err
	}
	faint := color.New(color.Faint)
	stamp := time.Now().Format("15:04:05")
	switch {
	case ev == nil:
		_, _ = faint.Fprintf(color.Output, "%s watching for changes\n", stamp)
	case ev.Type == store.EventInvalidated:
		_, _ = faint.Fprintf(color.Output, "%s store changed\n", stamp)
	default:
		_, _ = faint.Fprintf(color.Output, "%s %s changed\n", stamp, ev.Namespace)
	}
	_, _ = fmt.Fprintln(color.Output, "")
	pp := printers.PrettyPrint{ShowID: w.ShowID}
	pp.Dashboard(report)
	return nil
}

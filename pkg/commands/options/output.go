package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/apperr"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError reports err for the selected output. A skipped operation
// (blank required field) is a notice, not a failure.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrValidationNoop) {
		if o.JSON {
			return o.print(map[string]string{"skipped": err.Error()})
		}
		_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, "skipped: %v\n", err)
		return nil
	}
	if o.JSON {
		return o.print(map[string]string{"error": err.Error()})
	}
	return err
}

func (o *OutputOptions) print(out map[string]string) error {
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

package printers

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

// JSON writes v as indented JSON to color.Output.
func JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

// Done prints a short confirmation line.
func Done(format string, args ...interface{}) {
	_, _ = color.New(color.FgGreen).Fprintf(color.Output, format+"\n", args...)
}

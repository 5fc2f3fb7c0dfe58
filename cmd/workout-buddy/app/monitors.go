package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/workout-buddy/internal/screen"
)

func newMonitorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List the monitors that can be captured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			capturer := screen.New()
			defer capturer.Close()

			monitors, err := capturer.Monitors()
			if err != nil {
				return err
			}
			return printMonitors(cmd.OutOrStdout(), monitors)
		},
	}
}

func printMonitors(out io.Writer, monitors []screen.Monitor) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tSIZE\tORIGIN")
	for _, m := range monitors {
		fmt.Fprintf(w, "%d\t%dx%d\t%d,%d\n", m.Index, m.Width, m.Height, m.X, m.Y)
	}
	return w.Flush()
}

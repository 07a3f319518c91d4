// Command mindiff prints a compressed line-by-line diff between two text
// files. Unchanged lines are prefixed with " ", deletions with "-",
// insertions with "+", and lines that replaced a similar line with "!".
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/mindiff"
	"github.com/spf13/cobra"
)

// versionTag is populated during link time.
var versionTag = "dev"

// App holds the application's dependencies, injectable for testing.
type App struct {
	// Out receives the diff rows and the usage message.
	Out io.Writer
}

// Run compares file1 and file2 and streams the resulting rows to Out.
func (a *App) Run(file1, file2 string) error {
	rows, err := mindiff.CompareFiles(file1, file2)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(a.Out)
	for row := range rows {
		if _, err := io.WriteString(w, row.String()); err != nil {
			return err
		}
	}
	return w.Flush()
}

// NewRootCmd builds the root command. A wrong argument count is a usage
// prompt, not an error: the usage message goes to Out and the command
// succeeds.
func NewRootCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:           "mindiff <file1> <file2>",
		Short:         "mindiff - a compressed line-by-line diff",
		Version:       versionTag,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintln(app.Out, "Usage: mindiff <file1> <file2>")
				fmt.Fprintln(app.Out, "Print a compressed line-by-line diff between two text files.")
				return nil
			}
			return app.Run(args[0], args[1])
		},
	}
}

func main() {
	app := &App{Out: os.Stdout}
	if err := NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mindiff: %s\n", err)
		os.Exit(1)
	}
}

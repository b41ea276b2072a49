package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ysh86/lspng/png"
)

// exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError is a bad command line for cmd.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// Run executes lspng with args (args[0] is the program name)
// and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "lspng: ", 0)

	// never nil: cobra falls back to os.Args for nil
	cmdArgs := []string{}
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	root := newRootCommand(stdout)
	root.SetArgs(cmdArgs)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			logger.Println(uerr.err)
			fmt.Fprint(stderr, uerr.cmd.UsageString())
			return exitUsage
		}
		logger.Println(err)
		return exitError
	}
	return exitOK
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "lspng <file>",
		Short:         "Print the width and height of a PNG file",
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := png.Open(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Width: %d, Height: %d\n", f.Width, f.Height)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})

	root.AddCommand(&cobra.Command{
		Use:   "chunks <file>",
		Short: "List every chunk of a PNG file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpChunks(stdout, args[0])
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			Version(stdout)
		},
	})

	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{cmd: cmd, err: err}
		}
		return nil
	}
}

func dumpChunks(w io.Writer, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	defer file.Close()

	var count int64
	s := png.NewScanner(file)
	for s.Scan() {
		s.Chunk().DumpTo(w)
		count++
	}
	if err := s.Err(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s chunks, %s\n", humanize.Comma(count), humanize.Bytes(uint64(s.Offset())))
	return nil
}

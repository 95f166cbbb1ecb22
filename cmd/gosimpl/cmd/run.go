package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/parser"
	"github.com/gosimpl-lang/gosimpl/pkg/gosimpl"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a gosimpl script",
	Long: `Execute a gosimpl program from a file or an inline expression.

Examples:
  # Run a script file
  gosimpl run script.sl

  # Evaluate inline code
  gosimpl run -e 'println("Hello, World!");'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed program (for debugging)")
}

func runScript(cmd *cobra.Command, args []string) error {
	var src, filename string

	switch {
	case evalExpr != "":
		src = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	engine, err := gosimpl.New(
		gosimpl.WithStdlib(),
		gosimpl.WithWorkDir(workDirFor(filename)),
	)
	if err != nil {
		return fmt.Errorf("constructing engine: %w", err)
	}

	var runErr error
	if filename == "<eval>" {
		if dumpAST {
			dumpProgramAST(src)
		}
		_, runErr = engine.Eval(src)
	} else {
		if dumpAST {
			if content, rerr := os.ReadFile(filename); rerr == nil {
				dumpProgramAST(string(content))
			}
		}
		_, runErr = engine.EvalFile(filename)
	}

	if runErr != nil {
		printRunError(runErr)
		return fmt.Errorf("execution failed")
	}

	return nil
}

// workDirFor returns the directory a script file's own @import statements
// should resolve against (spec.md §6 "search the current working
// directory"), defaulting to "." for inline -e code.
func workDirFor(filename string) string {
	if filename == "" || filename == "<eval>" {
		return "."
	}
	dir := filepath.Dir(filename)
	if dir == "" {
		return "."
	}
	return dir
}

// dumpProgramAST parses src on its own (independent of the engine's own
// parse inside Eval/EvalFile) purely to print its structure; a parse
// failure here is silently left for the real Eval/EvalFile call to report.
func dumpProgramAST(src string) {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		return
	}
	fmt.Println("AST:")
	fmt.Println(prog.String())
	fmt.Println()
}

func printRunError(err error) {
	if gerr, ok := err.(*errors.Error); ok {
		color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		fmt.Fprintln(os.Stderr, gerr.Format(color))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

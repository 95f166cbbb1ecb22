package cmd

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/gosimpl-lang/gosimpl/internal/parser"
	"github.com/gosimpl-lang/gosimpl/pkg/gosimpl"
)

var historyPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long: `Read statements from stdin one line at a time, evaluating each
complete statement as soon as it is entered. The prompt changes from
"> " to "+ " while a statement spans multiple lines (spec.md §6).`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVar(&historyPath, "history", defaultHistoryPath(), "path to a sqlite database persisting REPL input history (empty disables history)")
}

// defaultHistoryPath mirrors a typical dotfile location; empty HOME (e.g.
// in a minimal container) falls back to disabling history rather than
// erroring.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".gosimpl_history.db")
}

func runREPL(cmd *cobra.Command, args []string) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	hist := openHistory(historyPath)
	defer hist.Close()

	engine, err := gosimpl.New(gosimpl.WithStdlib())
	if err != nil {
		return fmt.Errorf("constructing engine: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var pending strings.Builder

	prompt := func() {
		if !interactive {
			return
		}
		if pending.Len() == 0 {
			fmt.Print("> ")
		} else {
			fmt.Print("+ ")
		}
	}

	prompt()
	for scanner.Scan() {
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(scanner.Text())

		if !statementLooksComplete(pending.String()) {
			prompt()
			continue
		}

		src := pending.String()
		pending.Reset()

		result, evalErr := engine.Eval(src)
		if evalErr != nil {
			printRunError(evalErr)
		} else if result.Success {
			hist.record(src)
		}

		prompt()
	}

	fmt.Println()
	return scanner.Err()
}

// statementLooksComplete attempts a parse and reports whether the input
// is ready to execute: either it parses cleanly, or the only failure is a
// syntax error unrelated to running out of input (in which case waiting
// for more lines would never fix it, so it's reported right away too).
// Only an "unexpected end of input"/EOF-class parse error asks for another
// line (SPEC_FULL §13 item 2).
func statementLooksComplete(src string) bool {
	_, err := parser.ParseProgram(src)
	if err == nil {
		return true
	}
	return !looksLikeUnexpectedEOF(err.Message)
}

func looksLikeUnexpectedEOF(message string) bool {
	return strings.Contains(message, "unexpected end of input") ||
		strings.Contains(message, `found "EOF"`)
}

// replHistory wraps the optional sqlite-backed history store. A nil *sql.DB
// (history disabled, or the database couldn't be opened) makes every
// method a silent no-op — REPL history is a convenience, not something
// that should ever block interactive use (SPEC_FULL §12's "host-side
// concern, not core state").
type replHistory struct {
	db *sql.DB
}

func openHistory(path string) *replHistory {
	if path == "" {
		return &replHistory{}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &replHistory{}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return &replHistory{}
	}
	return &replHistory{db: db}
}

func (h *replHistory) record(input string) {
	if h == nil || h.db == nil {
		return
	}
	h.db.Exec(`INSERT INTO history (input) VALUES (?)`, input)
}

func (h *replHistory) Close() {
	if h == nil || h.db == nil {
		return
	}
	h.db.Close()
}

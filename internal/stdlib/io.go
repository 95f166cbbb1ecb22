package stdlib

import (
	"bufio"
	"io"
	"os"

	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/evaluator"
	"github.com/gosimpl-lang/gosimpl/internal/value"
)

// IOOptions lets a host redirect the io library's streams away from the
// process's own stdin/stdout — tests in this package and in
// pkg/gosimpl use an in-memory buffer instead.
type IOOptions struct {
	Out io.Writer
	In  io.Reader
}

// IO is the `io` library: grounded on original_source's
// include/simpl/libraries/io.h (io_lib), which registers print,
// println, getln, and getnum over std::cout/std::cin. print/println's
// distinction (no trailing newline vs. one) is SPEC_FULL §13 item 1.
func IO(opts IOOptions) evaluator.Library {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	var reader *bufio.Reader
	if opts.In != nil {
		reader = bufio.NewReader(opts.In)
	} else {
		reader = bufio.NewReader(os.Stdin)
	}

	return evaluator.Library{
		Name: "io",
		Install: func(e *evaluator.Evaluator) *errors.Error {
			if err := e.RegisterFunction("print", []string{"any"}, func(args []value.Value) (value.Value, *errors.Error) {
				io.WriteString(out, value.ToString(args[0]))
				return value.NewEmpty(), nil
			}); err != nil {
				return err
			}
			if err := e.RegisterFunction("println", []string{"any"}, func(args []value.Value) (value.Value, *errors.Error) {
				io.WriteString(out, value.ToString(args[0])+"\n")
				return value.NewEmpty(), nil
			}); err != nil {
				return err
			}
			if err := e.RegisterFunction("getln", nil, func(args []value.Value) (value.Value, *errors.Error) {
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return value.NewText(""), nil
				}
				return value.NewText(trimNewline(line)), nil
			}); err != nil {
				return err
			}
			return e.RegisterFunction("getnum", nil, func(args []value.Value) (value.Value, *errors.Error) {
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return value.NewNumber(-1), nil
				}
				// getnum reuses to-number's own lenient parse (spec.md §9
				// note 1's documented -1-on-failure quirk) rather than
				// defining a second parsing rule.
				n, _ := value.ToNumber(value.NewText(trimNewline(line)))
				return value.NewNumber(n), nil
			})
		},
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// Command gosimpl is the illustrative host binary of SPEC_FULL.md §10: a
// thin CLI wrapping pkg/gosimpl, in the same run/repl/version shape the
// teacher's own cmd/dwscript binary takes.
package main

import (
	"os"

	"github.com/gosimpl-lang/gosimpl/cmd/gosimpl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

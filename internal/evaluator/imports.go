package evaluator

import (
	"os"
	"path/filepath"

	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/lexer"
	"github.com/gosimpl-lang/gosimpl/internal/parser"
)

// execImport resolves `@import NAME` per spec.md §6's module-resolution
// order: a host-registered library named NAME, else a NAME.sl file in
// the engine's working directory, else *ModuleNotFound*. Re-importing a
// module already fully loaded is a no-op; re-entering one currently
// being loaded is *CyclicalImport* (spec.md §8 testable property 8).
func (e *Evaluator) execImport(stmt *ast.ImportStatement) *errors.Error {
	name := stmt.Name
	if e.importing[name] {
		return errors.At(errors.CyclicalImport, stmt.Pos(), "import of %q is already in progress", name)
	}
	if e.imported[name] {
		return nil
	}

	if lib, ok := e.libs[name]; ok {
		e.importing[name] = true
		err := lib.Install(e)
		delete(e.importing, name)
		if err != nil {
			return err
		}
		e.imported[name] = true
		return nil
	}

	path := filepath.Join(e.workDir, name+".sl")
	raw, rerr := os.ReadFile(path)
	if rerr != nil {
		return errors.At(errors.ModuleNotFound, stmt.Pos(),
			"module %q not found (no host library, and no file at %q)", name, path)
	}
	src, derr := lexer.DecodeSource(raw)
	if derr != nil {
		return errors.At(errors.LexError, stmt.Pos(), "%s: %s", path, derr)
	}

	prog, perr := parser.ParseProgram(src)
	if perr != nil {
		return perr
	}

	e.importing[name] = true
	_, err := e.execStatements(prog.Statements)
	delete(e.importing, name)
	if err != nil {
		return err
	}
	e.imported[name] = true
	return nil
}

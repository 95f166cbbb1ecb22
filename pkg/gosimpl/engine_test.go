package gosimpl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gosimpl-lang/gosimpl/internal/config"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/value"
	"github.com/stretchr/testify/require"
)

func TestEvalWithStdlibAndOutput(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(WithStdlib(), WithOutput(&buf))
	require.NoError(t, err)

	result, eerr := e.Eval(`@import io; println("Hello, World!");`)
	require.NoError(t, eerr)
	require.True(t, result.Success)
	require.Equal(t, "Hello, World!\n", buf.String())
}

// TestSetOutputRedirectsAlreadyRegisteredStdlib verifies a SetOutput
// call after construction still reaches the `io` library's print
// natives, even though they were registered (and captured an output
// target) at New() time.
func TestSetOutputRedirectsAlreadyRegisteredStdlib(t *testing.T) {
	var first, second bytes.Buffer
	e, err := New(WithStdlib(), WithOutput(&first))
	require.NoError(t, err)

	_, eerr := e.Eval(`@import io; print("a");`)
	require.NoError(t, eerr)
	require.Equal(t, "a", first.String())

	e.SetOutput(&second)
	_, eerr = e.Eval(`print("b");`)
	require.NoError(t, eerr)
	require.Equal(t, "b", second.String())
	require.Equal(t, "a", first.String())
}

func TestEvalParseErrorDoesNotPanic(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	result, eerr := e.Eval(`let = ;`)
	require.Error(t, eerr)
	require.False(t, result.Success)
}

func TestEvalStateIsLiveAcrossCalls(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	_, eerr := e.Eval(`let counter = 0; def bump() { counter = counter + 1; }`)
	require.NoError(t, eerr)

	_, eerr = e.Eval(`bump(); bump();`)
	require.NoError(t, eerr)

	v, ierr := e.Invoke("bump", nil)
	require.NoError(t, ierr)
	require.Equal(t, value.NewEmpty(), v)
}

func TestRegisterFunctionAndInvokeFromHost(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	require.NoError(t, e.RegisterFunction("double", []string{"number"}, func(args []value.Value) (value.Value, *errors.Error) {
		return value.NewNumber(args[0].RawNumber() * 2), nil
	}))

	v, ierr := e.Invoke("double", []value.Value{value.NewNumber(21)})
	require.NoError(t, ierr)
	require.Equal(t, 42.0, v.RawNumber())
}

func TestWithConfigAppliesLimitsAndWorkDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeter.sl"), []byte(`
		def greet() { return "hi"; }
	`), 0o644))

	cfg, cerr := config.Parse([]byte("work_dir: " + dir + "\n"))
	require.NoError(t, cerr)

	e, err := New(WithConfig(cfg))
	require.NoError(t, err)

	_, eerr := e.Eval(`
		@import greeter
		let g = greet();
	`)
	require.NoError(t, eerr)
}

func TestEvalFileDecodesAndRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sl")
	require.NoError(t, os.WriteFile(path, []byte("let ok = 1 + 1;\n"), 0o644))

	e, err := New()
	require.NoError(t, err)
	result, eerr := e.EvalFile(path)
	require.NoError(t, eerr)
	require.True(t, result.Success)
}

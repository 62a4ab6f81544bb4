package pdftext

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner records the invocation and plays back canned output.
type stubRunner struct {
	name   string
	args   []string
	stdout []byte
	stderr []byte
	err    error
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return s.stdout, s.stderr, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractText(t *testing.T) {
	stub := &stubRunner{stdout: []byte("page one text\fpage two text")}
	e := NewExtractor(testLogger(), "pdftotext").WithRunner(stub)

	text, pages, err := e.ExtractText(context.Background(), []byte("%PDF-1.7 fake"))
	require.NoError(t, err)
	assert.Equal(t, "page one text\fpage two text", text)
	assert.Equal(t, 2, pages, "form feeds separate pages")

	assert.Equal(t, "pdftotext", stub.name)
	require.GreaterOrEqual(t, len(stub.args), 6)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}, stub.args[:5])
	assert.Equal(t, "-", stub.args[len(stub.args)-1], "output goes to stdout")
}

func TestExtractTextSinglePage(t *testing.T) {
	stub := &stubRunner{stdout: []byte("just one page")}
	e := NewExtractor(testLogger(), "").WithRunner(stub)

	_, pages, err := e.ExtractText(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Equal(t, "pdftotext", stub.name, "empty binary path falls back to PATH lookup")
}

func TestExtractTextToolFailure(t *testing.T) {
	stub := &stubRunner{stderr: []byte("Syntax Error: Couldn't read xref table"), err: errors.New("exit status 1")}
	e := NewExtractor(testLogger(), "pdftotext").WithRunner(stub)

	_, _, err := e.ExtractText(context.Background(), []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext")
	assert.Contains(t, err.Error(), "xref table", "stderr rides along for diagnostics")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab...(truncated)", truncate("abcdef", 2))
}

package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportErrorInvokesSink(t *testing.T) {
	var gotFunc, gotFile, gotMsg string
	var gotLine int

	SetErrorFunc(func(function, file string, line int, msg string) {
		gotFunc, gotFile, gotLine, gotMsg = function, file, line, msg
	})
	defer SetErrorFunc(nil)

	ReportError("boom: %d", 42)

	assert.Contains(t, gotFunc, "TestReportErrorInvokesSink")
	assert.Contains(t, gotFile, "report_test.go")
	assert.Positive(t, gotLine)
	assert.Equal(t, "boom: 42", gotMsg)
}

func TestSilenceSuppressesReports(t *testing.T) {
	called := false
	SetErrorFunc(func(function, file string, line int, msg string) {
		called = true
	})
	defer SetErrorFunc(nil)

	Silence(true)
	defer Silence(false)

	ReportError("should not be seen")
	assert.False(t, called)
}

func TestWrap(t *testing.T) {
	sentinel := errors.New("sentinel")

	wrapped := Wrap(sentinel, "extra detail")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, sentinel)
	assert.Contains(t, wrapped.Error(), "extra detail")

	assert.Equal(t, sentinel, Wrap(sentinel, ""))
}

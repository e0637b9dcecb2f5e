package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output for the duration of a test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name       string
		verbose    bool
		log        func()
		wantOutput string
	}{
		{"debug verbose", true, func() { Debug("imported %s", "a.md") }, "[DEBUG] imported a.md\n"},
		{"debug quiet", false, func() { Debug("imported %s", "a.md") }, ""},
		{"info verbose", true, func() { Info("deleted %d segment(s)", 3) }, "[INFO] deleted 3 segment(s)\n"},
		{"info quiet", false, func() { Info("deleted %d segment(s)", 3) }, ""},
		{"warn verbose", true, func() { Warn("orphaned %s", "texts/doc-0001.txt") }, "[WARN] orphaned texts/doc-0001.txt\n"},
		{"warn quiet", false, func() { Warn("orphaned %s", "texts/doc-0001.txt") }, "[WARN] orphaned texts/doc-0001.txt\n"},
		{"section verbose", true, func() { Section("Import") }, "\n=== Import ===\n"},
		{"section quiet", false, func() { Section("Import") }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := capture(t, tc.verbose)
			tc.log()
			assert.Equal(t, tc.wantOutput, buf.String())
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			Debug("concurrent %d", i)
			Warn("concurrent %d", i)
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}

package filetype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPDF(t *testing.T) {
	dir := t.TempDir()
	d := New()

	pdf := filepath.Join(dir, "real.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.7\n%test\n"), 0o644))
	assert.NoError(t, d.CheckPDF(pdf))

	// Extension lies; magic bytes win.
	fake := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(fake, []byte("just some text"), 0o644))
	err := d.CheckPDF(fake)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a PDF document")

	missing := filepath.Join(dir, "missing.pdf")
	assert.Error(t, d.CheckPDF(missing))
}

package rendering

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestHTMLToPDF(t *testing.T) {
	chrome := os.Getenv("CHROME_PATH")
	if chrome == "" {
		t.Skip("CHROME_PATH not set")
	}
	tmpl, err := LookupTemplate("Corporate Blue")
	require.NoError(t, err)
	html, err := RenderPortfolio(types.SampleResume(), tmpl)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pdf, err := HTMLToPDF(ctx, html, BrowserOptions{ExecPath: chrome})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestHTMLToPDF_CanceledContext(t *testing.T) {
	if os.Getenv("CHROME_PATH") == "" {
		t.Skip("CHROME_PATH not set")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HTMLToPDF(ctx, "<p>hi</p>", BrowserOptions{ExecPath: os.Getenv("CHROME_PATH")})
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

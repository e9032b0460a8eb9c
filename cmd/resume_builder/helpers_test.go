package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonathan/resume-builder/internal/llm"
	llmmocks "github.com/jonathan/resume-builder/internal/llm/mocks"
)

const janeJSON = `{"name":"Jane Doe","email":"jane@example.com","summary":"Builds APIs.","skills":"Go, SQL","projects":"- Resume builder\n- Job tracker"}`

// configEnv lists every variable the config layer reads.
var configEnv = []string{
	"LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "LLM_TIMEOUT",
	"REDIS_URL", "LLM_CACHE_TTL", "DATABASE_URL", "SQLITE_PATH", "PORT",
	"CORS_ALLOWED_ORIGINS", "MAX_BODY_BYTES", "RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST", "DEFAULT_TEMPLATE", "CHROME_PATH", "LOG_FORMAT", "LOG_LEVEL",
}

// isolateEnv blanks the config environment so defaults apply.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

// resetFlags restores every flag in the command tree to its default so
// values do not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI in-process with stdin and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	var in io.Reader = bytes.NewReader(nil)
	if stdin != "" {
		in = bytes.NewBufferString(stdin)
	}
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeFile writes content under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// mockLLM installs a mock client for the duration of the test and enables
// the assistant with a fake API key.
func mockLLM(t *testing.T) *llmmocks.MockClient {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := llmmocks.NewMockClient(ctrl)
	client.EXPECT().GetModel(gomock.Any()).Return("test-model").AnyTimes()
	client.EXPECT().Close().Return(nil).AnyTimes()

	prev := newLLMClient
	newLLMClient = func(context.Context, *llm.Config, string) (llm.Client, error) {
		return client, nil
	}
	t.Cleanup(func() { newLLMClient = prev })
	t.Setenv("GEMINI_API_KEY", "test-key")
	return client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

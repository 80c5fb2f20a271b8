package livechat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini replies "re: <prompt>" and fails any prompt starting with "fail".
func fakeGemini(t *testing.T, probeStatus int) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var prompts []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		text := req.Contents[0].Parts[0].Text

		mu.Lock()
		prompts = append(prompts, text)
		first := len(prompts) == 1
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case first && probeStatus != http.StatusOK:
			w.WriteHeader(probeStatus)
			fmt.Fprintf(w, `{"error": {"code": %d, "message": "Request had invalid authentication credentials.", "status": "UNAUTHENTICATED"}}`, probeStatus)
		case strings.HasPrefix(text, "fail"):
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": {"code": 404, "message": "model not found", "status": "NOT_FOUND"}}`)
		default:
			data, _ := json.Marshal("re: " + text)
			fmt.Fprintf(w, `{"candidates": [{"content": {"role": "model", "parts": [{"text": %s}]}}]}`, data)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), prompts...)
	}
}

func setupEnv(t *testing.T, apiKey, baseURL string) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("GOOGLE_API_KEY", apiKey)
	t.Setenv("GEMINI_BASE_URL", baseURL)
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("GEMINI_DEBUG", "false")
}

func runCLI(input string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	app := env{stdin: strings.NewReader(input), stdout: &stdout, stderr: &stderr}
	code := app.main(args)
	return code, stdout.String(), stderr.String()
}

func TestLiveChat(t *testing.T) {
	srv, prompts := fakeGemini(t, http.StatusOK)
	setupEnv(t, "test-key", srv.URL+"/")

	code, stdout, stderr := runCLI("hello\nfail please\nstill here\nQuit\nnever sent\n")
	require.Equal(t, 0, code, stderr)

	require.Contains(t, stdout, "Model: gemini-2.5-flash")
	require.Contains(t, stdout, "Model connection successful!")
	require.Contains(t, stdout, "Gemini: re: hello")
	require.NotContains(t, stdout, "Error:")
	require.Contains(t, stderr, "Error: remote error")
	require.Contains(t, stdout, "Gemini: re: still here")
	require.True(t, strings.HasSuffix(stdout, "Goodbye!\n"), stdout)

	recorded := prompts()
	require.Len(t, recorded, 4)
	require.Equal(t, []string{"hello", "fail please", "still here"}, recorded[1:])
}

func TestLiveChatEndOfInput(t *testing.T) {
	srv, prompts := fakeGemini(t, http.StatusOK)
	setupEnv(t, "test-key", srv.URL+"/")

	code, stdout, _ := runCLI("only line\n")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Gemini: re: only line")
	require.NotContains(t, stdout, "Goodbye!")
	require.Len(t, prompts(), 2)
}

func TestLiveChatProbeFailure(t *testing.T) {
	srv, prompts := fakeGemini(t, http.StatusUnauthorized)
	setupEnv(t, "bad-key", srv.URL+"/")

	code, stdout, stderr := runCLI("hello\n")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Connection error:")
	require.Contains(t, stderr, "authentication error")
	require.NotContains(t, stdout, "You: ")
	require.Len(t, prompts(), 1)
}

func TestLiveChatMissingCredential(t *testing.T) {
	srv, prompts := fakeGemini(t, http.StatusOK)
	setupEnv(t, "", srv.URL+"/")

	code, stdout, stderr := runCLI("hello\n")
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "GOOGLE_API_KEY environment variable not set")
	require.Empty(t, prompts())
}

func TestLiveChatRejectsArguments(t *testing.T) {
	setupEnv(t, "test-key", "")

	code, _, stderr := runCLI("", "extra")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "unexpected arguments: extra")
}

func TestLiveChatModelSelection(t *testing.T) {
	tests := []struct {
		Name      string
		EnvModel  string
		Args      []string
		WantCode  int
		WantModel string
		WantErr   string
	}{
		{Name: "Flag overrides unknown environment model", EnvModel: "gpt-4", Args: []string{"-m", "pro"}, WantModel: "gemini-2.5-pro"},
		{Name: "Environment alias", EnvModel: "lite", WantModel: "gemini-2.5-flash-lite"},
		{Name: "Unknown environment model", EnvModel: "gpt-4", WantCode: 1, WantErr: "Error: invalid model \"gpt-4\""},
		{Name: "Unknown flag model", EnvModel: "flash", Args: []string{"-model", "claude"}, WantCode: 1, WantErr: "Error: invalid model \"claude\""},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			srv, prompts := fakeGemini(t, http.StatusOK)
			setupEnv(t, "test-key", srv.URL+"/")
			t.Setenv("GEMINI_MODEL", test.EnvModel)

			code, stdout, stderr := runCLI("quit\n", test.Args...)
			require.Equal(t, test.WantCode, code, stderr)
			if test.WantErr != "" {
				require.Contains(t, stderr, test.WantErr)
				require.Empty(t, prompts())
				return
			}
			require.Contains(t, stdout, "Model: "+test.WantModel)
		})
	}
}

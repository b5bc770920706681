package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatprobe/backend/internal/chat"
	"github.com/chatprobe/backend/internal/cli"
	"github.com/chatprobe/backend/internal/infrastructure/config"
	"github.com/chatprobe/backend/internal/report"
)

func init() {
	color.NoColor = true
}

// scriptedProxy answers each question from a map and fails on unknown ones.
type scriptedProxy struct {
	replies map[string]string
	gotCfg  chat.Config
}

func (p *scriptedProxy) Ask(_ context.Context, history []chat.Message) (string, error) {
	q := history[len(history)-1].Text
	reply, ok := p.replies[q]
	if !ok {
		return "", errors.New("no reply scripted")
	}
	return reply, nil
}

func (p *scriptedProxy) Name() string { return "scripted" }

type stubProber struct {
	reply string
	got   string
}

func (s *stubProber) Run(_ context.Context, message string) (string, error) {
	s.got = message
	return s.reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		LLMProvider:   chat.ProviderOpenAI,
		OpenAIAPIKey:  "sk-test",
		LLMModel:      "gpt-4.1",
		LLMMaxTokens:  200,
		AdminPassword: "test123",
		LogLevel:      "error",
	}
}

func newRoot(t *testing.T, cfg *config.Config, proxy *scriptedProxy, prober *stubProber) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	root := &cobra.Command{Use: "chatprobe", SilenceUsage: true, SilenceErrors: true}
	var flags cli.Flags

	newProxy := func(_ context.Context, c chat.Config) (chat.Proxy, error) {
		proxy.gotCfg = c
		return proxy, nil
	}
	newProber := func(*config.Config, *slog.Logger) (Prober, error) {
		if prober == nil {
			return nil, errMissingAssistant
		}
		return prober, nil
	}

	NewCommands(cfg, &flags, newProxy, newProber).Register(root, &flags, cfg)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	return root, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testData = `[
	{"question":"sky is blue today","correct_answer":"sky is blue","keywords":["sky","blue"]},
	{"question":"unanswerable","correct_answer":"anything","keywords":[]}
]`

func TestRunCommand(t *testing.T) {
	data := writeFile(t, "smoke.json", testData)
	reportPath := filepath.Join(t.TempDir(), "out", "report.json")
	proxy := &scriptedProxy{replies: map[string]string{"sky is blue today": "sky is blue today"}}

	root, out := newRoot(t, testConfig(), proxy, nil)
	root.SetArgs([]string{"run", "--data", data, "--report", reportPath, "--model", "gpt-4o"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "gpt-4o", proxy.gotCfg.Options.Model)
	assert.Contains(t, out.String(), "75%")
	assert.Contains(t, out.String(), "1 case(s) could not be asked")

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(raw, &rep))

	assert.Equal(t, "smoke", rep.Meta.Suite)
	assert.Equal(t, "completed", rep.Meta.State)
	assert.Equal(t, "gpt-4o", rep.Meta.Model)
	require.Len(t, rep.Outcomes, 2)
	assert.Equal(t, 75, rep.Outcomes[0].TextSimilarity)
	assert.Equal(t, 100, rep.Outcomes[0].KeywordCoverage)
	assert.True(t, rep.Outcomes[1].Error)
	assert.Equal(t, 1, rep.Summary.Errors)
}

func TestRunCommand_SetupErrors(t *testing.T) {
	proxy := &scriptedProxy{}

	root, _ := newRoot(t, testConfig(), proxy, nil)
	root.SetArgs([]string{"run", "--data", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, root.Execute())

	cfg := testConfig()
	cfg.OpenAIAPIKey = ""
	root, _ = newRoot(t, cfg, proxy, nil)
	root.SetArgs([]string{"run", "--data", writeFile(t, "ok.json", testData)})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestAskCommand(t *testing.T) {
	proxy := &scriptedProxy{replies: map[string]string{"what is Go?": "A language."}}

	root, out := newRoot(t, testConfig(), proxy, nil)
	root.SetArgs([]string{"ask", "what", "is", "Go?"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "A language.\n", out.String())
}

func TestAskCommand_ProviderFlagPicksDefaultModel(t *testing.T) {
	cfg := testConfig()
	cfg.LLMModel = ""
	cfg.AnthropicAPIKey = "ant-test"
	proxy := &scriptedProxy{replies: map[string]string{"hi": "hello"}}

	root, _ := newRoot(t, cfg, proxy, nil)
	root.SetArgs([]string{"ask", "--provider", "anthropic", "hi"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "anthropic", proxy.gotCfg.Provider)
	assert.Equal(t, "ant-test", proxy.gotCfg.APIKey)
	assert.Equal(t, "claude-sonnet-4-5", proxy.gotCfg.Options.Model)
}

func TestProbeCommand(t *testing.T) {
	prober := &stubProber{reply: "done"}

	root, out := newRoot(t, testConfig(), &scriptedProxy{}, prober)
	root.SetArgs([]string{"probe", "check the refund flow"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "check the refund flow", prober.got)
	assert.Equal(t, "done\n", out.String())

	root, _ = newRoot(t, testConfig(), &scriptedProxy{}, nil)
	root.SetArgs([]string{"probe"})
	err := root.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingAssistant))
}

func TestValidateCommand(t *testing.T) {
	yamlData := writeFile(t, "suite.yaml", "name: smoke\ncases:\n  - question: Ping?\n    correct_answer: Pong\n    keywords: [pong]\n  - question: Hello?\n    correct_answer: Hi\n")

	root, out := newRoot(t, testConfig(), &scriptedProxy{}, nil)
	root.SetArgs([]string{"validate", "--data", yamlData})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), "2 case(s), 1 with keywords"))

	bad := writeFile(t, "bad.json", `[{"correct_answer":"no question"}]`)
	root, _ = newRoot(t, testConfig(), &scriptedProxy{}, nil)
	root.SetArgs([]string{"validate", "--data", bad})
	assert.Error(t, root.Execute())
}

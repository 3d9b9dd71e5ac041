package exec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleRules = `
group g
a	emit("A", text)
[0-9]+	emit("NUM", text)
`

func TestExecuteWithParamsWritesScanner(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rules.txt")
	out := filepath.Join(dir, "scanner.go")
	require.NoError(t, writeFile(in, sampleRules))

	p := &Params{
		PackageName:    "lex",
		InputFilename:  in,
		OutputFilename: out,
	}
	require.NoError(t, ExecuteWithParams(p))

	got, err := readFile(out)
	require.NoError(t, err)
	require.Contains(t, got, "package lex")
	require.Contains(t, got, `emit("A", text)`)
	require.Contains(t, got, `emit("NUM", text)`)
}

func TestExecuteWithParamsWritesDotGraphs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rules.txt")
	nfadot := filepath.Join(dir, "nfa.dot")
	dfadot := filepath.Join(dir, "dfa.dot")
	require.NoError(t, writeFile(in, sampleRules))

	p := &Params{
		InputFilename:        in,
		NfaDotOutputFilename: nfadot,
		DfaDotOutputFilename: dfadot,
	}
	require.NoError(t, ExecuteWithParams(p))

	nfaSrc, err := readFile(nfadot)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(nfaSrc, "digraph NFA_0 {"))

	dfaSrc, err := readFile(dfadot)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dfaSrc, "digraph DFA_0 {"))
}

func TestExecuteWithParamsRejectsBadRules(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rules.txt")
	require.NoError(t, writeFile(in, "not-a-group-header\n"))

	p := &Params{InputFilename: in}
	err := ExecuteWithParams(p)
	require.Error(t, err)
}

func TestParseParamsRejectsExtraArgs(t *testing.T) {
	_, err := ParseParams("lexcore", "a.txt", "b.txt")
	require.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

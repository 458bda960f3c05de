package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdResult struct {
	out, errOut string
	err         error
}

func runCmd(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	if errOut.Len() > 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return cmdResult{out.String(), errOut.String(), err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_exec(t *testing.T) {
	script := writeFile(t, "script.txt", strings.Join([]string{
		"speed add 5",
		"# comment",
		"",
		"speed",
		"sum 1 2",
		"hex 255",
		"neg -0x10",
		"echo \"hello there\" world",
		"retries mult 1.5",
		"reset speed",
	}, "\n"))

	res := runCmd(t, "", "exec", script)
	require.NoError(t, res.err)
	assert.Equal(t, strings.Join([]string{
		"speed = 15",
		"speed = 15",
		"3",
		"0xff",
		"16",
		"hello there world",
		"retries = 4 (mult)",
		"gain = 1",
		"speed = 10",
		"retries = 4",
	}, "\n")+"\n", res.out)
}

func Test_exec_failure(t *testing.T) {
	script := writeFile(t, "bad.txt", "sum 1 2\nbogus\nsum 3 4\n")

	res := runCmd(t, "", "exec", script)
	require.Error(t, res.err)
	assert.Equal(t, "3\n", res.out)
	assert.Contains(t, res.errOut, "bad.txt:2: Error: Unknown command.")

	res = runCmd(t, "", "exec", "-k", script)
	require.EqualError(t, res.err, "1 lines failed")
	assert.Equal(t, "3\n7\n", res.out)
}

func Test_exec_stdin(t *testing.T) {
	res := runCmd(t, "speed div 4\nspeed foo 1\n", "exec", "-k")
	require.Error(t, res.err)
	assert.Equal(t, "speed = 2.5\n", res.out)
	assert.Contains(t, res.errOut, ":2: Error: Unknown math operator 'foo'.")
}

func Test_console(t *testing.T) {
	res := runCmd(t, "sum 1 2\rstatus\r", "console")
	require.NoError(t, res.err)
	assert.Equal(t,
		"tuneshell ready, type help\r\n"+
			"> sum 1 2\r\n3\r\n"+
			"> status\r\ngain = 1\r\nspeed = 10\r\nretries = 3\r\n"+
			"> ",
		res.out)
}

func Test_console_config(t *testing.T) {
	cfg := writeFile(t, "tuneshell.yaml", strings.Join([]string{
		`prompt: "$ "`,
		`banner: ""`,
		`vars:`,
		`  pressure: 2`,
	}, "\n"))

	res := runCmd(t, "pressure pow 3\r\nhelp\r\n\x03ignored\r\n", "--config", cfg, "console")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.out, "$ pressure pow 3\r\npressure = 8\r\n$ help\r\n"), "got %q", res.out)
	assert.Contains(t, res.out, "pressure")
	assert.NotContains(t, res.out, "ignored")
	assert.True(t, strings.HasSuffix(res.out, "$ "), "got %q", res.out)
}

func Test_badConfig(t *testing.T) {
	cfg := writeFile(t, "bad.yaml", "history:\n  size: 0\n")
	res := runCmd(t, "", "--config", cfg, "exec")
	assert.Error(t, res.err)
}

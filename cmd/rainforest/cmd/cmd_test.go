package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.gammaspectra.live/P2Pool/rainforest/cmd/rainforest/cmd"
	"git.gammaspectra.live/P2Pool/rainforest/miner"
	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"git.gammaspectra.live/P2Pool/rainforest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand(t *testing.T, opts ...cmd.Option) (c *cmd.Command) {
	t.Helper()

	c, err := cmd.NewCommand(append([]cmd.Option{cmd.WithHomeDir(t.TempDir())}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var outputBuf bytes.Buffer
	err := newCommand(t,
		cmd.WithArgs(append(args, "--verbosity", "0")...),
		cmd.WithOutput(&outputBuf),
	).Execute(context.Background())
	return outputBuf.String(), err
}

func TestMessage(t *testing.T) {
	out, err := run(t, "-m", "abc")
	require.NoError(t, err)
	require.Equal(t, "out: fed094b8f4151dfda71afa8b1eea8718e9788c8b7dc429a0fb084d1e8c2ba429\n", out)

	out, err = run(t, "--hex", "616263")
	require.NoError(t, err)
	require.Equal(t, "out: fed094b8f4151dfda71afa8b1eea8718e9788c8b7dc429a0fb084d1e8c2ba429\n", out)

	_, err = run(t, "--hex", "zz")
	require.Error(t, err)
}

func TestMessage_Seeded(t *testing.T) {
	msg := rainforest.TestMessage
	out, err := run(t, "--hex", types.Bytes(msg[:]).String(), "-s", "1", "--json")
	require.NoError(t, err)

	var result struct {
		Message types.Bytes `json:"message"`
		Seed    *uint32     `json:"seed"`
		Hash    types.Hash  `json:"hash"`
	}
	require.NoError(t, utils.UnmarshalJSON([]byte(out), &result))
	require.NotNil(t, result.Seed)
	assert.Equal(t, uint32(1), *result.Seed)
	assert.Equal(t, types.Bytes(msg[:]), result.Message)
	assert.Equal(t, types.MustHashFromString("2449775d753c953a18fd060f3524df2c222815b084f709fc94abad507d773595"), result.Hash)

	_, err = run(t, "-m", "abc", "-s", "4294967296")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "-c")
	require.NoError(t, err)
	require.Equal(t, "valid: "+rainforest.ChainVector.String()+"\n", out)
}

func TestNoMode(t *testing.T) {
	_, err := run(t)
	require.ErrorIs(t, err, cmd.ErrNoMode)
}

func TestBench(t *testing.T) {
	out, err := run(t, "-b", "--duration", "300ms", "--interval", "50ms", "-t", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	for _, line := range lines[:len(lines)-1] {
		assert.Contains(t, line, "hashes/s (")
	}
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "total: "))
}

func TestScan(t *testing.T) {
	out, err := run(t, "--scan", "--difficulty", "1000", "-t", "1", "--json")
	require.NoError(t, err)

	var solution miner.Solution
	require.NoError(t, utils.UnmarshalJSON([]byte(out), &solution))
	assert.Equal(t, uint32(161), solution.Nonce)
	assert.Equal(t, types.MustHashFromString("97e7ca9aeb0d4238e39926ae2b3ac8f9379075fe9e8233a22aed01711a1c0900"), solution.Hash)

	_, err = run(t, "--scan", "--difficulty", "0xffffffffffffffffffffffffffffffff", "--count", "16")
	require.ErrorIs(t, err, miner.ErrNotFound)

	_, err = run(t, "--scan", "--nonce-offset", "78")
	require.ErrorIs(t, err, miner.ErrInvalidJob)
}

func TestConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("message: abc\nverbosity: 0\n"), 0o600))

	var outputBuf bytes.Buffer
	err := newCommand(t,
		cmd.WithCfgFile(cfgFile),
		cmd.WithOutput(&outputBuf),
		cmd.WithArgs("--verbosity", "0"),
	).Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, "out: fed094b8f4151dfda71afa8b1eea8718e9788c8b7dc429a0fb084d1e8c2ba429\n", outputBuf.String())
}

func TestEnv(t *testing.T) {
	t.Setenv("RAINFOREST_MESSAGE", "abc")

	out, err := run(t)
	require.NoError(t, err)
	require.Equal(t, "out: fed094b8f4151dfda71afa8b1eea8718e9788c8b7dc429a0fb084d1e8c2ba429\n", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "rainforest v1 "))
}

package scheduler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalPrompter_NonTerminalInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(in, []byte("s3cret\r\n"), 0o600))

	f, err := os.Open(in)
	require.NoError(t, err)

	defer f.Close()

	var out bytes.Buffer

	p := &TerminalPrompter{In: f, Out: &out}

	password, err := p.Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)
	assert.Equal(t, "Password: ", out.String())
}

func TestTerminalPrompter_EmptyInput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(in, nil, 0o600))

	f, err := os.Open(in)
	require.NoError(t, err)

	defer f.Close()

	_, err = (&TerminalPrompter{In: f, Out: &bytes.Buffer{}}).Password("Password: ")
	assert.Error(t, err)
}

func TestOSEnvironment(t *testing.T) {
	t.Setenv("AUTOFETCH_TEST_USER", "dev")
	assert.Equal(t, "dev", OSEnvironment().Getenv("AUTOFETCH_TEST_USER"))
}

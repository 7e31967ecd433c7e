package orchestrator

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/platform"
)

func TestUVCommands(t *testing.T) {
	r := &fakeRunner{}
	uv := &UV{Runner: r}
	ctx := context.Background()

	require.NoError(t, uv.Create(ctx, "myenv", ""))
	require.NoError(t, uv.Create(ctx, "myenv", ">=3.10"))
	require.NoError(t, uv.Install(ctx, "myenv", "requirements.txt"))

	assert.Equal(t, []string{
		"uv venv myenv",
		"uv venv myenv --python >=3.10",
		"uv pip install --python myenv -r requirements.txt",
	}, r.commandLines())
}

func TestUVCustomBinary(t *testing.T) {
	r := &fakeRunner{}
	uv := &UV{Binary: "/opt/bin/uv", Runner: r}
	assert.Equal(t, "/opt/bin/uv", uv.Name())
	require.NoError(t, uv.Create(context.Background(), "env", ""))
	assert.Equal(t, []string{"/opt/bin/uv venv env"}, r.commandLines())
}

func TestVenvCommands(t *testing.T) {
	tests := []struct {
		host    platform.Tag
		install string
	}{
		{platform.Linux, "myenv/bin/python -m pip install -r requirements.txt"},
		{platform.MacOS, "myenv/bin/python -m pip install -r requirements.txt"},
		{platform.Windows, `myenv\Scripts\python.exe -m pip install -r requirements.txt`},
	}

	for _, tt := range tests {
		t.Run(tt.host.String(), func(t *testing.T) {
			r := &fakeRunner{}
			v := &Venv{Host: tt.host, Runner: r}
			ctx := context.Background()

			require.NoError(t, v.Create(ctx, "myenv", ""))
			require.NoError(t, v.Install(ctx, "myenv", "requirements.txt"))
			assert.Equal(t, []string{"python -m venv myenv", tt.install}, r.commandLines())
		})
	}
}

func TestVenvWarnsOnPythonVersion(t *testing.T) {
	var buf bytes.Buffer
	v := &Venv{Runner: &fakeRunner{}, Logger: log.New(&buf)}

	require.NoError(t, v.Create(context.Background(), "myenv", "3.12"))
	assert.Contains(t, buf.String(), "cannot select an interpreter version")
	assert.Contains(t, buf.String(), "3.12")
}

func TestBackendNonZeroExit(t *testing.T) {
	r := &fakeRunner{results: map[string]Result{
		"uv": {ExitCode: 2, Output: []byte("error: No interpreter found\n")},
	}}
	err := (&UV{Runner: r}).Create(context.Background(), "myenv", "3.99")
	require.Error(t, err)

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errors.ErrCodeNonZeroExit, te.Code)
	assert.Equal(t, 2, te.ExitCode)
	assert.Equal(t, "uv venv myenv --python 3.99", te.CommandLine())
	assert.Equal(t, "error: No interpreter found\n", te.Output)
	assert.True(t, errors.Is(err, errors.ErrCodeNonZeroExit))
}

func TestBackendToolNotFound(t *testing.T) {
	r := &fakeRunner{missing: map[string]bool{"uv": true}}
	err := (&UV{Runner: r}).Create(context.Background(), "myenv", "")
	assert.True(t, errors.Is(err, errors.ErrCodeToolNotFound))
}

func TestActivationCommand(t *testing.T) {
	assert.Equal(t, "source myenv/bin/activate", ActivationCommand(platform.Linux, "myenv"))
	assert.Equal(t, "source myenv/bin/activate", ActivationCommand(platform.MacOS, "myenv"))
	assert.Equal(t, `myenv\Scripts\activate.bat`, ActivationCommand(platform.Windows, "myenv"))
}

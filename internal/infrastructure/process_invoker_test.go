package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"thop-experiments/internal/domain"
	"thop-experiments/internal/solver"
)

func lookPath(t *testing.T, name string) string {
	t.Helper()
	p, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return p
}

func TestInvoke_PassesArguments(t *testing.T) {
	echo := lookPath(t, "echo")
	var out bytes.Buffer
	inv := NewProcessInvoker(zap.NewNop(), solver.Binaries{Tuned: echo, Plain: echo}, "", &out, nil)

	job := domain.Job{Variant: domain.VariantTuned, Seed: 42, TimeBudget: 15, InputPath: "in.thop", OutputPath: "out.sol"}
	require.NoError(t, inv.Invoke(context.Background(), job))

	assert.Equal(t, "--mmas --tries 1 --seed 42 --time 15.0 --inputfile in.thop --outputfile out.sol --log", strings.TrimSpace(out.String()))
}

func TestInvoke_IgnoresExitStatus(t *testing.T) {
	falseBin := lookPath(t, "false")
	inv := NewProcessInvoker(zap.NewNop(), solver.Binaries{Tuned: falseBin, Plain: falseBin}, "", nil, nil)

	assert.NoError(t, inv.Invoke(context.Background(), domain.Job{}))
}

func TestInvoke_SpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "acothop")
	inv := NewProcessInvoker(zap.NewNop(), solver.Binaries{Tuned: missing, Plain: missing}, "", nil, nil)

	err := inv.Invoke(context.Background(), domain.Job{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSpawn))
}

func TestPrebuild(t *testing.T) {
	trueBin := lookPath(t, "true")
	falseBin := lookPath(t, "false")
	ctx := context.Background()

	assert.NoError(t, Prebuild(ctx, zap.NewNop(), "", [][]string{{trueBin}, {trueBin, "x"}}, nil))
	assert.Error(t, Prebuild(ctx, zap.NewNop(), "", [][]string{{trueBin}, {falseBin}}, nil))
	assert.True(t, errors.Is(Prebuild(ctx, zap.NewNop(), "", [][]string{{}}, nil), domain.ErrInvalidConfig))
}

package main

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fieldsim/dsp/field"
)

func smallConfig(t *testing.T, extra ...string) config {
	t.Helper()
	args := append([]string{"-points", "16", "-size", "2", "-kernels", "2", "-steps", "2", "-dx", "0.25"}, extra...)
	cfg, err := parseFlags(args, io.Discard)
	require.NoError(t, err)
	return cfg
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.points)
	require.Equal(t, field.AxisModes, cfg.axis)
	require.Equal(t, "fd1", cfg.operator)
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-axis", "diagonal"},
		{"-op", "nope"},
		{"-points", "0"},
		{"-steps", "-1"},
		{"-dx", "0"},
		{"-bogus"},
	} {
		_, err := parseFlags(args, io.Discard)
		require.Error(t, err, "args %v", args)
	}
}

func TestRunAllOperators(t *testing.T) {
	for _, e := range registry {
		for _, axis := range []string{"modes", "points"} {
			t.Run(e.name+"/"+axis, func(t *testing.T) {
				cfg := smallConfig(t, "-op", e.name, "-axis", axis, "-workers", "2")

				var buf bytes.Buffer
				require.NoError(t, run(cfg, &buf))

				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				require.Len(t, lines, 3+1+cfg.steps)
				require.True(t, strings.HasPrefix(lines[0], "# operator="+e.name))

				fields := strings.Fields(lines[3])
				require.Equal(t, "0", fields[0])
				rt, err := strconv.ParseFloat(fields[len(fields)-1], 64)
				require.NoError(t, err)
				require.Less(t, rt, 1e-8)

				for _, line := range lines[4:] {
					require.NotContains(t, line, "NaN")
				}
			})
		}
	}
}

func TestRunReportsStencilOverrun(t *testing.T) {
	cfg, err := parseFlags([]string{"-points", "8", "-op", "fd1"}, io.Discard)
	require.NoError(t, err)
	require.Error(t, run(cfg, io.Discard))
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	printList(&buf)
	for _, e := range registry {
		require.Contains(t, buf.String(), e.name)
	}
}

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

const roundYAML = `
title: Lager 3
company:
  name: Byggmester AS
date: 2026-03-14
location: Lager 3
inspector: Kari Nordmann
items:
  - {category: Brann, question: Nødutganger merket?, status: ok}
  - {category: Orden, question: Ryddige gangveier?, status: avvik, comment: Paller i gang}
findings:
  - {title: Paller i gang, severity: Middels}
`

const sjaYAML = `
title: Arbeid i høyden
responsible: Ola Hansen
hazards:
  - {category: Fall, description: Fall fra stige, probability: 3, consequence: 5}
measures:
  - {description: Bruk sele, responsible: Ola Hansen}
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cli := NewCLI(Options{Output: &out})
	cli.rootCmd.SetArgs(args)
	cli.rootCmd.SetOut(&out)
	cli.rootCmd.SetErr(&errOut)
	err := cli.Execute()
	return strings.TrimSpace(out.String()), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output is a PDF")
}

func TestSafetyRoundCommand(t *testing.T) {
	// Given a safety round and an explicit output path
	in := writeInput(t, "round.yaml", roundYAML)
	out := filepath.Join(t.TempDir(), "reports", "round.pdf")

	// When the command runs
	printed, err := runCLI(t, "safety-round", "-i", in, "-o", out, "--lang", "no")

	// Then the PDF is written where asked
	require.NoError(t, err)
	assert.Equal(t, out, printed)
	assertPDF(t, out)
}

func TestSJACommandDefaultsOutputNextToInput(t *testing.T) {
	in := writeInput(t, "sja.yaml", sjaYAML)

	printed, err := runCLI(t, "sja", "-i", in, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(in), filepath.Dir(printed))
	assert.True(t, strings.HasPrefix(filepath.Base(printed), "Job_safety_analysis-Arbeid_i_høyden-"))
	assertPDF(t, printed)
}

func TestRenderCommand(t *testing.T) {
	in := writeInput(t, "doc.yaml", `
kind: Notat
title: Oppfølging
sections:
  - title: Status
    blocks:
      - {type: heading, text: Oppsummering}
      - {type: key_value, label: Ansvarlig, value: Ola}
`)
	out := filepath.Join(t.TempDir(), "doc.pdf")

	_, err := runCLI(t, "render", "-i", in, "-o", out)
	require.NoError(t, err)
	assertPDF(t, out)
}

func TestCommandErrors(t *testing.T) {
	_, err := runCLI(t, "safety-round")
	assert.Error(t, err, "input is required")

	_, err = runCLI(t, "safety-round", "-i", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := writeInput(t, "empty.yaml", "kind: Notat\ntitle: Tom\nsections: []\n")
	_, err = runCLI(t, "render", "-i", empty)
	assert.ErrorContains(t, err, "report input incomplete")

	in := writeInput(t, "round.yaml", roundYAML)
	_, err = runCLI(t, "safety-round", "-i", in, "--lang", "sv")
	assert.ErrorContains(t, err, "unsupported language")
}

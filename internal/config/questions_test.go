package config

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBank = `
sections:
  - name: communication
    title: Communication
    questions: ["Q1", "Q2"]
  - name: teamwork
    title: Teamwork
    questions: ["Q3"]
  - name: problemSolving
    title: Problem Solving
    questions: ["Q4"]
  - name: adaptability
    title: Adaptability
    questions: ["Q5"]
  - name: leadership
    title: Leadership
    questions: ["Q6"]
  - name: timeManagement
    title: Time Management
    questions: ["Q7"]
`

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBank(t *testing.T) {
	bank, err := LoadBank(writeBank(t, validBank))
	require.NoError(t, err)
	assert.Len(t, bank.Sections, 6)
	assert.Equal(t, "communication", bank.Sections[0].Name)
}

func TestLoadBankRejectsWrongOrder(t *testing.T) {
	swapped := `
sections:
  - name: teamwork
    title: Teamwork
    questions: ["Q"]
  - name: communication
    title: Communication
    questions: ["Q"]
  - name: problemSolving
    title: Problem Solving
    questions: ["Q"]
  - name: adaptability
    title: Adaptability
    questions: ["Q"]
  - name: leadership
    title: Leadership
    questions: ["Q"]
  - name: timeManagement
    title: Time Management
    questions: ["Q"]
`
	_, err := LoadBank(writeBank(t, swapped))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section 0")
}

func TestLoadBankRejectsMissingSection(t *testing.T) {
	_, err := LoadBank(writeBank(t, `
sections:
  - name: communication
    title: Communication
    questions: ["Q"]
`))
	assert.Error(t, err)
}

func TestLoadBankRejectsEmptyPool(t *testing.T) {
	empty := `
sections:
  - name: communication
    title: Communication
    questions: []
  - name: teamwork
    title: Teamwork
    questions: ["Q"]
  - name: problemSolving
    title: Problem Solving
    questions: ["Q"]
  - name: adaptability
    title: Adaptability
    questions: ["Q"]
  - name: leadership
    title: Leadership
    questions: ["Q"]
  - name: timeManagement
    title: Time Management
    questions: ["Q"]
`
	_, err := LoadBank(writeBank(t, empty))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "communication")
}

func TestPick(t *testing.T) {
	bank, err := LoadBank(writeBank(t, validBank))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	q, ok := bank.Pick("communication", rng)
	require.True(t, ok)
	assert.Contains(t, []string{"Q1", "Q2"}, q)

	_, ok = bank.Pick("nonexistent", rng)
	assert.False(t, ok)
}

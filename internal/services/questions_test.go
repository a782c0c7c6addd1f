package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadQuestionBank(t *testing.T) {
	path := writeBank(t, `
questions:
  - prompt: "Tell me about yourself."
    category: behavioral
    difficulty: easy
  - prompt: "Design a URL shortener."
    category: technical
    difficulty: hard
`)

	questions, err := LoadQuestionBank(path)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "Tell me about yourself.", questions[0].Prompt)
	assert.Equal(t, "behavioral", questions[0].Category)
	assert.Equal(t, "easy", questions[0].Difficulty)
	assert.NotEqual(t, questions[0].ID, questions[1].ID)
}

func TestLoadQuestionBankRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"bad category": `
questions:
  - prompt: "Something"
    category: trivia
    difficulty: easy
`,
		"bad difficulty": `
questions:
  - prompt: "Something"
    category: technical
    difficulty: impossible
`,
		"empty prompt": `
questions:
  - prompt: ""
    category: technical
    difficulty: easy
`,
		"no questions": `
questions: []
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadQuestionBank(writeBank(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadQuestionBankMissingFile(t *testing.T) {
	_, err := LoadQuestionBank(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

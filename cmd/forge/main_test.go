package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/roster"
)

func TestResolveSubmissionType(t *testing.T) {
	t.Run("exact name", func(t *testing.T) {
		got, err := resolveSubmissionType("Professional Team Submission")
		require.NoError(t, err)
		assert.Equal(t, roster.SubmissionProfessional, got)
	})

	t.Run("case-insensitive prefix", func(t *testing.T) {
		got, err := resolveSubmissionType("cross")
		require.NoError(t, err)
		assert.Equal(t, roster.SubmissionCrossRegional, got)
	})

	t.Run("prefix for rising star", func(t *testing.T) {
		got, err := resolveSubmissionType("rising")
		require.NoError(t, err)
		assert.Equal(t, roster.SubmissionRisingStar, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := resolveSubmissionType("casual")
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := resolveSubmissionType("")
		assert.Error(t, err)
	})
}

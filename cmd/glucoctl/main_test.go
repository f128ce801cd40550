package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSchemaInMemory(t *testing.T) {
	out := execute(t, "schema", "--memory")

	for _, table := range []string{"glucose", "food_logs", "scores", "surveys", "flashcards", "trivia", "answers", "foods", "diabetes_predictions", "leaderboard_entries", "feedback"} {
		assert.Contains(t, out, "=== Table: "+table+" ===")
	}
}

func TestTokenCommand(t *testing.T) {
	out := execute(t, "token", "--subject", "user-7", "--secret", "cli-secret", "--ttl", "5m")

	raw := strings.TrimSpace(out)
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("cli-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.Subject)
}

func TestTrainCommand(t *testing.T) {
	out := execute(t, "train")

	assert.Contains(t, out, "accuracy:")
	assert.Contains(t, out, "test rows:  72")
	assert.Contains(t, out, "HighBP")
}

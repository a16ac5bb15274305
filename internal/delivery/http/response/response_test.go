package response

import (
	"encoding/json"
	"testing"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileNeverCarriesHash(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "a@b.com",
		PasswordHash: "$2a$10$secret",
		Location:     entity.TextLocation("Lagos"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	raw, err := json.Marshal(NewProfile(account))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.ElementsMatch(t, []string{"id", "email", "location", "createdAt", "updatedAt"}, keys(body))
	assert.Equal(t, "Lagos", body["location"])
	assert.NotContains(t, string(raw), "secret")
}

func TestErrorBodyOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(ErrorBody{Message: "Not Found"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Not Found"}`, string(raw))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}

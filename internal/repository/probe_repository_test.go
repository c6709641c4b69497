package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

func TestProbeTable_RejectsUnknownTable(t *testing.T) {
	// Проверка имени выполняется до обращения к базе, поэтому соединение не нужно.
	repo := NewProbeRepository(nil)

	err := repo.ProbeTable(context.Background(), "profiles; DROP TABLE profiles")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	err = repo.ProbeTable(context.Background(), "admin_users")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

func TestViewAllocations(t *testing.T) {
	store := &mockGenerateRotaStore{
		savedAllocations: []model.Allocation{
			{
				WeekCommencing: "2025-06-30",
				Area:           "Pilots",
				ShiftBlock:     model.ShiftDay1,
				OperatorID:     "op-1",
				OperatorName:   "Pilot One",
				Score:          42,
			},
		},
	}

	allocations, err := ViewAllocations(context.Background(), store, zap.NewNop(), "2025-06-30")
	require.NoError(t, err)

	require.Len(t, allocations, 1)
	assert.Equal(t, "Pilots", allocations[0].Area)
	assert.Equal(t, "Pilot One", allocations[0].OperatorName)
}

func TestViewAllocations_InvalidWeek(t *testing.T) {
	store := &mockGenerateRotaStore{}

	_, err := ViewAllocations(context.Background(), store, zap.NewNop(), "30/06/2025")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWeek)
	assert.True(t, IsClientError(err))
}

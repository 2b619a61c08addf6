package services_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dims(t *testing.T, l, w, h float64) kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(l, w, h)
	require.NoError(t, err)
	return d
}

func TestCapacityValidator_Check(t *testing.T) {
	validator := services.NewCapacityValidator()
	maxWeight := 10.0
	maxDims := dims(t, 2, 2, 2)

	t.Run("weight equal to the maximum should fit", func(t *testing.T) {
		err := validator.Check(10, dims(t, 2, 2, 2), &maxWeight, &maxDims)

		require.NoError(t, err)
	})

	t.Run("weight just above the maximum should not fit", func(t *testing.T) {
		err := validator.Check(10.01, dims(t, 1, 1, 1), &maxWeight, &maxDims)

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		var capErr *errs.CapacityExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, "weight", capErr.Limit)
	})

	t.Run("should name the first oversized side", func(t *testing.T) {
		err := validator.Check(1, dims(t, 2, 3, 9), &maxWeight, &maxDims)

		var capErr *errs.CapacityExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, "width", capErr.Limit)
		assert.Equal(t, 3.0, capErr.Value)
	})

	t.Run("should not rotate the parcel", func(t *testing.T) {
		limit := dims(t, 5, 1, 1)

		err := validator.Check(1, dims(t, 1, 5, 1), &maxWeight, &limit)

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("unset maxima should reject every parcel", func(t *testing.T) {
		require.ErrorIs(t, validator.Check(1, dims(t, 1, 1, 1), nil, &maxDims), errs.ErrCapacityExceeded)
		require.ErrorIs(t, validator.Check(1, dims(t, 1, 1, 1), &maxWeight, nil), errs.ErrCapacityExceeded)
	})
}

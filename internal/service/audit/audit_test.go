package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcore/hospital-api/internal/model"
)

func TestStampCreate(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	a := model.Audit{
		UpdatedAt: &later,
		UpdatedBy: ptr(int64(99)),
	}
	StampCreate(&a, 7, now)

	assert.Equal(t, now, a.CreatedAt)
	require.NotNil(t, a.CreatedBy)
	assert.Equal(t, int64(7), *a.CreatedBy)
	assert.Nil(t, a.UpdatedAt)
	assert.Nil(t, a.UpdatedBy)
}

func TestStampUpdate(t *testing.T) {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	a := model.Audit{CreatedAt: created, CreatedBy: ptr(int64(7))}
	StampUpdate(&a, 12, now)

	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, int64(7), *a.CreatedBy)
	require.NotNil(t, a.UpdatedAt)
	assert.Equal(t, now, *a.UpdatedAt)
	require.NotNil(t, a.UpdatedBy)
	assert.Equal(t, int64(12), *a.UpdatedBy)
}

func ptr(v int64) *int64 { return &v }

package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcore/hospital-api/internal/repository"
)

// fakeStatsRepo answers each count from fixed numbers and records the
// windows it was asked about.
type fakeStatsRepo struct {
	windows []*repository.Window
}

func (f *fakeStatsRepo) record(w *repository.Window) {
	f.windows = append(f.windows, w)
}

func (f *fakeStatsRepo) CountReferrals(ctx context.Context) (int, error) { return 10, nil }

func (f *fakeStatsRepo) CountReferralsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	f.record(w)
	if w != nil {
		return 2, nil
	}
	return 4, nil
}

func (f *fakeStatsRepo) CountReferralsAssignedTo(ctx context.Context, doctorID int64, w *repository.Window) (int, error) {
	f.record(w)
	if w != nil {
		return 1, nil
	}
	return 3, nil
}

func (f *fakeStatsRepo) CountPatients(ctx context.Context) (int, error) { return 20, nil }

func (f *fakeStatsRepo) CountPatientsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	f.record(w)
	if w != nil {
		return 5, nil
	}
	return 8, nil
}

func (f *fakeStatsRepo) CountAdmissions(ctx context.Context) (int, error) { return 30, nil }

func (f *fakeStatsRepo) CountAdmissionsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	f.record(w)
	if w != nil {
		return 6, nil
	}
	return 9, nil
}

func (f *fakeStatsRepo) CountPrescriptions(ctx context.Context) (int, error) { return 40, nil }

func (f *fakeStatsRepo) CountPrescriptionsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	f.record(w)
	if w != nil {
		return 7, nil
	}
	return 11, nil
}

func TestReceptionistStatsKeys(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)

	stats, err := svc.ReceptionistStats(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"referrals":               10,
		"referrals_by_user":       4,
		"referrals_today_by_user": 2,
		"patients":                20,
		"patients_by_user":        8,
		"patients_today_by_user":  5,
	}, map[string]int(stats))
}

func TestClinicianStatsKeys(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)

	stats, err := svc.ClinicianStats(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"referrals":                   10,
		"referrals_to_user":           3,
		"referrals_today_to_user":     1,
		"admissions":                  30,
		"admissions_by_user":          9,
		"admissions_today_by_user":    6,
		"prescriptions":               40,
		"prescriptions_by_user":       11,
		"prescriptions_today_by_user": 7,
	}, map[string]int(stats))
}

func TestTodayWindowIsLocalMidnightTomorrow(t *testing.T) {
	repo := &fakeStatsRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 17, 45, 0, 0, time.Local)
	}

	_, err := svc.ReceptionistStats(context.Background(), 7)
	require.NoError(t, err)

	var windowed *repository.Window
	for _, w := range repo.windows {
		if w != nil {
			windowed = w
			break
		}
	}
	require.NotNil(t, windowed)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local), windowed.From)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), windowed.To)
}

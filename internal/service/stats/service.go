// Package stats computes the per-actor count summaries. Every count is an
// independent query run synchronously at request time; nothing is cached.
package stats

import (
	"context"
	"time"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
)

type StatsService interface {
	ReceptionistStats(ctx context.Context, actorID int64) (model.Stats, error)
	ClinicianStats(ctx context.Context, actorID int64) (model.Stats, error)
}

type Service struct {
	repo repository.StatsRepository
	now  func() time.Time
}

func NewService(repo repository.StatsRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// today returns the [midnight, midnight+24h) window for the server-local
// calendar date.
func (s *Service) today() *repository.Window {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &repository.Window{From: from, To: from.AddDate(0, 0, 1)}
}

func (s *Service) ReceptionistStats(ctx context.Context, actorID int64) (model.Stats, error) {
	today := s.today()
	stats := model.Stats{}

	for _, c := range []struct {
		key   string
		count func() (int, error)
	}{
		{model.StatReferrals, func() (int, error) { return s.repo.CountReferrals(ctx) }},
		{model.StatReferralsByUser, func() (int, error) { return s.repo.CountReferralsCreatedBy(ctx, actorID, nil) }},
		{model.StatReferralsTodayByUser, func() (int, error) { return s.repo.CountReferralsCreatedBy(ctx, actorID, today) }},
		{model.StatPatients, func() (int, error) { return s.repo.CountPatients(ctx) }},
		{model.StatPatientsByUser, func() (int, error) { return s.repo.CountPatientsCreatedBy(ctx, actorID, nil) }},
		{model.StatPatientsTodayByUser, func() (int, error) { return s.repo.CountPatientsCreatedBy(ctx, actorID, today) }},
	} {
		n, err := c.count()
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		stats[c.key] = n
	}
	return stats, nil
}

func (s *Service) ClinicianStats(ctx context.Context, actorID int64) (model.Stats, error) {
	today := s.today()
	stats := model.Stats{}

	for _, c := range []struct {
		key   string
		count func() (int, error)
	}{
		{model.StatReferrals, func() (int, error) { return s.repo.CountReferrals(ctx) }},
		{model.StatReferralsToUser, func() (int, error) { return s.repo.CountReferralsAssignedTo(ctx, actorID, nil) }},
		{model.StatReferralsTodayToUser, func() (int, error) { return s.repo.CountReferralsAssignedTo(ctx, actorID, today) }},
		{model.StatAdmissions, func() (int, error) { return s.repo.CountAdmissions(ctx) }},
		{model.StatAdmissionsByUser, func() (int, error) { return s.repo.CountAdmissionsCreatedBy(ctx, actorID, nil) }},
		{model.StatAdmissionsTodayByUser, func() (int, error) { return s.repo.CountAdmissionsCreatedBy(ctx, actorID, today) }},
		{model.StatPrescriptions, func() (int, error) { return s.repo.CountPrescriptions(ctx) }},
		{model.StatPrescriptionsByUser, func() (int, error) { return s.repo.CountPrescriptionsCreatedBy(ctx, actorID, nil) }},
		{model.StatPrescriptionsTodayByUser, func() (int, error) { return s.repo.CountPrescriptionsCreatedBy(ctx, actorID, today) }},
	} {
		n, err := c.count()
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		stats[c.key] = n
	}
	return stats, nil
}

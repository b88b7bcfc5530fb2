package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/repository"
)

// Statistics summarizes the registered user base.
type Statistics struct {
	TotalUsers int64 `json:"totalUsers"`
	Male       int64 `json:"male"`
	Female     int64 `json:"female"`
	Other      int64 `json:"other"`
}

// SiteUsecase covers user statistics and site-visit tracking.
type SiteUsecase interface {
	Statistics(ctx context.Context) (*Statistics, error)
	VisitCount(ctx context.Context) (int64, error)
	RecordVisit(ctx context.Context, ip string) (int64, error)
}

type siteUsecase struct {
	userRepo  repository.UserRepository
	visitRepo repository.VisitRepository
	logger    *zerolog.Logger
}

// NewSiteUsecase creates a new SiteUsecase instance.
func NewSiteUsecase(
	userRepo repository.UserRepository,
	visitRepo repository.VisitRepository,
	logger *zerolog.Logger,
) SiteUsecase {
	return &siteUsecase{
		userRepo:  userRepo,
		visitRepo: visitRepo,
		logger:    logger,
	}
}

func (u *siteUsecase) Statistics(ctx context.Context) (*Statistics, error) {
	total, err := u.userRepo.CountUsers(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{TotalUsers: total}

	for gender, target := range map[string]*int64{
		"male":   &stats.Male,
		"female": &stats.Female,
		"other":  &stats.Other,
	} {
		g := gender
		count, err := u.userRepo.CountUsers(ctx, &g)
		if err != nil {
			return nil, err
		}
		*target = count
	}

	return stats, nil
}

func (u *siteUsecase) VisitCount(ctx context.Context) (int64, error) {
	return u.visitRepo.Count(ctx)
}

func (u *siteUsecase) RecordVisit(ctx context.Context, ip string) (int64, error) {
	u.logger.Info().Str("ip", ip).Msg("site visit")

	return u.visitRepo.Increment(ctx)
}

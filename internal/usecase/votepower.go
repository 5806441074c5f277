package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

var votePowerTracer = otel.Tracer("votepower")

// VotePowerUsecase derives a voter's weight from two social-graph signals:
// recent channel activity and the provider reputation score. Both fetches
// fail open; a provider outage degrades power to the documented defaults
// instead of blocking voting.
type VotePowerUsecase struct {
	social    SocialGraph
	channel   string
	parentRef string
}

func NewVotePowerUsecase(social SocialGraph, channel string) *VotePowerUsecase {
	if channel == "" {
		channel = domain.Channel
	}
	return &VotePowerUsecase{
		social:    social,
		channel:   channel,
		parentRef: "/" + channel,
	}
}

// Compute calculates the vote power for fid. Only a missing identifier is
// fatal; provider failures degrade to documented defaults.
func (uc *VotePowerUsecase) Compute(ctx context.Context, fid int64) (domain.VotePower, error) {
	ctx, span := votePowerTracer.Start(ctx, "VotePower.Compute")
	defer span.End()

	if fid <= 0 {
		return domain.VotePower{}, domain.InvalidInputError{Reason: "missing fid parameter"}
	}

	zaoCasts := 0
	casts, err := uc.social.GetUserCasts(ctx, fid, domain.CastSampleSize)
	if err != nil {
		span.RecordError(errors.Wrap(err, "casts fetch failed, defaulting activity to 0"))
	} else {
		for _, cast := range casts {
			if cast.InChannel(uc.channel, uc.parentRef) {
				zaoCasts++
			}
		}
	}

	score := domain.DefaultReputationScore
	profiles, err := uc.social.GetUsers(ctx, []int64{fid})
	if err != nil {
		span.RecordError(errors.Wrap(err, "reputation fetch failed, defaulting score"))
	} else if len(profiles) > 0 && profiles[0].NeynarScore > 0 {
		score = profiles[0].NeynarScore
	}

	return domain.VotePower{
		FID:          fid,
		Power:        domain.FinalPower(zaoCasts, score),
		ZaoCasts:     zaoCasts,
		NeynarScore:  score,
		Multiplier:   domain.ReputationMultiplier(score),
		CalculatedAt: time.Now().UTC(),
	}, nil
}

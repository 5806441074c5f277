package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

type mockSocialGraph struct {
	casts     []domain.Cast
	castsErr  error
	castCalls int

	profiles     []domain.Profile
	profilesErr  error
	profileCalls int
	lastFids     []int64

	notifyErr   error
	notifyCalls int
	lastTitle   string
	lastTargets []int64
}

func (m *mockSocialGraph) GetUserCasts(ctx context.Context, fid int64, limit int) ([]domain.Cast, error) {
	m.castCalls++
	return m.casts, m.castsErr
}

func (m *mockSocialGraph) GetUsers(ctx context.Context, fids []int64) ([]domain.Profile, error) {
	m.profileCalls++
	m.lastFids = fids
	return m.profiles, m.profilesErr
}

func (m *mockSocialGraph) SendNotification(ctx context.Context, title, body, targetURL string, targetFids []int64) error {
	m.notifyCalls++
	m.lastTitle = title
	m.lastTargets = targetFids
	return m.notifyErr
}

func channelCasts(n int) []domain.Cast {
	casts := make([]domain.Cast, n)
	for i := range casts {
		casts[i] = domain.Cast{ChannelID: "zao"}
	}
	return casts
}

func TestComputeVotePower(t *testing.T) {
	social := &mockSocialGraph{
		casts:    channelCasts(60),
		profiles: []domain.Profile{{FID: 3, NeynarScore: 0.95}},
	}
	uc := NewVotePowerUsecase(social, "zao")

	vp, err := uc.Compute(context.Background(), 3)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if vp.Power != 6 {
		t.Fatalf("expected power 6, got %d", vp.Power)
	}
	if vp.ZaoCasts != 60 {
		t.Fatalf("expected 60 channel casts, got %d", vp.ZaoCasts)
	}
	if vp.Multiplier != 1.5 {
		t.Fatalf("expected multiplier 1.5, got %v", vp.Multiplier)
	}
	if vp.CalculatedAt.IsZero() {
		t.Fatalf("expected calculatedAt to be set")
	}
}

func TestComputeCountsOnlyChannelCasts(t *testing.T) {
	social := &mockSocialGraph{
		casts: []domain.Cast{
			{ChannelID: "zao"},
			{ParentURL: "https://warpcast.com/~/channel/zao"},
			{ChannelID: "art"},
			{},
		},
		profiles: []domain.Profile{{FID: 3, NeynarScore: 0.6}},
	}
	uc := NewVotePowerUsecase(social, "zao")

	vp, err := uc.Compute(context.Background(), 3)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if vp.ZaoCasts != 2 {
		t.Fatalf("expected 2 channel casts, got %d", vp.ZaoCasts)
	}
}

func TestComputeMissingFid(t *testing.T) {
	social := &mockSocialGraph{}
	uc := NewVotePowerUsecase(social, "zao")

	_, err := uc.Compute(context.Background(), 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if social.castCalls != 0 || social.profileCalls != 0 {
		t.Fatalf("expected no provider calls for missing fid")
	}
}

func TestComputeFailsOpenOnCastsError(t *testing.T) {
	social := &mockSocialGraph{
		castsErr: errors.New("provider down"),
		profiles: []domain.Profile{{FID: 3, NeynarScore: 0.95}},
	}
	uc := NewVotePowerUsecase(social, "zao")

	vp, err := uc.Compute(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected fail-open success, got %v", err)
	}
	if vp.ZaoCasts != 0 {
		t.Fatalf("expected defaulted activity 0, got %d", vp.ZaoCasts)
	}
	// base 1, x1.5 rounds to 2
	if vp.Power != 2 {
		t.Fatalf("expected power 2, got %d", vp.Power)
	}
}

func TestComputeFailsOpenOnReputationError(t *testing.T) {
	social := &mockSocialGraph{
		casts:       channelCasts(10),
		profilesErr: errors.New("provider down"),
	}
	uc := NewVotePowerUsecase(social, "zao")

	vp, err := uc.Compute(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected fail-open success, got %v", err)
	}
	if vp.NeynarScore != 0.5 {
		t.Fatalf("expected defaulted score 0.5, got %v", vp.NeynarScore)
	}
	if vp.Multiplier != 1.0 {
		t.Fatalf("expected neutral multiplier, got %v", vp.Multiplier)
	}
	// base 1+1, x1.0
	if vp.Power != 2 {
		t.Fatalf("expected power 2, got %d", vp.Power)
	}
}

func TestComputeDefaultsWhenScoreMissing(t *testing.T) {
	social := &mockSocialGraph{
		profiles: []domain.Profile{{FID: 3}}, // no score reported
	}
	uc := NewVotePowerUsecase(social, "zao")

	vp, err := uc.Compute(context.Background(), 3)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if vp.NeynarScore != 0.5 {
		t.Fatalf("expected defaulted score 0.5, got %v", vp.NeynarScore)
	}
	if vp.Power != 1 {
		t.Fatalf("expected power 1, got %d", vp.Power)
	}
}

func TestComputeLowEndFloor(t *testing.T) {
	social := &mockSocialGraph{
		profiles: []domain.Profile{{FID: 3, NeynarScore: 0.3}},
	}
	uc := NewVotePowerUsecase(social, "zao")

	vp, err := uc.Compute(context.Background(), 3)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if vp.Power != 1 {
		t.Fatalf("expected floored power 1, got %d", vp.Power)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zabal-art/zabal-hub/internal/domain"
)

type mockLeaderboardRepo struct {
	rows    []domain.LeaderboardRow
	rowsErr error
	lastN   int

	rank    *domain.UserRank
	rankErr error

	savedConfig domain.LeaderboardConfig
	configErr   error

	missing  []int64
	profiles map[int64][2]string
}

func (m *mockLeaderboardRepo) GetTop(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	m.lastN = limit
	if m.rowsErr != nil {
		return nil, m.rowsErr
	}
	if limit > len(m.rows) {
		limit = len(m.rows)
	}
	return m.rows[:limit], nil
}

func (m *mockLeaderboardRepo) GetUserRank(ctx context.Context, fid int64) (*domain.UserRank, error) {
	return m.rank, m.rankErr
}

func (m *mockLeaderboardRepo) UpdateConfig(ctx context.Context, cfg domain.LeaderboardConfig) (domain.LeaderboardConfig, error) {
	if m.configErr != nil {
		return domain.LeaderboardConfig{}, m.configErr
	}
	m.savedConfig = cfg
	return cfg, nil
}

func (m *mockLeaderboardRepo) ListFIDsMissingProfile(ctx context.Context) ([]int64, error) {
	return m.missing, nil
}

func (m *mockLeaderboardRepo) UpdateProfile(ctx context.Context, fid int64, username, pfpURL string) error {
	if m.profiles == nil {
		m.profiles = map[int64][2]string{}
	}
	m.profiles[fid] = [2]string{username, pfpURL}
	return nil
}

type mockSignal struct {
	events []domain.Event
}

func (m *mockSignal) Publish(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

func sampleRows(n int) []domain.LeaderboardRow {
	now := time.Now()
	rows := make([]domain.LeaderboardRow, n)
	for i := range rows {
		rows[i] = domain.LeaderboardRow{
			FID:        int64(i + 1),
			TotalVotes: 100 - i,
			Streak:     i,
			LastVote:   &now,
		}
	}
	return rows
}

func TestGetLeaderboardRanksContiguous(t *testing.T) {
	repo := &mockLeaderboardRepo{rows: sampleRows(10)}
	uc := NewLeaderboardUsecase(repo, &mockSocialGraph{}, nil)

	entries, err := uc.GetLeaderboard(context.Background(), 5)
	if err != nil {
		t.Fatalf("get leaderboard failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("expected rank %d at position %d, got %d", i+1, i, e.Rank)
		}
	}
	if repo.lastN != 5 {
		t.Fatalf("expected storage asked for 5 rows, got %d", repo.lastN)
	}
}

func TestGetLeaderboardDefaultLimit(t *testing.T) {
	repo := &mockLeaderboardRepo{rows: sampleRows(3)}
	uc := NewLeaderboardUsecase(repo, &mockSocialGraph{}, nil)

	entries, err := uc.GetLeaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("get leaderboard failed: %v", err)
	}
	if repo.lastN != domain.DefaultLeaderboardLimit {
		t.Fatalf("expected default limit %d, got %d", domain.DefaultLeaderboardLimit, repo.lastN)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestGetLeaderboardDisplayFallback(t *testing.T) {
	repo := &mockLeaderboardRepo{rows: []domain.LeaderboardRow{
		{FID: 42, Username: "", TotalVotes: 1, Streak: 0},
		{FID: 7, Username: "alice", TotalVotes: 1, Streak: 3},
	}}
	uc := NewLeaderboardUsecase(repo, &mockSocialGraph{}, nil)

	entries, err := uc.GetLeaderboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("get leaderboard failed: %v", err)
	}
	if entries[0].DisplayName != "User 42" {
		t.Fatalf("expected fallback display name, got %q", entries[0].DisplayName)
	}
	if entries[0].DisplayScore != "1 vote" {
		t.Fatalf("expected singular score, got %q", entries[0].DisplayScore)
	}
	if entries[0].DisplayStreak != "No streak" {
		t.Fatalf("expected no streak, got %q", entries[0].DisplayStreak)
	}
	if entries[1].DisplayName != "alice" {
		t.Fatalf("expected username, got %q", entries[1].DisplayName)
	}
	if entries[1].DisplayStreak != "3 days" {
		t.Fatalf("expected 3 days, got %q", entries[1].DisplayStreak)
	}
}

func TestGetLeaderboardStorageFailureIsFatal(t *testing.T) {
	repo := &mockLeaderboardRepo{rowsErr: errors.New("storage down")}
	uc := NewLeaderboardUsecase(repo, &mockSocialGraph{}, nil)

	if _, err := uc.GetLeaderboard(context.Background(), 5); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetUserRankNilWhenUnranked(t *testing.T) {
	repo := &mockLeaderboardRepo{rank: nil}
	uc := NewLeaderboardUsecase(repo, &mockSocialGraph{}, nil)

	rank, err := uc.GetUserRank(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil result, not error: %v", err)
	}
	if rank != nil {
		t.Fatalf("expected nil rank, got %+v", rank)
	}
}

func TestUpdateConfigValidation(t *testing.T) {
	repo := &mockLeaderboardRepo{}
	signal := &mockSignal{}
	uc := NewLeaderboardUsecase(repo, &mockSocialGraph{}, signal)

	_, err := uc.UpdateConfig(context.Background(), domain.LeaderboardConfig{Name: "x"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}

	saved, err := uc.UpdateConfig(context.Background(), domain.LeaderboardConfig{
		Name:        "ZABAL Voters",
		Description: "Weekly voting leaderboard",
	})
	if err != nil {
		t.Fatalf("update config failed: %v", err)
	}
	if saved.Name != "ZABAL Voters" {
		t.Fatalf("unexpected saved config %+v", saved)
	}
	if len(signal.events) != 1 || signal.events[0].Type != "config_updated" {
		t.Fatalf("expected config_updated event, got %+v", signal.events)
	}
}

func TestResolveTopAddressesDropsUnresolvable(t *testing.T) {
	repo := &mockLeaderboardRepo{rows: []domain.LeaderboardRow{
		{FID: 1, Username: "alice", TotalVotes: 7},
		{FID: 2, Username: "bob", TotalVotes: 5},
		{FID: 3, Username: "carol", TotalVotes: 3},
	}}
	social := &mockSocialGraph{profiles: []domain.Profile{
		{FID: 1, VerifiedAddresses: []string{"0x52908400098527886E0F7030069857D2E4169EE7"}},
		{FID: 2}, // no address
		{FID: 3, CustodyAddress: "0x8617E340B3D01FA5F11F306F4090FD50E238070D"},
	}}
	uc := NewLeaderboardUsecase(repo, social, nil)

	resolved, total, err := uc.ResolveTopAddresses(context.Background(), 50)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 considered rows, got %d", total)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved entries, got %d", len(resolved))
	}
	if resolved[0].FID != 1 || resolved[1].FID != 3 {
		t.Fatalf("expected ranked order preserved, got %+v", resolved)
	}
	if resolved[0].Rank != 1 || resolved[1].Rank != 3 {
		t.Fatalf("expected original ranks kept, got %+v", resolved)
	}
}

func TestResolveTopAddressesBulkFailureFatal(t *testing.T) {
	repo := &mockLeaderboardRepo{rows: sampleRows(2)}
	social := &mockSocialGraph{profilesErr: errors.New("provider down")}
	uc := NewLeaderboardUsecase(repo, social, nil)

	if _, _, err := uc.ResolveTopAddresses(context.Background(), 50); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRefreshProfiles(t *testing.T) {
	repo := &mockLeaderboardRepo{missing: []int64{1, 2}}
	social := &mockSocialGraph{profiles: []domain.Profile{
		{FID: 1, Username: "alice", PfpURL: "https://img/1"},
		{FID: 2, Username: "bob", PfpURL: "https://img/2"},
	}}
	uc := NewLeaderboardUsecase(repo, social, nil)

	updated, total, err := uc.RefreshProfiles(context.Background())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if updated != 2 || total != 2 {
		t.Fatalf("expected 2 of 2 updated, got %d of %d", updated, total)
	}
	if repo.profiles[1][0] != "alice" || repo.profiles[2][1] != "https://img/2" {
		t.Fatalf("unexpected stored profiles %+v", repo.profiles)
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitted(id, contestant uint, at time.Time, ratings ...Rating) Entry {
	return Entry{ID: id, ContestantID: contestant, IsDraft: false, CreatedAt: at, Ratings: ratings}
}

func flat(judge uint, score float64) Rating {
	return Rating{JudgeID: judge, Design: score, Functionality: score, Usability: score, MarketPotential: score}
}

func TestRank_ExampleScenario(t *testing.T) {
	now := time.Now()
	contestants := []Participation{
		{ID: 1, UserID: 100},
		{ID: 2, UserID: 200},
	}
	entries := []Entry{
		submitted(10, 100, now, Rating{JudgeID: 9, Design: 8, Functionality: 6, Usability: 7, MarketPotential: 9}),
	}

	changes := Rank(contestants, entries)
	assert.Equal(t, []RankChange{{ParticipationID: 1, UserID: 100, PreviousRank: 0, CurrentRank: 1}}, changes)

	contestants = ApplyRankChanges(contestants, changes)
	assert.Equal(t, 1, contestants[0].CurrentRank)
	assert.Equal(t, 0, contestants[1].CurrentRank)

	// a second judge raises A's average to 8.75; rank stays 1
	entries[0].Ratings = append(entries[0].Ratings, flat(8, 10))
	assert.InDelta(t, 8.75, AverageFor(entries[0]).Average, 1e-9)
	assert.Empty(t, Rank(contestants, entries))
}

func TestRank_OrdersByDescendingAverage(t *testing.T) {
	now := time.Now()
	contestants := []Participation{
		{ID: 1, UserID: 1},
		{ID: 2, UserID: 2},
		{ID: 3, UserID: 3},
		{ID: 4, UserID: 4},
		{ID: 5, UserID: 5},
	}
	entries := []Entry{
		submitted(1, 1, now, flat(9, 4)),
		submitted(2, 2, now, flat(9, 9)),
		submitted(3, 3, now, flat(9, 6)),
		submitted(4, 4, now),
		{ID: 5, ContestantID: 5, IsDraft: true, CreatedAt: now, Ratings: []Rating{flat(9, 10)}},
	}

	got := ApplyRankChanges(contestants, Rank(contestants, entries))

	ranks := map[uint]int{}
	for _, p := range got {
		ranks[p.UserID] = p.CurrentRank
	}
	want := map[uint]int{1: 3, 2: 1, 3: 2, 4: 0, 5: 0}
	if diff := cmp.Diff(want, ranks); diff != "" {
		t.Errorf("ranks mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_UsesLatestSubmittedEntryOnly(t *testing.T) {
	now := time.Now()
	contestants := []Participation{{ID: 1, UserID: 1}, {ID: 2, UserID: 2}}
	entries := []Entry{
		submitted(1, 1, now.Add(-time.Hour), flat(9, 10)),
		submitted(2, 1, now),
		submitted(3, 2, now, flat(9, 3)),
	}

	got := ApplyRankChanges(contestants, Rank(contestants, entries))

	assert.Equal(t, 0, got[0].CurrentRank)
	assert.Equal(t, 1, got[1].CurrentRank)
}

func TestRank_TiesKeepEnrollmentOrder(t *testing.T) {
	now := time.Now()
	contestants := []Participation{{ID: 7, UserID: 70}, {ID: 3, UserID: 30}, {ID: 5, UserID: 50}}
	entries := []Entry{
		submitted(1, 30, now, flat(1, 5)),
		submitted(2, 70, now, flat(1, 5)),
		submitted(3, 50, now, flat(1, 5)),
	}

	got := ApplyRankChanges(contestants, Rank(contestants, entries))

	assert.Equal(t, []int{1, 2, 3}, []int{got[0].CurrentRank, got[1].CurrentRank, got[2].CurrentRank})
}

func TestRank_ShiftsPreviousRankOnlyOnChange(t *testing.T) {
	now := time.Now()
	contestants := []Participation{
		{ID: 1, UserID: 1, CurrentRank: 1, PreviousRank: 4},
		{ID: 2, UserID: 2, CurrentRank: 2, PreviousRank: 0},
		{ID: 3, UserID: 3, CurrentRank: 3, PreviousRank: 2},
	}
	entries := []Entry{
		submitted(1, 1, now, flat(9, 5)),
		submitted(2, 2, now, flat(9, 8)),
		submitted(3, 3, now, flat(9, 1)),
	}

	changes := Rank(contestants, entries)
	want := []RankChange{
		{ParticipationID: 1, UserID: 1, PreviousRank: 1, CurrentRank: 2},
		{ParticipationID: 2, UserID: 2, PreviousRank: 2, CurrentRank: 1},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}

	got := ApplyRankChanges(contestants, changes)
	assert.Equal(t, Participation{ID: 3, UserID: 3, CurrentRank: 3, PreviousRank: 2}, got[2])
}

func TestRank_LosingScoreUnranks(t *testing.T) {
	contestants := []Participation{{ID: 1, UserID: 1, CurrentRank: 1, PreviousRank: 2}}

	changes := Rank(contestants, nil)

	require.Len(t, changes, 1)
	assert.Equal(t, RankChange{ParticipationID: 1, UserID: 1, PreviousRank: 1, CurrentRank: 0}, changes[0])
}

func TestRank_Idempotent(t *testing.T) {
	now := time.Now()
	contestants := []Participation{{ID: 1, UserID: 1}, {ID: 2, UserID: 2}, {ID: 3, UserID: 3}}
	entries := []Entry{
		submitted(1, 1, now, flat(9, 2)),
		submitted(2, 2, now, flat(9, 7)),
	}

	first := ApplyRankChanges(contestants, Rank(contestants, entries))
	second := Rank(first, entries)

	assert.Empty(t, second)
}

func TestRank_ContiguousRanks(t *testing.T) {
	now := time.Now()
	var contestants []Participation
	var entries []Entry
	for i := uint(1); i <= 12; i++ {
		contestants = append(contestants, Participation{ID: i, UserID: i})
		if i%3 == 0 {
			continue
		}
		entries = append(entries, submitted(i, i, now, flat(1, float64(i%5))))
	}

	got := ApplyRankChanges(contestants, Rank(contestants, entries))

	seen := map[int]bool{}
	for _, p := range got {
		if p.CurrentRank > 0 {
			seen[p.CurrentRank] = true
		}
	}
	assert.Len(t, seen, 8)
	for r := 1; r <= 8; r++ {
		assert.True(t, seen[r], "rank %d missing", r)
	}
}

func TestBuildLeaderboard(t *testing.T) {
	now := time.Now()
	c := Contest{
		Contestants: []Participation{
			{ID: 1, UserID: 1, CurrentRank: 0},
			{ID: 2, UserID: 2, CurrentRank: 2, PreviousRank: 1},
			{ID: 3, UserID: 3, CurrentRank: 1, PreviousRank: 2},
			{ID: 4, UserID: 4, CurrentRank: 0},
		},
		Entries: []Entry{
			submitted(20, 2, now, flat(9, 5)),
			{ID: 30, ContestantID: 3, Title: "Drone", CreatedAt: now, Ratings: []Rating{flat(9, 8)}},
		},
	}

	rows := BuildLeaderboard(c)

	var order []uint
	for _, r := range rows {
		order = append(order, r.ParticipationID)
	}
	assert.Equal(t, []uint{3, 2, 1, 4}, order)
	assert.Equal(t, uint(30), rows[0].EntryID)
	assert.Equal(t, "Drone", rows[0].EntryTitle)
	assert.Equal(t, 8.0, rows[0].Rating.Average)
	assert.Equal(t, 1, rows[0].MarksGiven)
	assert.Zero(t, rows[2].EntryID)
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	rows := BuildLeaderboard(Contest{})

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

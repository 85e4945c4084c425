package domain

import "sort"

// RankChange records a contestant whose rank moved during a recomputation.
type RankChange struct {
	ParticipationID uint `json:"participationId"`
	UserID          uint `json:"userId"`
	PreviousRank    int  `json:"previousRank"`
	CurrentRank     int  `json:"currentRank"`
}

// Rank orders contestants by the average rating of their latest submitted entry.
// Contestants without a rated submission are unranked (0). Equal averages keep the
// order of the contestants slice. Only contestants whose rank differs from their
// stored current rank are returned; their old rank becomes the previous rank.
func Rank(contestants []Participation, entries []Entry) []RankChange {
	type scored struct {
		idx int
		avg float64
	}

	var ranked []scored
	for i, c := range contestants {
		e, ok := LatestNonDraftFor(entries, c.UserID)
		if !ok || len(e.Ratings) == 0 {
			continue
		}
		ranked = append(ranked, scored{idx: i, avg: AverageFor(e).Average})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].avg > ranked[b].avg
	})

	next := make([]int, len(contestants))
	for pos, s := range ranked {
		next[s.idx] = pos + 1
	}

	var changes []RankChange
	for i, c := range contestants {
		if next[i] == c.CurrentRank {
			continue
		}
		changes = append(changes, RankChange{
			ParticipationID: c.ID,
			UserID:          c.UserID,
			PreviousRank:    c.CurrentRank,
			CurrentRank:     next[i],
		})
	}

	return changes
}

// ApplyRankChanges returns a copy of the contestants with the changes written back.
func ApplyRankChanges(contestants []Participation, changes []RankChange) []Participation {
	byID := make(map[uint]RankChange, len(changes))
	for _, ch := range changes {
		byID[ch.ParticipationID] = ch
	}

	out := make([]Participation, len(contestants))
	for i, c := range contestants {
		if ch, ok := byID[c.ID]; ok {
			c.PreviousRank = ch.PreviousRank
			c.CurrentRank = ch.CurrentRank
		}
		out[i] = c
	}

	return out
}

type LeaderboardRow struct {
	ParticipationID uint          `json:"participationId"`
	UserID          uint          `json:"userId"`
	User            *Profile      `json:"user,omitempty"`
	IsActive        bool          `json:"isActive"`
	CurrentRank     int           `json:"currentRank"`
	PreviousRank    int           `json:"previousRank"`
	EntryID         uint          `json:"entryId,omitempty"`
	EntryTitle      string        `json:"entryTitle,omitempty"`
	MarksGiven      int           `json:"marksGiven"`
	Rating          RatingSummary `json:"rating"`
}

// BuildLeaderboard lists ranked contestants by ascending rank followed by the
// unranked ones in enrollment order.
func BuildLeaderboard(c Contest) []LeaderboardRow {
	var ranked, unranked []LeaderboardRow
	for _, p := range c.Contestants {
		row := LeaderboardRow{
			ParticipationID: p.ID,
			UserID:          p.UserID,
			User:            p.User,
			IsActive:        p.IsActive,
			CurrentRank:     p.CurrentRank,
			PreviousRank:    p.PreviousRank,
		}
		if e, ok := LatestNonDraftFor(c.Entries, p.UserID); ok {
			row.EntryID = e.ID
			row.EntryTitle = e.Title
			row.MarksGiven = len(e.Ratings)
			row.Rating = AverageFor(e)
		}

		if p.IsRanked() {
			ranked = append(ranked, row)
		} else {
			unranked = append(unranked, row)
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].CurrentRank < ranked[b].CurrentRank
	})

	rows := make([]LeaderboardRow, 0, len(c.Contestants))
	rows = append(rows, ranked...)

	return append(rows, unranked...)
}

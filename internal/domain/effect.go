package domain

// EffectKind names a side effect a mutation asks to have performed after it commits.
type EffectKind string

const (
	EffectEntrySubmitted     EffectKind = "entry.submitted"
	EffectRatingAdded        EffectKind = "rating.added"
	EffectContestantApplied  EffectKind = "contestant.applied"
	EffectJudgeApplied       EffectKind = "judge.applied"
	EffectContestantApproved EffectKind = "contestant.approved"
	EffectJudgeApproved      EffectKind = "judge.approved"
	EffectContestLiked       EffectKind = "contest.liked"
	EffectActivityRecorded   EffectKind = "activity.recorded"
	EffectLeaderboardStale   EffectKind = "leaderboard.stale"
)

// Effect is a fire-and-forget follow-up of a committed mutation. Failing to
// perform it never undoes the mutation.
type Effect struct {
	Kind      EffectKind `json:"kind"`
	ContestID uint       `json:"contestId"`
	UserID    uint       `json:"userId,omitempty"`
	EntryID   uint       `json:"entryId,omitempty"`
	Activity  string     `json:"activity,omitempty"`
}

// TriggersRecompute reports whether the effect invalidates the contest ranking.
func (e Effect) TriggersRecompute() bool {
	switch e.Kind {
	case EffectEntrySubmitted, EffectRatingAdded, EffectLeaderboardStale:
		return true
	}

	return false
}

func AppliedEffect(role Role, contestID, userID uint) Effect {
	kind := EffectContestantApplied
	if role == RoleJudge {
		kind = EffectJudgeApplied
	}

	return Effect{Kind: kind, ContestID: contestID, UserID: userID}
}

func ApprovedEffect(role Role, contestID, userID uint) Effect {
	kind := EffectContestantApproved
	if role == RoleJudge {
		kind = EffectJudgeApproved
	}

	return Effect{Kind: kind, ContestID: contestID, UserID: userID}
}

func ActivityEffect(contestID, userID uint, activity string) Effect {
	return Effect{Kind: EffectActivityRecorded, ContestID: contestID, UserID: userID, Activity: activity}
}

package domain

import "time"

const DefaultDurationDays = 40

type Prize struct {
	Standing    int     `json:"standing"`
	Name        string  `json:"name"`
	Amount      float64 `json:"prize"`
	Currency    string  `json:"currency"`
	Royalty     float64 `json:"royalty"`
	Description string  `json:"description"`
}

// DefaultPrizes is the prize structure applied to contests created without one.
func DefaultPrizes() []Prize {
	return []Prize{
		{Standing: 1, Name: "First Prize", Amount: 1600, Currency: "USD", Royalty: 5},
		{Standing: 2, Name: "Second Prize", Amount: 800, Currency: "USD", Royalty: 5},
		{Standing: 3, Name: "Third Prize", Amount: 500, Currency: "USD", Royalty: 5},
	}
}

type Criterion struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Contest struct {
	ID                    uint            `json:"id"`
	ShortID               string          `json:"shortId"`
	Name                  string          `json:"name"`
	Slug                  string          `json:"slug"`
	FeaturedImageURL      string          `json:"featuredImageUrl"`
	Description           string          `json:"description"`
	Market                string          `json:"market"`
	Rules                 string          `json:"rules"`
	ProductCategory       string          `json:"productCategory"`
	InnovationCategory    string          `json:"innovationCategory"`
	Geography             string          `json:"geography"`
	DurationDays          int             `json:"duration"`
	StartTime             time.Time       `json:"startTime"`
	Budget                float64         `json:"budget"`
	Views                 int             `json:"views"`
	Shares                int             `json:"shares"`
	Likes                 []uint          `json:"likes"`
	AllowJudgeSignup      bool            `json:"allowJudgeSignup"`
	AllowContestantSignup bool            `json:"allowContestantSignup"`
	IsDraft               bool            `json:"isDraft"`
	Prizes                []Prize         `json:"prizes"`
	Criteria              []Criterion     `json:"criteria"`
	Contestants           []Participation `json:"contestants"`
	Judges                []Participation `json:"judges"`
	Entries               []Entry         `json:"entries,omitempty"`
	NumContestants        int             `json:"numContestants"`
	NumJudges             int             `json:"numJudges"`
	RankVersion           int             `json:"-"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`

	MemberApplication *MemberApplication `json:"memberApplication,omitempty"`
}

// EndTime is the start time shifted by the contest duration in days.
func (c Contest) EndTime() time.Time {
	return c.StartTime.AddDate(0, 0, c.DurationDays)
}

// RefreshCounts recomputes NumContestants and NumJudges from active participations.
func (c *Contest) RefreshCounts() {
	c.NumContestants = countActive(c.Contestants)
	c.NumJudges = countActive(c.Judges)
}

func countActive(ps []Participation) int {
	n := 0
	for _, p := range ps {
		if p.IsActive {
			n++
		}
	}

	return n
}

// ParticipationOf returns the user's participation in either role.
func (c Contest) ParticipationOf(userID uint) (Participation, bool) {
	for _, p := range c.Contestants {
		if p.UserID == userID {
			return p, true
		}
	}
	for _, p := range c.Judges {
		if p.UserID == userID {
			return p, true
		}
	}

	return Participation{}, false
}

// IsActiveJudge reports whether the user holds an approved judge participation.
func (c Contest) IsActiveJudge(userID uint) bool {
	for _, j := range c.Judges {
		if j.UserID == userID && j.IsActive {
			return true
		}
	}

	return false
}

func (c Contest) ActiveJudgeIDs() map[uint]bool {
	ids := make(map[uint]bool, len(c.Judges))
	for _, j := range c.Judges {
		if j.IsActive {
			ids[j.UserID] = true
		}
	}

	return ids
}

func (c Contest) LikedBy(userID uint) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}

	return false
}

// WithApplicationFor attaches the viewer's pending or accepted application, if any.
func (c Contest) WithApplicationFor(userID uint) Contest {
	p, ok := c.ParticipationOf(userID)
	if !ok {
		c.MemberApplication = nil
		return c
	}

	c.MemberApplication = &MemberApplication{
		Type:      p.Role,
		IsPending: !p.IsActive,
		Date:      p.CreatedAt,
	}

	return c
}

type ContestUpdate struct {
	Name                  *string
	Slug                  *string
	FeaturedImageURL      *string
	Description           *string
	Market                *string
	Rules                 *string
	ProductCategory       *string
	InnovationCategory    *string
	Geography             *string
	DurationDays          *int
	StartTime             *time.Time
	Budget                *float64
	AllowJudgeSignup      *bool
	AllowContestantSignup *bool
	IsDraft               *bool
	Prizes                []Prize
	Criteria              []Criterion
}

func (u ContestUpdate) Apply(c Contest) Contest {
	setString(&c.Name, u.Name)
	setString(&c.Slug, u.Slug)
	setString(&c.FeaturedImageURL, u.FeaturedImageURL)
	setString(&c.Description, u.Description)
	setString(&c.Market, u.Market)
	setString(&c.Rules, u.Rules)
	setString(&c.ProductCategory, u.ProductCategory)
	setString(&c.InnovationCategory, u.InnovationCategory)
	setString(&c.Geography, u.Geography)
	if u.DurationDays != nil {
		c.DurationDays = *u.DurationDays
	}
	if u.StartTime != nil {
		c.StartTime = *u.StartTime
	}
	if u.Budget != nil {
		c.Budget = *u.Budget
	}
	setBool(&c.AllowJudgeSignup, u.AllowJudgeSignup)
	setBool(&c.AllowContestantSignup, u.AllowContestantSignup)
	setBool(&c.IsDraft, u.IsDraft)
	if u.Prizes != nil {
		c.Prizes = u.Prizes
	}
	if u.Criteria != nil {
		c.Criteria = u.Criteria
	}

	return c
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

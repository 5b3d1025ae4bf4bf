package models

import "time"

// Ballot type constants
const (
	BallotNormal = "NORMAL"
	BallotBonus  = "BONUS"
)

// Request types

type BallotRequest struct {
	CandidateID string `json:"candidate_id"`
	BallotType  string `json:"ballot_type"`
}

type SubmitVoteRequest struct {
	Ballots []BallotRequest `json:"ballots"`
}

type RegisterAnimeRequest struct {
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Quarter     int        `json:"quarter"`
	AiringFrom  *time.Time `json:"airing_from,omitempty"`
	AiringUntil *time.Time `json:"airing_until,omitempty"`
}

// Response types

type WeekResponse struct {
	ID         string     `json:"id"`
	VoteStatus VoteStatus `json:"vote_status"`
	Year       int        `json:"year"`
	Quarter    int        `json:"quarter"`
	Week       int        `json:"week"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      time.Time  `json:"end_at"`
	ClosesIn   string     `json:"closes_in,omitempty"`
}

type CycleResponse struct {
	At      time.Time `json:"at"`
	Year    int       `json:"year"`
	Quarter int       `json:"quarter"`
	Week    int       `json:"week"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type SeasonYear struct {
	Year    int          `json:"year"`
	Seasons []SeasonType `json:"seasons"`
}

type SeasonsResponse struct {
	Years []SeasonYear `json:"years"`
}

type CandidatesResponse struct {
	WeekID     string           `json:"week_id"`
	Candidates []AnimeCandidate `json:"candidates"`
}

type SubmitVoteResponse struct {
	SubmissionID string `json:"submission_id"`
	Message      string `json:"message"`
}

type SubmissionCountResponse struct {
	WeekID string `json:"week_id"`
	Count  int    `json:"count"`
}

type RolloverResponse struct {
	WeekID string       `json:"week_id"`
	Week   WeekResponse `json:"week"`
}

type RegisterAnimeResponse struct {
	AnimeID  string `json:"anime_id"`
	SeasonID string `json:"season_id"`
}

// Domain types

// VoteSubmission is one principal's vote for one week.
type VoteSubmission struct {
	ID           string    `json:"id"`
	WeekID       string    `json:"week_id"`
	PrincipalKey string    `json:"-"` // Never expose in JSON
	MemberID     *int64    `json:"member_id,omitempty"`
	CookieID     *string   `json:"-"`
	IPHash       *string   `json:"-"`
	UserAgent    *string   `json:"-"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Ballots      []Ballot  `json:"ballots"`
}

type Ballot struct {
	SubmissionID string `json:"-"`
	CandidateID  string `json:"candidate_id"`
	BallotType   string `json:"ballot_type"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewWeekResponse shapes a week for the API with dates in loc.
func NewWeekResponse(w Week, loc *time.Location) WeekResponse {
	return WeekResponse{
		ID:         w.ID,
		VoteStatus: w.VoteStatus,
		Year:       w.YearValue,
		Quarter:    w.QuarterValue,
		Week:       w.WeekValue,
		StartDate:  w.StartAt.In(loc).Format(time.DateOnly),
		EndDate:    w.EndAt.In(loc).Format(time.DateOnly),
		StartAt:    w.StartAt.In(loc),
		EndAt:      w.EndAt.In(loc),
	}
}

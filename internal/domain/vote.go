package domain

import (
	"strconv"
	"strings"
	"time"
)

// Position is a senator's canonical vote position.
type Position string

// Canonical positions after normalization.
const (
	PositionYea       Position = "Yea"
	PositionNay       Position = "Nay"
	PositionPresent   Position = "Present"
	PositionNotVoting Position = "Not Voting"
)

// Positions lists the canonical positions in legend order.
func Positions() []Position {
	return []Position{PositionYea, PositionNay, PositionPresent, PositionNotVoting}
}

// Abstained reports whether the position counts as an abstention for
// orientation classification. Present and Not Voting are equivalent here.
func (p Position) Abstained() bool {
	return p == PositionPresent || p == PositionNotVoting
}

// NormalizePosition folds the LIS vote vocabulary into a canonical Position.
// Aye/Yes and Guilty map to Yea, No and Not Guilty to Nay, Absent and anything
// unrecognized (including an empty value) to Not Voting.
func NormalizePosition(raw string) Position {
	switch strings.TrimSpace(raw) {
	case "Yea", "Aye", "Yes", "Guilty":
		return PositionYea
	case "Nay", "No", "Not Guilty":
		return PositionNay
	case "Present":
		return PositionPresent
	default:
		return PositionNotVoting
	}
}

// VoteRecord is one senator's cast vote in a roll call.
type VoteRecord struct {
	State    string   `json:"state"` // two-letter USPS code
	Member   string   `json:"member"`
	LastName string   `json:"last_name"`
	Party    string   `json:"party"`
	Position Position `json:"position"`
}

// RollCall is a parsed roll-call vote document.
type RollCall struct {
	Congress int          `json:"congress"`
	Session  int          `json:"session"`
	Number   int          `json:"number"`
	Question string       `json:"question,omitempty"`
	Result   string       `json:"result,omitempty"`
	Date     string       `json:"date,omitempty"`
	Records  []VoteRecord `json:"records"`

	FetchedAt time.Time `json:"fetched_at"`
}

// Title builds the human-readable map title for the roll call,
// e.g. "Senate 119-1-416: On Passage of the Bill (Passed)".
func (rc RollCall) Title() string {
	var b strings.Builder
	b.WriteString("Senate ")
	b.WriteString(strconv.Itoa(rc.Congress))
	b.WriteString("-")
	b.WriteString(strconv.Itoa(rc.Session))
	b.WriteString("-")
	b.WriteString(strconv.Itoa(rc.Number))
	if q := strings.TrimSpace(rc.Question); q != "" {
		b.WriteString(": ")
		b.WriteString(q)
	}
	if r := strings.TrimSpace(rc.Result); r != "" {
		b.WriteString(" (")
		b.WriteString(r)
		b.WriteString(")")
	}
	return b.String()
}

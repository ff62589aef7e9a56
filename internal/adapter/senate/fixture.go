package senate

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/cartovote/vote-map/internal/domain"
)

// FixtureSpec parameterizes a synthetic roll-call document.
type FixtureSpec struct {
	Congress int
	Session  int
	Roll     int
	Seed     int64
}

// Fixture generates a synthetic LIS roll-call XML document with two senators
// for each of the 50 states. Output is deterministic for a given spec, which
// makes it usable both for offline rendering and as a parser test fixture.
func Fixture(spec FixtureSpec) []byte {
	rng := rand.New(rand.NewSource(spec.Seed))

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString("<roll_call_vote>\n")
	fmt.Fprintf(&buf, "  <congress>%d</congress>\n", spec.Congress)
	fmt.Fprintf(&buf, "  <session>%d</session>\n", spec.Session)
	fmt.Fprintf(&buf, "  <vote_number>%d</vote_number>\n", spec.Roll)
	buf.WriteString("  <vote_question_text>On Passage of the Bill</vote_question_text>\n")
	buf.WriteString("  <vote_result>Bill Passed</vote_result>\n")
	buf.WriteString("  <members>\n")

	for _, state := range domain.StateCodes() {
		for seat := 1; seat <= 2; seat++ {
			fmt.Fprintf(&buf, "    <member>\n")
			fmt.Fprintf(&buf, "      <last_name>%s</last_name>\n", fixtureName(state, seat))
			fmt.Fprintf(&buf, "      <party>%s</party>\n", fixtureParty(rng))
			fmt.Fprintf(&buf, "      <state>%s</state>\n", state)
			fmt.Fprintf(&buf, "      <vote_cast>%s</vote_cast>\n", fixturePosition(rng))
			fmt.Fprintf(&buf, "      <lis_member_id>S%s%d</lis_member_id>\n", state, seat)
			fmt.Fprintf(&buf, "    </member>\n")
		}
	}

	buf.WriteString("  </members>\n")
	buf.WriteString("</roll_call_vote>\n")
	return buf.Bytes()
}

func fixtureName(state string, seat int) string {
	return fmt.Sprintf("%s Senator %d", domain.StateName(state), seat)
}

func fixtureParty(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return "D"
	}
	return "R"
}

// fixturePosition draws a vote with weights that resemble a contested vote:
// mostly Yea/Nay with occasional Present and Not Voting.
func fixturePosition(rng *rand.Rand) domain.Position {
	switch n := rng.Intn(100); {
	case n < 45:
		return domain.PositionYea
	case n < 85:
		return domain.PositionNay
	case n < 90:
		return domain.PositionPresent
	default:
		return domain.PositionNotVoting
	}
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRollCallXML = `<?xml version="1.0" encoding="UTF-8"?>
<roll_call_vote>
  <congress>119</congress>
  <session>1</session>
  <vote_number>416</vote_number>
  <vote_date>July 1, 2025, 12:14 PM</vote_date>
  <vote_question_text>On Passage of the Bill</vote_question_text>
  <vote_result>Bill Passed</vote_result>
  <members>
    <member>
      <member_full>Padilla (D-CA)</member_full>
      <last_name>Padilla</last_name>
      <first_name>Alex</first_name>
      <party>D</party>
      <state>CA</state>
      <vote_cast>Yea</vote_cast>
      <lis_member_id>S406</lis_member_id>
    </member>
    <member>
      <last_name>Schiff</last_name>
      <party>D</party>
      <state>ca</state>
      <vote_cast>Aye</vote_cast>
      <lis_member_id>S414</lis_member_id>
    </member>
    <member>
      <last_name>Cornyn</last_name>
      <party>R</party>
      <state>TX</state>
      <vote_cast>Not Voting</vote_cast>
      <lis_member_id>S287</lis_member_id>
    </member>
  </members>
</roll_call_vote>`

func TestParseRollCallXML(t *testing.T) {
	frozen := time.Date(2025, time.July, 2, 9, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	rc, err := ParseRollCallXML([]byte(sampleRollCallXML))
	require.NoError(t, err)

	assert.Equal(t, 119, rc.Congress)
	assert.Equal(t, 1, rc.Session)
	assert.Equal(t, 416, rc.Number)
	assert.Equal(t, "On Passage of the Bill", rc.Question)
	assert.Equal(t, "Bill Passed", rc.Result)
	assert.Equal(t, frozen, rc.FetchedAt)

	require.Len(t, rc.Records, 3)
	assert.Equal(t, VoteRecord{State: "CA", Member: "S406", LastName: "Padilla", Party: "D", Position: PositionYea}, rc.Records[0])
	// State codes are uppercased and "Aye" normalizes to Yea.
	assert.Equal(t, "CA", rc.Records[1].State)
	assert.Equal(t, PositionYea, rc.Records[1].Position)
	assert.Equal(t, PositionNotVoting, rc.Records[2].Position)
}

func TestParseRollCallXML_SkipsStatelessMembers(t *testing.T) {
	data := []byte(`<roll_call_vote><congress>119</congress><session>1</session><vote_number>1</vote_number>
		<members>
			<member><last_name>Vance</last_name><vote_cast>Yea</vote_cast></member>
			<member><state>OH</state><last_name>Husted</last_name><vote_cast>Yea</vote_cast></member>
		</members></roll_call_vote>`)

	rc, err := ParseRollCallXML(data)
	require.NoError(t, err)
	require.Len(t, rc.Records, 1)
	assert.Equal(t, "OH", rc.Records[0].State)
}

func TestParseRollCallXML_Errors(t *testing.T) {
	t.Run("html error page", func(t *testing.T) {
		_, err := ParseRollCallXML([]byte("<!DOCTYPE html><html><body>Not found</body></html>"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParse))
	})

	t.Run("not xml", func(t *testing.T) {
		_, err := ParseRollCallXML([]byte("vote_cast: Yea"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParse))
	})

	t.Run("no members", func(t *testing.T) {
		_, err := ParseRollCallXML([]byte("<roll_call_vote><congress>119</congress><members></members></roll_call_vote>"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParse))
	})

	t.Run("only stateless members", func(t *testing.T) {
		_, err := ParseRollCallXML([]byte("<roll_call_vote><members><member><vote_cast>Yea</vote_cast></member></members></roll_call_vote>"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParse))
	})
}

func TestNormalizePosition(t *testing.T) {
	cases := map[string]Position{
		"Yea":         PositionYea,
		"Aye":         PositionYea,
		"Yes":         PositionYea,
		"Guilty":      PositionYea,
		"Nay":         PositionNay,
		"No":          PositionNay,
		"Not Guilty":  PositionNay,
		"Present":     PositionPresent,
		"Not Voting":  PositionNotVoting,
		"Absent":      PositionNotVoting,
		"":            PositionNotVoting,
		"  Yea  ":     PositionYea,
		"Abstaining?": PositionNotVoting,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizePosition(raw), "raw %q", raw)
	}
}

func TestRollCallTitle(t *testing.T) {
	rc := RollCall{Congress: 119, Session: 1, Number: 416, Question: "On Passage of the Bill", Result: "Bill Passed"}
	assert.Equal(t, "Senate 119-1-416: On Passage of the Bill (Bill Passed)", rc.Title())

	bare := RollCall{Congress: 117, Session: 2, Number: 12}
	assert.Equal(t, "Senate 117-2-12", bare.Title())
}

func TestStateCodes(t *testing.T) {
	codes := StateCodes()
	require.Len(t, codes, 50)
	assert.NotContains(t, codes, "DC")
	assert.NotContains(t, codes, "PR")
	assert.Equal(t, "Alaska", StateName("AK"))
}

package domain

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// lisRollCall mirrors the subset of the LIS roll_call_vote XML schema we read.
type lisRollCall struct {
	XMLName  xml.Name    `xml:"roll_call_vote"`
	Congress int         `xml:"congress"`
	Session  int         `xml:"session"`
	Number   int         `xml:"vote_number"`
	Question string      `xml:"vote_question_text"`
	Result   string      `xml:"vote_result"`
	Date     string      `xml:"vote_date"`
	Members  []lisMember `xml:"members>member"`
}

type lisMember struct {
	MemberID  string `xml:"lis_member_id"`
	LastName  string `xml:"last_name"`
	Party     string `xml:"party"`
	State     string `xml:"state"`
	VoteCast  string `xml:"vote_cast"`
	FullName  string `xml:"member_full"`
	FirstName string `xml:"first_name"`
}

// ParseRollCallXML decodes a LIS roll-call vote document into a RollCall.
// Members without a state are skipped (the feed uses stateless rows for vice
// presidential tie-breakers). A document with no members wraps ErrParse, as
// does anything that is not the expected XML — including the HTML error page
// senate.gov serves for some bad URLs.
func ParseRollCallXML(data []byte) (RollCall, error) {
	trimmed := bytes.TrimSpace(data)
	if looksLikeHTML(trimmed) {
		return RollCall{}, fmt.Errorf("%w: got an HTML page instead of roll-call XML", ErrParse)
	}

	var doc lisRollCall
	if err := xml.Unmarshal(trimmed, &doc); err != nil {
		return RollCall{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(doc.Members) == 0 {
		return RollCall{}, fmt.Errorf("%w: document contains no member votes", ErrParse)
	}

	records := make([]VoteRecord, 0, len(doc.Members))
	for _, m := range doc.Members {
		state := strings.ToUpper(strings.TrimSpace(m.State))
		if state == "" {
			continue
		}
		records = append(records, VoteRecord{
			State:    state,
			Member:   strings.TrimSpace(m.MemberID),
			LastName: strings.TrimSpace(m.LastName),
			Party:    strings.TrimSpace(m.Party),
			Position: NormalizePosition(m.VoteCast),
		})
	}
	if len(records) == 0 {
		return RollCall{}, fmt.Errorf("%w: no member carries a state identifier", ErrParse)
	}

	return RollCall{
		Congress:  doc.Congress,
		Session:   doc.Session,
		Number:    doc.Number,
		Question:  strings.TrimSpace(doc.Question),
		Result:    strings.TrimSpace(doc.Result),
		Date:      strings.TrimSpace(doc.Date),
		Records:   records,
		FetchedAt: clock.Now(),
	}, nil
}

// looksLikeHTML detects senate.gov's "vote does not exist" error page, which
// is served with status 200 from some paths.
func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 256 {
		head = head[:256]
	}
	lower := bytes.ToLower(head)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
}

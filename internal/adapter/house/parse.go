package house

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/cartovote/vote-map/internal/domain"
)

// stateFIPS maps USPS state codes to census STATEFP prefixes, covering the
// voting states plus the delegate territories that appear in member data.
var stateFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06", "CO": "08",
	"CT": "09", "DE": "10", "DC": "11", "FL": "12", "GA": "13", "HI": "15",
	"ID": "16", "IL": "17", "IN": "18", "IA": "19", "KS": "20", "KY": "21",
	"LA": "22", "ME": "23", "MD": "24", "MA": "25", "MI": "26", "MN": "27",
	"MS": "28", "MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38", "OH": "39",
	"OK": "40", "OR": "41", "PA": "42", "RI": "44", "SC": "45", "SD": "46",
	"TN": "47", "TX": "48", "UT": "49", "VT": "50", "VA": "51", "WA": "53",
	"WV": "54", "WI": "55", "WY": "56",
	"AS": "60", "GU": "66", "MP": "69", "PR": "72", "VI": "78",
}

// evsRoll mirrors the subset of the EVS rollcall-vote XML schema we read.
type evsRoll struct {
	XMLName  xml.Name    `xml:"rollcall-vote"`
	Metadata evsMetadata `xml:"vote-metadata"`
	Votes    []evsVote   `xml:"vote-data>recorded-vote"`
}

type evsMetadata struct {
	Question string `xml:"vote-question"`
	Result   string `xml:"vote-result"`
}

type evsVote struct {
	Legislator evsLegislator `xml:"legislator"`
	Vote       string        `xml:"vote"`
}

type evsLegislator struct {
	NameID string `xml:"name-id,attr"`
	State  string `xml:"state,attr"`
}

func parseRollXML(data []byte) (evsRoll, error) {
	var doc evsRoll
	if err := xml.Unmarshal(data, &doc); err != nil {
		return evsRoll{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(doc.Votes) == 0 {
		return evsRoll{}, fmt.Errorf("%w: document contains no recorded votes", domain.ErrParse)
	}
	return doc, nil
}

// memberData mirrors the clerk's member list schema.
type memberData struct {
	XMLName xml.Name        `xml:"MemberData"`
	Members []memberElement `xml:"members>member"`
}

type memberElement struct {
	StateDistrict string `xml:"statedistrict"`
	BioguideID    string `xml:"member-info>bioguideID"`
}

// parseMemberDistricts builds the bioguide id → statedistrict map, e.g.
// "A000374" → "LA05".
func parseMemberDistricts(data []byte) (map[string]string, error) {
	var doc memberData
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	districts := make(map[string]string, len(doc.Members))
	for _, m := range doc.Members {
		id := strings.TrimSpace(m.BioguideID)
		sd := strings.ToUpper(strings.TrimSpace(m.StateDistrict))
		if id == "" || len(sd) < 3 {
			continue
		}
		districts[id] = sd
	}
	if len(districts) == 0 {
		return nil, fmt.Errorf("%w: member list contains no district assignments", domain.ErrParse)
	}
	return districts, nil
}

// joinDistrictVotes resolves each recorded vote to its census GEOID.
// Members missing from the member list and delegate seats without a STATEFP
// mapping are data errors: every recorded House vote belongs to a district.
func joinDistrictVotes(doc evsRoll, districts map[string]string) ([]DistrictVote, error) {
	votes := make([]DistrictVote, 0, len(doc.Votes))
	var unresolved []string
	for _, rv := range doc.Votes {
		id := strings.TrimSpace(rv.Legislator.NameID)
		sd, ok := districts[id]
		if !ok || len(sd) < 3 {
			unresolved = append(unresolved, id)
			continue
		}

		state := sd[:2]
		fips, ok := stateFIPS[state]
		if !ok {
			unresolved = append(unresolved, id)
			continue
		}

		district := sd[2:]
		if len(district) == 1 {
			district = "0" + district
		}

		votes = append(votes, DistrictVote{
			GEOID:    fips + district,
			State:    state,
			Member:   id,
			Position: domain.NormalizePosition(rv.Vote),
		})
	}

	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return nil, fmt.Errorf("%w: votes without a district assignment: %v", domain.ErrDataIntegrity, unresolved)
	}
	return votes, nil
}

package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation is the six-way classification of a state's pair of senator votes.
type Orientation string

// The six orientations, in legend order.
const (
	OrientationBothYea         Orientation = "both_yea"
	OrientationBothNay         Orientation = "both_nay"
	OrientationSplitYeaNay     Orientation = "split_yea_nay"
	OrientationSplitYeaAbstain Orientation = "split_yea_abstain"
	OrientationSplitNayAbstain Orientation = "split_nay_abstain"
	OrientationBothAbstain     Orientation = "both_abstain"
)

// Orientations lists all six orientations in legend order.
func Orientations() []Orientation {
	return []Orientation{
		OrientationBothYea,
		OrientationBothNay,
		OrientationSplitYeaNay,
		OrientationSplitYeaAbstain,
		OrientationSplitNayAbstain,
		OrientationBothAbstain,
	}
}

// Label returns the human-readable legend label for the orientation.
func (o Orientation) Label() string {
	switch o {
	case OrientationBothYea:
		return "Both Yea"
	case OrientationBothNay:
		return "Both Nay"
	case OrientationSplitYeaNay:
		return "Split (Yea/Nay)"
	case OrientationSplitYeaAbstain:
		return "Split (Yea/Absent)"
	case OrientationSplitNayAbstain:
		return "Split (Nay/Absent)"
	case OrientationBothAbstain:
		return "Both Absent"
	default:
		return string(o)
	}
}

// StateOrientation is the classification of one state's pair of votes.
type StateOrientation struct {
	State       string      `json:"state"`
	Orientation Orientation `json:"orientation"`
}

// Classify maps an unordered pair of positions to its orientation.
// Present and Not Voting both count as abstentions. The mapping is symmetric:
// Classify(a, b) == Classify(b, a) for every pair.
func Classify(a, b Position) Orientation {
	switch {
	case a.Abstained() && b.Abstained():
		return OrientationBothAbstain
	case a == PositionYea && b == PositionYea:
		return OrientationBothYea
	case a == PositionNay && b == PositionNay:
		return OrientationBothNay
	case a.Abstained() || b.Abstained():
		// Exactly one senator voted.
		if a == PositionYea || b == PositionYea {
			return OrientationSplitYeaAbstain
		}
		return OrientationSplitNayAbstain
	default:
		return OrientationSplitYeaNay
	}
}

// ClassifyStates groups vote records by state and classifies each pair.
// The roll call must cover exactly the 50 states with exactly two records each;
// anything else wraps ErrDataIntegrity naming the offending states. The result
// is sorted by state code with one entry per state.
func ClassifyStates(records []VoteRecord) ([]StateOrientation, error) {
	byState := make(map[string][]Position, len(stateNames))
	var unknown []string
	for _, rec := range records {
		state := strings.ToUpper(strings.TrimSpace(rec.State))
		if _, ok := stateNames[state]; !ok {
			unknown = append(unknown, state)
			continue
		}
		byState[state] = append(byState[state], rec.Position)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: unknown state identifiers %v", ErrDataIntegrity, dedupe(unknown))
	}

	var missing, miscounted []string
	for _, state := range StateCodes() {
		switch n := len(byState[state]); n {
		case 2:
		case 0:
			missing = append(missing, state)
		default:
			miscounted = append(miscounted, fmt.Sprintf("%s=%d", state, n))
		}
	}
	if len(missing) > 0 || len(miscounted) > 0 {
		return nil, fmt.Errorf("%w: want exactly 2 votes for each of 50 states, missing %v, miscounted %v",
			ErrDataIntegrity, missing, miscounted)
	}

	out := make([]StateOrientation, 0, len(byState))
	for _, state := range StateCodes() {
		pair := byState[state]
		out = append(out, StateOrientation{
			State:       state,
			Orientation: Classify(pair[0], pair[1]),
		})
	}
	return out, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

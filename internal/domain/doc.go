// Package domain models US Senate roll-call vote data.
//
// # Data Source
//
// Roll-call votes come from the Senate Legislative Information System (LIS)
// XML feed published at senate.gov:
//
//	https://www.senate.gov/legislative/LIS/roll_call_votes/vote{congress}{session}/vote_{congress:03d}_{session}_{roll:05d}.xml
//
// e.g. congress 119, session 1, roll call 416 →
// .../vote1191/vote_119_1_00416.xml. A roll call is identified by the
// (congress, session, number) triple: the two-year congress, its one-year
// session (1 or 2), and the sequential vote number within the session.
//
// # LIS Vote Vocabulary
//
// Each <member> element carries a <state> (two-letter USPS code) and a
// <vote_cast> value. Observed vocabulary:
//
//	"Yea", "Nay"            — ordinary passage votes
//	"Aye", "No"             — amendment and procedural votes
//	"Guilty", "Not Guilty"  — impeachment votes
//	"Present"               — senator present but not voting
//	"Not Voting"            — senator absent
//
// [NormalizePosition] folds these into the four canonical positions. A missing
// or unrecognized value is treated as Not Voting, matching how the Senate's own
// vote summaries count it.
//
// # State Orientation
//
// Each of the 50 states seats exactly two senators, so a well-formed roll call
// yields an unordered pair of positions per state. The pair is classified into
// one of six orientations (see [Classify]); Present and Not Voting are both
// treated as abstentions for classification. The classification is symmetric:
// swapping the two senators never changes the orientation.
//
// A state with other than two vote records (a vacancy, a territory leaking into
// the feed, a truncated document) is a data error, not a renderable condition.
package domain

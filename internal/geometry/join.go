package geometry

import (
	"fmt"
	"sort"

	"github.com/cartovote/vote-map/internal/domain"
)

// JoinedRow is one region's classified category merged with its boundary.
// Category is an orientation value for senate maps and a vote position for
// house maps; the renderer only sees it as a palette key.
type JoinedRow struct {
	Key      string
	Category string
	Shape    Shape
}

// Join inner-joins classified categories with boundary shapes on their key.
// The join must be total: any identifier present on only one side wraps
// domain.ErrJoin listing the unmatched identifiers from both sides.
// Rows are returned sorted by key.
func Join(categories map[string]string, shapes []Shape) ([]JoinedRow, error) {
	byKey := make(map[string]Shape, len(shapes))
	for _, s := range shapes {
		byKey[s.Key] = s
	}

	var unmatchedVotes, unmatchedShapes []string
	rows := make([]JoinedRow, 0, len(categories))
	for key, category := range categories {
		shape, ok := byKey[key]
		if !ok {
			unmatchedVotes = append(unmatchedVotes, key)
			continue
		}
		rows = append(rows, JoinedRow{Key: key, Category: category, Shape: shape})
	}
	for _, s := range shapes {
		if _, ok := categories[s.Key]; !ok {
			unmatchedShapes = append(unmatchedShapes, s.Key)
		}
	}

	if len(unmatchedVotes) > 0 || len(unmatchedShapes) > 0 {
		sort.Strings(unmatchedVotes)
		sort.Strings(unmatchedShapes)
		return nil, fmt.Errorf("%w: votes without geometry %v, geometry without votes %v",
			domain.ErrJoin, unmatchedVotes, unmatchedShapes)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

// OrientationCategories converts classified state orientations to the keyed
// category map Join consumes.
func OrientationCategories(orientations []domain.StateOrientation) map[string]string {
	out := make(map[string]string, len(orientations))
	for _, o := range orientations {
		out[o.State] = string(o.Orientation)
	}
	return out
}

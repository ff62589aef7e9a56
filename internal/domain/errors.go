package domain

import "errors"

// Error kinds for the pipeline steps. Callers wrap these with context via
// fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrNetwork marks a feed that was unreachable or timed out.
	ErrNetwork = errors.New("vote feed unreachable")

	// ErrNotFound marks a roll call that does not exist for the given
	// congress and session.
	ErrNotFound = errors.New("roll call not found")

	// ErrParse marks a fetched document that could not be decoded.
	ErrParse = errors.New("malformed vote document")

	// ErrDataIntegrity marks a roll call whose per-state vote counts are wrong.
	ErrDataIntegrity = errors.New("vote data integrity violation")

	// ErrJoin marks a vote/geometry identifier mismatch.
	ErrJoin = errors.New("geometry join mismatch")

	// ErrRender marks a failure while drawing or encoding the map.
	ErrRender = errors.New("map render failed")
)

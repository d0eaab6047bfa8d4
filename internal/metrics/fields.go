package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrLeague   = "league"
	AttrOutcome  = "outcome"
)

// Provider attempt outcomes.
const (
	OutcomeGames = "games"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrSource   = "source"
	AttrRotation = "rotation"
	AttrOutcome  = "outcome"
)

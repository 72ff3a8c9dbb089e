package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint is the suggested next step for a warning or error.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldRunID identifies one merge or collection run.
	FieldRunID = "run_id"
	// FieldSource names where records came from (page, mail, csv, sample).
	FieldSource = "source"
	// FieldPath is the input or output file a line refers to.
	FieldPath = "path"
	// FieldAlert flags anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

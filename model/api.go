package model

// ParseRequestBody is the POST /parse payload.
type ParseRequestBody struct {
	Line       string  `json:"line"`
	UnitLength float64 `json:"unit_length,omitempty"`
	Key        string  `json:"key,omitempty"`
	Signature  string  `json:"signature,omitempty"`
}

type EventResult struct {
	Key   uint8   `json:"key"`
	Beats float64 `json:"beats"`
	Rest  bool    `json:"rest"`
	Tie   bool    `json:"tie"`
}

type ViolationResult struct {
	Measure  int     `json:"measure"`
	Found    float64 `json:"found"`
	Expected int     `json:"expected"`
	Message  string  `json:"message"`
}

type ParseResult struct {
	Events       []EventResult     `json:"events"`
	Violations   []ViolationResult `json:"violations"`
	PartialStart bool              `json:"partial_start"`
	PartialEnd   bool              `json:"partial_end"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

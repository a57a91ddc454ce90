// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON schema for one calib run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	RunID     string       `json:"run_id"`
	Total     uint64       `json:"total"`
	Documents []DocumentV1 `json:"documents"`
	ElapsedUS int64        `json:"elapsed_us,omitempty"`
}

// DocumentV1 is the per-document part of ResultV1.
type DocumentV1 struct {
	Source string   `json:"source"`
	Lines  int      `json:"lines"`
	Sum    uint64   `json:"sum"`
	Cached bool     `json:"cached,omitempty"`
	Scores []LineV1 `json:"scores,omitempty"`
}

// LineV1 is one scored line; Index is 0-based.
type LineV1 struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

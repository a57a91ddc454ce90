package writers

import (
	"encoding/json"
	"io"

	"calib/pkg/api"
)

func init() { Register("json", WriteJSON) }

// ToAPI converts a report to the stable v1 schema.
func ToAPI(r Report, timing bool) api.ResultV1 {
	out := api.ResultV1{
		RunID:     r.RunID,
		Total:     r.Total,
		Documents: make([]api.DocumentV1, 0, len(r.Docs)),
	}
	if timing {
		out.ElapsedUS = r.Elapsed.Microseconds()
	}
	for _, d := range r.Docs {
		dv := api.DocumentV1{Source: d.Source, Lines: d.Lines, Sum: d.Sum, Cached: d.Cached}
		for _, ls := range d.Scores {
			dv.Scores = append(dv.Scores, api.LineV1{Index: ls.Index, Text: ls.Text, Score: ls.Score})
		}
		out.Documents = append(out.Documents, dv)
	}
	return out
}

// WriteJSON writes r as one indented JSON object (v1).
func WriteJSON(w io.Writer, r Report, opt Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToAPI(r, opt.Timing))
}

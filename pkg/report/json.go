package report

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/hyp3rd/jitterbench/types"
)

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []*types.Result) error {
	if results == nil {
		results = []*types.Result{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

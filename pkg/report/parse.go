package report

import (
	"io"
	"regexp"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

var blockPattern = regexp.MustCompile(
	`=== (.+?) ===\s+` +
		`Min: (\d+), Max: (\d+), Avg: (\d+)\s+` +
		`Jitter: (\d+), Std Dev: ([\d.]+)\s+` +
		`95th percentile: (\d+), 99th percentile: (\d+)\s+` +
		`Coefficient of Variation: ([\d.]+)`,
)

// Parse extracts every summary block from a text report. Text between blocks
// is ignored. A label seen twice keeps its first position and its last values.
func Parse(r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, ewrap.Wrap(err, "reading report")
	}

	matches := blockPattern.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrMalformedReport, "no summary block found")
	}

	entries := make([]Entry, 0, len(matches))
	position := make(map[string]int, len(matches))

	for _, m := range matches {
		entry, err := parseBlock(m)
		if err != nil {
			return nil, err
		}

		if i, seen := position[entry.Label]; seen {
			entries[i] = entry

			continue
		}

		position[entry.Label] = len(entries)
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseBlock(m [][]byte) (Entry, error) {
	var (
		entry = Entry{Label: string(m[1])}
		err   error
	)

	uints := []*uint64{&entry.Min, &entry.Max, &entry.Avg, &entry.Jitter}
	for i, dst := range uints {
		*dst, err = strconv.ParseUint(string(m[2+i]), 10, 64)
		if err != nil {
			return Entry{}, ewrap.Wrapf(sentinel.ErrMalformedReport, "%s: %v", entry.Label, err)
		}
	}

	entry.StdDev, err = strconv.ParseFloat(string(m[6]), 64)
	if err != nil {
		return Entry{}, ewrap.Wrapf(sentinel.ErrMalformedReport, "%s: %v", entry.Label, err)
	}

	entry.P95, err = strconv.ParseUint(string(m[7]), 10, 64)
	if err != nil {
		return Entry{}, ewrap.Wrapf(sentinel.ErrMalformedReport, "%s: %v", entry.Label, err)
	}

	entry.P99, err = strconv.ParseUint(string(m[8]), 10, 64)
	if err != nil {
		return Entry{}, ewrap.Wrapf(sentinel.ErrMalformedReport, "%s: %v", entry.Label, err)
	}

	entry.CV, err = strconv.ParseFloat(string(m[9]), 64)
	if err != nil {
		return Entry{}, ewrap.Wrapf(sentinel.ErrMalformedReport, "%s: %v", entry.Label, err)
	}

	return entry, nil
}

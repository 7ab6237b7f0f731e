package interop

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/hasbyte1/go-plex/plex"
)

// Table renders a flat collection of Dict records as a header row plus one
// string row per record. Columns are the sorted union of keys across all
// records; missing keys render as empty cells. When indexCol names a
// present column it is moved to the front.
func Table(p *plex.Plex, indexCol string) (header []string, rows [][]string, err error) {
	records := make([]map[string]any, 0, p.Len())
	cols := make(map[string]struct{})
	for i, el := range p.All() {
		d, ok := asDict(el)
		if !ok {
			return nil, nil, fmt.Errorf("interop: element %d is %T, not a record", i, el)
		}
		m := d.Native()
		records = append(records, m)
		for k := range m {
			cols[k] = struct{}{}
		}
	}

	header = make([]string, 0, len(cols))
	for k := range cols {
		header = append(header, k)
	}
	sort.Strings(header)
	if indexCol != "" {
		for i, k := range header {
			if k == indexCol {
				copy(header[1:i+1], header[:i])
				header[0] = k
				break
			}
		}
	}

	rows = make([][]string, len(records))
	for i, m := range records {
		row := make([]string, len(header))
		for j, k := range header {
			if v, ok := m[k]; ok && v != nil {
				row[j] = fmt.Sprintf("%v", v)
			}
		}
		rows[i] = row
	}
	return header, rows, nil
}

// WriteCSV writes [Table] output as CSV.
func WriteCSV(w io.Writer, p *plex.Plex, indexCol string) error {
	header, rows, err := Table(p, indexCol)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func asDict(el any) (*plex.Dict, bool) {
	switch t := el.(type) {
	case *plex.Dict:
		return t, true
	case *plex.DefaultDict:
		return &t.Dict, true
	default:
		return nil, false
	}
}

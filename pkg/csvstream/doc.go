// Package csvstream converts row mappings into CSV one row at a time.
//
// A Row is an ordered list of column/value pairs. The first row written fixes
// the header; later rows are projected onto it, so missing columns become
// empty cells and extra columns are dropped. Nothing at all is written for
// an empty source, not even the header.
//
// Cell conversion rules:
//
//   - nil becomes an empty string
//   - float32 and float64 are formatted with two decimals
//   - time.Time becomes an ISO-8601 string
//   - slices, arrays and maps are not representable: the column is dropped
//   - everything else is rendered with fmt.Sprint
//
// Sources are iterators, so rows can be produced lazily from a database
// cursor:
//
//	rows, err := pool.Query(ctx, "SELECT id, name, created_at FROM entity")
//	if err != nil {
//		return err
//	}
//	w := csvstream.NewWriter(out)
//	for row, err := range csvstream.FromPgxRows(rows) {
//		if err != nil {
//			return err
//		}
//		if err := w.Write(row); err != nil {
//			return err
//		}
//	}
//	return w.Flush()
package csvstream

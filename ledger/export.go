/*
export.go - CSV export of the filtered history view

FORMAT:
  UTF-8 with byte-order marker, CRLF row endings. Columns: product name
  (always quoted, internal quotes doubled), localized kind label,
  quantity, localized timestamp (always quoted). The dashboard is
  Arabic, so the header and kind labels are Arabic.

  encoding/csv is not used: it quotes fields only when required and the
  exported format always quotes the name and timestamp columns, so the
  rows are assembled directly.
*/
package ledger

import (
	"bytes"
	"fmt"
	"strings"
)

// ExportFilename is the download name offered to the user.
const ExportFilename = "stock_history.csv"

// KindLabel returns the localized display label for an event kind.
func KindLabel(k EventKind) string {
	switch k {
	case KindInbound:
		return "وارد"
	case KindOutbound:
		return "صادر"
	case KindDamaged:
		return "تالف"
	}
	return string(k)
}

var exportHeader = []string{"المنتج", "الإجراء", "الكمية", "التاريخ والوقت"}

// ExportCSV serializes events (typically a filtered history view) to a
// CSV blob. An empty input is refused with ErrNothingToExport: the user
// gets a notice instead of an empty file.
func ExportCSV(events []StockEvent) ([]byte, error) {
	if len(events) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF") // BOM so spreadsheet apps detect UTF-8
	buf.WriteString(strings.Join(exportHeader, ","))
	buf.WriteString("\r\n")

	for _, ev := range events {
		name := strings.ReplaceAll(ev.ProductName, `"`, `""`)
		stamp := ev.Timestamp.Local().Format("02/01/2006, 15:04:05")
		fmt.Fprintf(&buf, "\"%s\",%s,%d,\"%s\"\r\n", name, KindLabel(ev.Kind), ev.Quantity, stamp)
	}
	return buf.Bytes(), nil
}

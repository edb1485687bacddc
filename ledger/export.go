package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leekchan/accounting"
)

// Projection flattens records into display-formatted rows for CSV/PDF
// rendering. It is a pure mapping: column set and order come from the
// caller, as does the set of columns to render as money. It never recomputes
// totals or reorders rows.
type Projection struct {
	Columns      []string
	MoneyColumns []string
}

// Row is one flat export row keyed by column name.
type Row map[string]string

func (p Projection) Project(records []map[string]any) []Row {
	money := make(map[string]bool, len(p.MoneyColumns))
	for _, c := range p.MoneyColumns {
		money[c] = true
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(p.Columns))
		for _, col := range p.Columns {
			row[col] = formatValue(rec[col], money[col])
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatMoney renders a money amount with thousands separators and fixed
// 2-decimal precision, e.g. 1234.5 -> "1,234.50".
func FormatMoney(v float64) string {
	return accounting.FormatNumber(v, 2, ",", ".")
}

func formatValue(v any, money bool) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format("2006-01-02 15:04")
	case time.Time:
		return x.Format("2006-01-02 15:04")
	case float64:
		if money {
			return FormatMoney(x)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// EntryRecords converts statement entries to export records. Running values
// are carried through untouched; the projection trusts the builder's output.
func EntryRecords(entries []Entry) []map[string]any {
	records := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		records = append(records, map[string]any{
			"Date":        e.Date,
			"Type":        e.Type,
			"Ref":         e.Ref,
			"Description": e.Description,
			"Invoice":     e.InvoiceID,
			"Amount":      e.Amount,
			"Running":     e.Running,
		})
	}
	return records
}

// StatementProjection is the default column layout for statement exports,
// matching the statement table shown in the UI.
func StatementProjection() Projection {
	return Projection{
		Columns:      []string{"Date", "Type", "Ref", "Description", "Invoice", "Amount", "Running"},
		MoneyColumns: []string{"Amount", "Running"},
	}
}

package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"

	"paytrack-backend/ledger"
)

// ExportClientStatement renders the statement projection as a downloadable
// CSV (default) or PDF table. The projection only formats; ordering and
// totals come from the statement builder untouched.
func (h *Handler) ExportClientStatement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	client, err := h.Store.Client(id)
	if err != nil {
		return err
	}
	invoices, payments, err := h.Store.ClientLedger(id)
	if err != nil {
		return err
	}

	statement := ledger.BuildStatement(client, invoices, payments, h.BaseCurrency)
	projection := ledger.StatementProjection()
	rows := projection.Project(ledger.EntryRecords(statement.Entries))

	switch c.Query("format", "csv") {
	case "csv":
		return writeCSV(c, fmt.Sprintf("statement-%d.csv", client.ID), projection.Columns, rows)
	case "pdf":
		title := fmt.Sprintf("Statement - %s", client.Name)
		return writePDF(c, fmt.Sprintf("statement-%d.pdf", client.ID), title, projection.Columns, rows)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be csv or pdf")
	}
}

func writeCSV(c *fiber.Ctx, filename string, columns []string, rows []ledger.Row) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func writePDF(c *fiber.Ctx, filename, title string, columns []string, rows []ledger.Row) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(columns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(248, 250, 252)
	for _, col := range columns {
		pdf.CellFormat(colW, 7, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for _, col := range columns {
			pdf.CellFormat(colW, 6, row[col], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

package model

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Invoices"

var xlsxHeader = []any{
	"Number", "Status", "Client", "Email", "Issue date", "Due date",
	"Subtotal", "Tax", "Discount", "Total",
}

// WriteInvoicesXLSX writes one row per invoice with its computed amounts.
func WriteInvoicesXLSX(w io.Writer, invoices []Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(xlsxSheet, "A1", "J1", bold); err != nil {
		return err
	}
	for i, inv := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		t := inv.Totals()
		row := []any{
			inv.InvoiceNumber,
			string(inv.Status),
			inv.Client.Name,
			inv.Client.Email,
			inv.IssueDate,
			inv.DueDate,
			t.Subtotal.Round(2).InexactFloat64(),
			t.Tax.Round(2).InexactFloat64(),
			t.Discount.Round(2).InexactFloat64(),
			t.Total.Round(2).InexactFloat64(),
		}
		if err = f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err = f.SetColWidth(xlsxSheet, "A", "F", 16); err != nil {
		return err
	}
	return f.Write(w)
}

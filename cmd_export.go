package main

import (
	"fmt"
	"io"
	"os"

	"github.com/billingcat/invoicedesk/model"
	"github.com/urfave/cli/v2"
)

var outFlag = &cli.PathFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, - for stdout"}

// writeOutput hands the writer to write and closes the file afterwards.
func writeOutput(c *cli.Context, fallback string, write func(io.Writer) error) error {
	name := c.Path("out")
	if name == "" {
		name = fallback
	}
	if name == "-" {
		return write(c.App.Writer)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "wrote %s\n", name)
	return nil
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export invoices",
		Subcommands: []*cli.Command{
			{
				Name:  "xlsx",
				Usage: "write the invoice list as a spreadsheet",
				Flags: append([]cli.Flag{outFlag}, listFlags...),
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					invoices := model.ListInvoices(ws.Invoices(), listQuery(c))
					return writeOutput(c, "invoices.xlsx", func(w io.Writer) error {
						return model.WriteInvoicesXLSX(w, invoices)
					})
				}),
			},
			{
				Name:      "einvoice",
				Usage:     "write an invoice as EN16931 XML (ZUGFeRD/Factur-X)",
				ArgsUsage: "NUMBER",
				Flags: []cli.Flag{
					outFlag,
					&cli.BoolFlag{Name: "force", Usage: "write the XML even if the invoice has errors"},
				},
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					ref, err := firstArg(c, "invoice number")
					if err != nil {
						return err
					}
					inv, err := findInvoice(ws, ref)
					if err != nil {
						return err
					}
					problems := model.VerifyInvoice(inv)
					for _, p := range problems {
						fmt.Fprintf(c.App.ErrWriter, "%s: %s\n", p.Level, p.Message)
					}
					if model.HasErrors(problems) && !c.Bool("force") {
						return fmt.Errorf("invoice %s is not a valid e-invoice", inv.InvoiceNumber)
					}
					return writeOutput(c, inv.InvoiceNumber+".xml", func(w io.Writer) error {
						return model.WriteEInvoice(w, inv)
					})
				}),
			},
		},
	}
}

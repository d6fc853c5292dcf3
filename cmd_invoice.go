package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/billingcat/invoicedesk/model"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var itemFlag = &cli.StringSliceFlag{
	Name:    "item",
	Aliases: []string{"i"},
	Usage:   `line item as "description:quantity:unit price:tax rate", may be repeated`,
}

// parseItem reads "description:quantity:price:tax". The last three fields
// are optional, so the description may itself contain colons only if all
// numbers are given.
func parseItem(s, id string) (model.LineItem, error) {
	item := model.NewLineItem(id)
	parts := strings.Split(s, ":")
	nums := []*float64{&item.Quantity, &item.UnitPrice, &item.TaxRate}
	n := len(parts) - 1
	if n > len(nums) {
		n = len(nums)
	}
	item.Description = strings.TrimSpace(strings.Join(parts[:len(parts)-n], ":"))
	for i, p := range parts[len(parts)-n:] {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.LineItem{}, fmt.Errorf("item %q: %w", s, err)
		}
		if f < 0 {
			return model.LineItem{}, fmt.Errorf("item %q: negative value", s)
		}
		*nums[i] = f
	}
	if item.TaxRate > 100 {
		return model.LineItem{}, fmt.Errorf("item %q: tax rate above 100", s)
	}
	return item, nil
}

func parseItems(specs []string) ([]model.LineItem, error) {
	items := make([]model.LineItem, 0, len(specs))
	for _, s := range specs {
		item, err := parseItem(s, model.GenerateID())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// findInvoice accepts an invoice number or an id.
func findInvoice(ws *model.Workspace, ref string) (model.Invoice, error) {
	if inv, ok := ws.InvoiceByNumber(ref); ok {
		return inv, nil
	}
	if inv, ok := ws.InvoiceByID(ref); ok {
		return inv, nil
	}
	return model.Invoice{}, fmt.Errorf("invoice %s: %w", ref, model.ErrNotFound)
}

var listFlags = []cli.Flag{
	&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "match number, client name or email"},
	&cli.StringFlag{Name: "status", Value: string(model.InvoiceStatusAll), Usage: "draft, sent, paid, overdue or all"},
	&cli.StringFlag{Name: "from", Usage: "first issue date (YYYY-MM-DD)"},
	&cli.StringFlag{Name: "to", Usage: "last issue date (YYYY-MM-DD)"},
	&cli.StringFlag{Name: "sort", Value: model.SortByDate, Usage: "date, number or amount"},
	&cli.StringFlag{Name: "order", Value: model.OrderDesc, Usage: "asc or desc"},
}

func listQuery(c *cli.Context) model.InvoiceListQuery {
	return model.InvoiceListQuery{
		Search: c.String("search"),
		Status: model.InvoiceStatus(c.String("status")),
		From:   c.String("from"),
		To:     c.String("to"),
		Sort:   c.String("sort"),
		Order:  c.String("order"),
	}
}

func invoiceCommand() *cli.Command {
	return &cli.Command{
		Name:    "invoice",
		Aliases: []string{"inv"},
		Usage:   "manage invoices",
		Subcommands: []*cli.Command{
			{
				Name:  "new",
				Usage: "create and save an invoice",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "client", Required: true, Usage: "client name"},
					&cli.StringFlag{Name: "email", Usage: "client email"},
					&cli.StringFlag{Name: "phone", Usage: "client phone"},
					&cli.StringFlag{Name: "address", Usage: "client address"},
					itemFlag,
					&cli.StringFlag{Name: "due", Usage: "due date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "notes"},
					&cli.StringFlag{Name: "terms", Usage: "payment terms"},
					&cli.StringFlag{Name: "reference", Usage: "purchase order or reference number"},
					&cli.Float64Flag{Name: "discount", Usage: "flat discount"},
				},
				Action: workspaceAction(newInvoice),
			},
			{
				Name:   "list",
				Usage:  "list invoices",
				Flags:  listFlags,
				Action: workspaceAction(listInvoices),
			},
			{
				Name:      "show",
				Usage:     "show one invoice",
				ArgsUsage: "NUMBER",
				Action:    workspaceAction(showInvoice),
			},
			{
				Name:      "duplicate",
				Usage:     "copy an invoice as a new draft",
				ArgsUsage: "NUMBER",
				Action:    workspaceAction(duplicateInvoice),
			},
			{
				Name:      "delete",
				Usage:     "delete an invoice",
				ArgsUsage: "NUMBER",
				Action:    workspaceAction(deleteInvoice),
			},
			{
				Name:      "status",
				Usage:     "set the status of an invoice",
				ArgsUsage: "NUMBER draft|sent|paid|overdue",
				Action:    workspaceAction(setInvoiceStatus),
			},
		},
	}
}

func itemCommand() *cli.Command {
	return &cli.Command{
		Name:  "item",
		Usage: "manage line items",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "append line items to an invoice",
				ArgsUsage: "NUMBER",
				Flags:     []cli.Flag{itemFlag},
				Action:    workspaceAction(addItems),
			},
		},
	}
}

func firstArg(c *cli.Context, what string) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("missing %s", what)
	}
	return c.Args().First(), nil
}

func newInvoice(c *cli.Context, ws *model.Workspace) error {
	inv, err := ws.CreateNewInvoice()
	if err != nil {
		return err
	}
	inv.Client.Name = c.String("client")
	inv.Client.Email = c.String("email")
	inv.Client.Phone = c.String("phone")
	inv.Client.Address = c.String("address")
	// reuse the id of a known client so the snapshot points at it
	for _, known := range ws.Clients() {
		if strings.EqualFold(known.Name, inv.Client.Name) {
			inv.Client = known
			break
		}
	}
	if specs := c.StringSlice("item"); len(specs) > 0 {
		if inv.LineItems, err = parseItems(specs); err != nil {
			return err
		}
	}
	if c.IsSet("due") {
		inv.DueDate = c.String("due")
	}
	if c.IsSet("notes") {
		inv.Notes = c.String("notes")
	}
	if c.IsSet("terms") {
		inv.PaymentTerms = c.String("terms")
	}
	inv.ReferenceNumber = c.String("reference")
	if d := c.Float64("discount"); d > 0 {
		inv.DiscountAmount = d
	}
	if err = ws.SaveInvoice(inv); err != nil {
		return err
	}
	ws.SetCurrentInvoice(nil)
	fmt.Fprintf(c.App.Writer, "created %s for %s, total %s\n",
		inv.InvoiceNumber, inv.Client.Name, model.FormatCurrency(inv.Totals().Total))
	return nil
}

func listInvoices(c *cli.Context, ws *model.Workspace) error {
	invoices := model.ListInvoices(ws.Invoices(), listQuery(c))
	printInvoiceTable(c.App.Writer, invoices, time.Now())
	return nil
}

func printInvoiceTable(w io.Writer, invoices []model.Invoice, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tSTATUS\tCLIENT\tISSUED\tDUE\tTOTAL")
	for _, inv := range invoices {
		due := model.FormatShortDate(inv.DueDate)
		if inv.Status == model.InvoiceStatusSent || inv.Status == model.InvoiceStatusOverdue {
			due += " (" + model.FormatDue(inv.DueDate, now) + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.InvoiceNumber,
			inv.Status,
			inv.Client.Name,
			model.FormatShortDate(inv.IssueDate),
			due,
			model.FormatCurrency(inv.Totals().Total),
		)
	}
	tw.Flush()
}

func printInvoice(w io.Writer, inv model.Invoice) {
	fmt.Fprintf(w, "Invoice %s (%s)\n", inv.InvoiceNumber, inv.Status)
	fmt.Fprintf(w, "Issued %s, due %s\n", model.FormatDate(inv.IssueDate), model.FormatDate(inv.DueDate))
	if inv.ReferenceNumber != "" {
		fmt.Fprintf(w, "Reference %s\n", inv.ReferenceNumber)
	}
	fmt.Fprintf(w, "\nFrom: %s\nTo:   %s\n\n", inv.BusinessInfo.Name, inv.Client.Name)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESCRIPTION\tQTY\tPRICE\tTAX\tAMOUNT\t")
	for _, item := range inv.LineItems {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%g%%\t%s\t\n",
			item.Description, item.Quantity,
			model.FormatCurrency(decimal.NewFromFloat(item.UnitPrice)),
			item.TaxRate,
			model.FormatCurrency(model.LineAmount(item)),
		)
	}
	t := inv.Totals()
	fmt.Fprintf(tw, "\t\t\tSubtotal\t%s\t\n", model.FormatCurrency(t.Subtotal))
	fmt.Fprintf(tw, "\t\t\tTax\t%s\t\n", model.FormatCurrency(t.Tax))
	if inv.DiscountAmount > 0 {
		fmt.Fprintf(tw, "\t\t\tDiscount\t-%s\t\n", model.FormatCurrency(t.Discount))
	}
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\t\n", model.FormatCurrency(t.Total))
	tw.Flush()

	if inv.PaymentTerms != "" {
		fmt.Fprintf(w, "\n%s\n", inv.PaymentTerms)
	}
	if inv.Notes != "" {
		fmt.Fprintf(w, "\n%s\n", inv.Notes)
	}
}

func showInvoice(c *cli.Context, ws *model.Workspace) error {
	ref, err := firstArg(c, "invoice number")
	if err != nil {
		return err
	}
	inv, err := findInvoice(ws, ref)
	if err != nil {
		return err
	}
	printInvoice(c.App.Writer, inv)
	return nil
}

func duplicateInvoice(c *cli.Context, ws *model.Workspace) error {
	ref, err := firstArg(c, "invoice number")
	if err != nil {
		return err
	}
	src, err := findInvoice(ws, ref)
	if err != nil {
		return err
	}
	dup, err := ws.DuplicateInvoice(src.ID)
	if err != nil {
		return err
	}
	if err = ws.SaveInvoice(dup); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "created %s as a copy of %s\n", dup.InvoiceNumber, src.InvoiceNumber)
	return nil
}

func deleteInvoice(c *cli.Context, ws *model.Workspace) error {
	ref, err := firstArg(c, "invoice number")
	if err != nil {
		return err
	}
	inv, err := findInvoice(ws, ref)
	if err != nil {
		return err
	}
	if err = ws.DeleteInvoice(inv.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %s\n", inv.InvoiceNumber)
	return nil
}

func setInvoiceStatus(c *cli.Context, ws *model.Workspace) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: invoice status NUMBER STATUS")
	}
	inv, err := findInvoice(ws, c.Args().Get(0))
	if err != nil {
		return err
	}
	status, err := model.ParseInvoiceStatus(c.Args().Get(1))
	if err != nil {
		return err
	}
	inv.Status = status
	if err = ws.PutInvoice(inv); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s is now %s\n", inv.InvoiceNumber, status)
	return nil
}

func addItems(c *cli.Context, ws *model.Workspace) error {
	ref, err := firstArg(c, "invoice number")
	if err != nil {
		return err
	}
	inv, err := findInvoice(ws, ref)
	if err != nil {
		return err
	}
	items, err := parseItems(c.StringSlice("item"))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no --item given")
	}
	inv.LineItems = append(inv.LineItems, items...)
	if err = ws.SaveInvoice(inv); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s has %d line items, total %s\n",
		inv.InvoiceNumber, len(inv.LineItems), model.FormatCurrency(inv.Totals().Total))
	return nil
}

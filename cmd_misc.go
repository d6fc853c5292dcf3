package main

import (
	"errors"
	"fmt"

	"github.com/billingcat/invoicedesk/model"
	"github.com/urfave/cli/v2"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "count invoices per status",
		Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
			st := ws.Stats()
			w := c.App.Writer
			fmt.Fprintf(w, "Invoices:    %d\n", st.Total)
			fmt.Fprintf(w, "  draft      %d\n", st.Draft)
			fmt.Fprintf(w, "  sent       %d\n", st.Sent)
			fmt.Fprintf(w, "  paid       %d\n", st.Paid)
			fmt.Fprintf(w, "  overdue    %d\n", st.Overdue)
			fmt.Fprintf(w, "Outstanding: %s\n", model.FormatCurrency(st.Outstanding))
			fmt.Fprintf(w, "Collected:   %s\n", model.FormatCurrency(st.Collected))
			fmt.Fprintf(w, "Clients:     %d\n", len(ws.Clients()))
			return nil
		}),
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "delete all invoices, clients and the business profile",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "confirm, nothing happens without it"},
		},
		Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
			if !c.Bool("yes") {
				return errors.New("this deletes all data, run again with --yes")
			}
			if err := ws.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "all data cleared")
			return nil
		}),
	}
}

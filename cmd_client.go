package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/billingcat/invoicedesk/model"
	"github.com/urfave/cli/v2"
)

func clientCommand() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "manage the client list",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "add a client",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					cl, err := ws.SaveClient(model.Client{
						Name:    c.String("name"),
						Email:   c.String("email"),
						Phone:   c.String("phone"),
						Address: c.String("address"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "added %s (%s)\n", cl.Name, cl.ID)
					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "list clients",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "match name or email"},
				},
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					clients := model.SearchClients(ws.Clients(), c.String("search"))
					tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
					for _, cl := range clients {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cl.ID, cl.Name, cl.Email, cl.Phone)
					}
					return tw.Flush()
				}),
			},
			{
				Name:      "update",
				Usage:     "change the contact data of a client",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					id, err := firstArg(c, "client id")
					if err != nil {
						return err
					}
					i := slices.IndexFunc(ws.Clients(), func(cl model.Client) bool { return cl.ID == id })
					if i < 0 {
						return fmt.Errorf("client %s: %w", id, model.ErrNotFound)
					}
					cl := ws.Clients()[i]
					for flag, field := range map[string]*string{
						"name":    &cl.Name,
						"email":   &cl.Email,
						"phone":   &cl.Phone,
						"address": &cl.Address,
					} {
						if c.IsSet(flag) {
							*field = c.String(flag)
						}
					}
					if cl, err = ws.SaveClient(cl); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "updated %s (%s)\n", cl.Name, cl.ID)
					return nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "remove a client, invoices keep their copy",
				ArgsUsage: "ID",
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					id, err := firstArg(c, "client id")
					if err != nil {
						return err
					}
					return ws.DeleteClient(id)
				}),
			},
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/billingcat/invoicedesk/model"
	"github.com/urfave/cli/v2"
)

func businessCommand() *cli.Command {
	return &cli.Command{
		Name:  "business",
		Usage: "show or change the business profile",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the business profile",
				Action: workspaceAction(func(c *cli.Context, ws *model.Workspace) error {
					b := ws.BusinessInfo()
					w := c.App.Writer
					fmt.Fprintf(w, "Name:          %s\n", b.Name)
					fmt.Fprintf(w, "Email:         %s\n", b.Email)
					fmt.Fprintf(w, "Phone:         %s\n", b.Phone)
					fmt.Fprintf(w, "Address:       %s\n", b.Address)
					fmt.Fprintf(w, "Tax ID:        %s\n", b.TaxID)
					fmt.Fprintf(w, "Payment terms: %s\n", b.DefaultPaymentTerms)
					fmt.Fprintf(w, "Notes:         %s\n", b.DefaultNotes)
					if b.Logo != "" {
						fmt.Fprintf(w, "Logo:          %d bytes\n", len(b.Logo))
					}
					return nil
				}),
			},
			{
				Name:  "set",
				Usage: "change fields of the business profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
					&cli.StringFlag{Name: "tax-id"},
					&cli.StringFlag{Name: "terms", Usage: "default payment terms"},
					&cli.StringFlag{Name: "notes", Usage: "default notes"},
					&cli.PathFlag{Name: "logo", Usage: "image file, stored as data URL"},
				},
				Action: workspaceAction(setBusiness),
			},
		},
	}
}

func setBusiness(c *cli.Context, ws *model.Workspace) error {
	b := ws.BusinessInfo()
	fields := map[string]*string{
		"name":    &b.Name,
		"email":   &b.Email,
		"phone":   &b.Phone,
		"address": &b.Address,
		"tax-id":  &b.TaxID,
		"terms":   &b.DefaultPaymentTerms,
		"notes":   &b.DefaultNotes,
	}
	for flag, field := range fields {
		if c.IsSet(flag) {
			*field = c.String(flag)
		}
	}
	if msg := model.EmailError(b.Email); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if msg := model.PhoneError(b.Phone); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if c.IsSet("logo") {
		data, err := os.ReadFile(c.Path("logo"))
		if err != nil {
			return err
		}
		b.Logo = model.LogoDataURL(data)
	}
	return ws.UpdateBusinessInfo(b)
}

package main

import (
	"github.com/billingcat/invoicedesk/controller"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the web application",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port, overrides the configuration"},
			&cli.StringFlag{Name: "public", Usage: "directory of the built web application"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}
			if c.IsSet("public") {
				cfg.Public = c.String("public")
			}
			return controller.NewController(cfg, newLogger(cfg))
		},
	}
}

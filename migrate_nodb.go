//go:build !postgres && !sqlite

package main

import (
	"errors"

	"github.com/billingcat/invoicedesk/model"
)

var errNoMigrationDriver = errors.New("migrate needs a binary built with -tags postgres or -tags sqlite")

func migrationsDir() string { return "" }

func migrateDSN(_ *model.Config) (string, error) { return "", errNoMigrationDriver }

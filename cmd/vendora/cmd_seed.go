package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vendora/vendora/config"
	"github.com/vendora/vendora/database/seeders"
	"github.com/vendora/vendora/pkg/database"
)

// vendora seed runs all registered seeders against the configured
// database and exit.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background()) //nolint:errcheck

		if err := db.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := seeders.RunAll(ctx, db); err != nil {
			return err
		}

		fmt.Println("Seeding complete.")
		return nil
	},
}

package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/emrgen/jobpost/internal/config"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/service"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
	dbCmd.AddCommand(ResetHomeCards())
}

// Migrate creates or updates the tables. A new database gets the default
// home cards.
func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			if err := model.Migrate(db); err != nil {
				logrus.Fatal(err)
			}
			color.Green("database migrated")
		},
	}

	return command
}

func ResetHomeCards() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset-cards",
		Short: "Replace the home page cards with the defaults",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			cards := service.NewHomeCardService(store.NewGormStore(db))

			res, err := cards.ResetHomeCards(context.Background())
			if err != nil {
				logrus.Fatal(err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "Card", "Title", "Last date"})
			for _, card := range res.Cards {
				table.Append([]string{strconv.Itoa(card.Position), string(card.Category), card.Title, card.LastDate})
			}
			table.Render()
		},
	}

	return command
}

package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/deliverydash/cmd/app/commands"
)

func getToolCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "tags",
			Usage: "Print the Shopify order tags and note for a delivery choice",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "type",
					Aliases: []string{"t"},
					Value:   "delivery",
					Usage:   "Delivery type: delivery, collection or express",
				},
				&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Delivery date (YYYY-MM-DD)"},
				&cli.StringFlag{Name: "start", Usage: "Time slot start (HH:MM)"},
				&cli.StringFlag{Name: "end", Usage: "Time slot end (HH:MM)"},
				&cli.StringFlag{Name: "slot-name", Usage: "Time slot display name"},
				&cli.StringFlag{Name: "location", Usage: "Collection location"},
				&cli.StringFlag{Name: "postal-code", Usage: "Delivery postal code"},
				&cli.FloatFlag{Name: "fee", Usage: "Express fee paid"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunTags(commands.DefaultIO(), commands.TagsInput{
					Type:       cmd.String("type"),
					Date:       cmd.String("date"),
					Start:      cmd.String("start"),
					End:        cmd.String("end"),
					SlotName:   cmd.String("slot-name"),
					Location:   cmd.String("location"),
					PostalCode: cmd.String("postal-code"),
					Fee:        cmd.Float("fee"),
				}, cmd.String("format"))
			},
		},
	}
}

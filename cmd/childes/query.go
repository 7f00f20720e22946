package main

import (
	"github.com/revelaction/childes/query"
	"github.com/revelaction/childes/render"

	"github.com/urfave/cli/v2"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "browse the corpus interactively",
		Action: func(c *cli.Context) error {
			r, err := loadReader(c)
			if err != nil {
				return err
			}

			tr := render.NewTextRenderer(ui.Out)
			tr.HasColor = !c.Bool("no-color")

			h := query.NewHandler(r, tr)
			return h.Run()
		},
	}
}

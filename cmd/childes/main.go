package main

import (
	"fmt"
	"io"
	"os"

	"github.com/revelaction/childes/config"

	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	cfg, err := config.Load()
	if err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}

	if err := newApp(cfg, ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "childes: %v\n", err)
}

func newApp(cfg *config.Config, ui UI) *cli.App {
	return &cli.App{
		Name:      "childes",
		Usage:     "extract words, stems, tags and MLU from CHAT transcripts",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "corpus root directory",
				Value: cfg.CorpusDir,
			},
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "file pattern inside the corpus root",
				Value: cfg.Pattern,
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable ANSI colors",
				Value: cfg.NoColor,
			},
		},
		Commands: []*cli.Command{
			lsCommand(ui),
			wordsCommand(ui),
			sentsCommand(ui),
			mluCommand(ui),
			ageCommand(ui),
			participantsCommand(ui),
			infoCommand(ui),
			statCommand(ui),
			importCommand(cfg, ui),
			queryCommand(ui),
		},
	}
}

package main

import (
	"fmt"
	"sort"

	"github.com/revelaction/childes/config"
	"github.com/revelaction/childes/corpus"
	"github.com/revelaction/childes/extract"
	"github.com/revelaction/childes/render"
	"github.com/revelaction/childes/stat"
	"github.com/revelaction/childes/storage"
	"github.com/revelaction/childes/storage/sqlite/zombiezen"
	"github.com/revelaction/childes/transcript"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

// fileFlag selects one document; without it a command covers the whole
// corpus.
func fileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "file id (default: all files)",
	}
}

func speakerFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "speaker",
		Aliases: []string{"s"},
		Usage:   "participant code (CHI, MOT, ...)",
		Value:   transcript.SpeakerAll,
	}
}

func extractFlags() []cli.Flag {
	return []cli.Flag{
		fileFlag(),
		speakerFlag(),
		&cli.BoolFlag{Name: "stem", Usage: "use morphological stems"},
		&cli.BoolFlag{Name: "pos", Usage: "append part-of-speech tags"},
		&cli.BoolFlag{Name: "replace", Usage: "use corrected word forms"},
		&cli.BoolFlag{Name: "no-strip", Usage: "keep surrounding whitespace"},
		&cli.BoolFlag{Name: "json", Usage: "JSON output"},
	}
}

func options(c *cli.Context) extract.Options {
	return extract.Options{
		Speaker:    c.String("speaker"),
		Stem:       c.Bool("stem"),
		Pos:        c.Bool("pos"),
		Relation:   c.Bool("relation"),
		Replace:    c.Bool("replace"),
		StripSpace: !c.Bool("no-strip"),
	}
}

func newReader(c *cli.Context) (*corpus.Reader, error) {
	return corpus.New(c.String("corpus"), c.String("pattern"))
}

// loadReader preloads the whole corpus behind a progress bar, the way
// the interactive commands need it.
func loadReader(c *cli.Context) (*corpus.Reader, error) {
	r, err := newReader(c)
	if err != nil {
		return nil, err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(r.FileIDs()))
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		ids := r.FileIDs()
		if b.Current() == 0 {
			return ""
		}
		return ids[b.Current()-1]
	})

	err = r.Load(func(total int, name string) {
		bar.Incr()
	})
	uiprogress.Stop()
	if err != nil {
		return nil, err
	}

	return r, nil
}

func renderer(c *cli.Context, ui UI) render.Renderer {
	if c.Bool("json") {
		return render.NewJSONRenderer(ui.Out)
	}

	r := render.NewTextRenderer(ui.Out)
	r.HasColor = !c.Bool("no-color")
	return r
}

func lsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the corpus file ids",
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			for i, id := range r.FileIDs() {
				fmt.Fprintf(ui.Out, "📖 %d %s \n", i, id)
			}

			return nil
		},
	}
}

func wordsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "words",
		Usage: "print the extracted words as one flat sequence",
		Flags: extractFlags(),
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			tokens, err := r.Words(c.String("file"), options(c))
			if err != nil {
				return err
			}

			renderer(c, ui).Render(extract.Result{Tokens: tokens})
			return nil
		},
	}
}

func sentsCommand(ui UI) *cli.Command {
	flags := append(extractFlags(),
		&cli.BoolFlag{Name: "relation", Usage: "attach dependency relations"})

	return &cli.Command{
		Name:  "sents",
		Usage: "print the extracted words grouped by utterance",
		Flags: flags,
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			groups, err := r.Sents(c.String("file"), options(c))
			if err != nil {
				return err
			}

			renderer(c, ui).Render(extract.Result{Grouped: true, Groups: groups})
			return nil
		},
	}
}

func mluCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "mlu",
		Usage: "print the target child's mean length of utterance per file",
		Flags: []cli.Flag{fileFlag()},
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			id := c.String("file")
			ids, values, err := perFile(r, id, r.MLU)
			if err != nil {
				return err
			}

			for i, fid := range ids {
				fmt.Fprintf(ui.Out, "✍  %s %.3f\n", fid, values[i])
			}

			return nil
		},
	}
}

func ageCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "age",
		Usage: "print the target child's age per file",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.BoolFlag{Name: "months", Usage: "convert to total months"},
		},
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			id := c.String("file")
			if c.Bool("months") {
				ids, months, err := perFile(r, id, r.AgesMonths)
				if err != nil {
					return err
				}

				for i, fid := range ids {
					if months[i] == nil {
						fmt.Fprintf(ui.Out, "✍  %s -\n", fid)
						continue
					}
					fmt.Fprintf(ui.Out, "✍  %s %d\n", fid, *months[i])
				}

				return nil
			}

			ids, ages, err := perFile(r, id, r.Ages)
			if err != nil {
				return err
			}

			for i, fid := range ids {
				age := ages[i]
				if age == "" {
					age = "-"
				}
				fmt.Fprintf(ui.Out, "✍  %s %s\n", fid, age)
			}

			return nil
		},
	}
}

// perFile pairs the result slice of a corpus operation with the file
// ids it covers.
func perFile[T any](r *corpus.Reader, id string, op func(string) ([]T, error)) ([]string, []T, error) {
	values, err := op(id)
	if err != nil {
		return nil, nil, err
	}

	ids := r.FileIDs()
	if id != "" {
		ids = []string{id}
	}

	return ids, values, nil
}

func participantsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "participants",
		Usage: "print the participant metadata per file",
		Flags: []cli.Flag{fileFlag()},
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			ids, tables, err := perFile(r, c.String("file"), r.Participants)
			if err != nil {
				return err
			}

			for i, fid := range ids {
				fmt.Fprintf(ui.Out, "📖 %s\n", fid)
				printSorted(ui, tables[i])
			}

			return nil
		},
	}
}

func printSorted(ui UI, table transcript.Participants) {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		keys := make([]string, 0, len(table[code]))
		for k := range table[code] {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(ui.Out, "\t%s %s: %s\n", code, k, table[code][k])
		}
	}
}

func infoCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print the corpus metadata attributes per file",
		Flags: []cli.Flag{fileFlag()},
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			ids, infos, err := perFile(r, c.String("file"), r.Info)
			if err != nil {
				return err
			}

			for i, fid := range ids {
				fmt.Fprintf(ui.Out, "📖 %s\n", fid)

				keys := make([]string, 0, len(infos[i]))
				for k := range infos[i] {
					keys = append(keys, k)
				}
				sort.Strings(keys)

				for _, k := range keys {
					fmt.Fprintf(ui.Out, "\t%s: %s\n", k, infos[i][k])
				}
			}

			return nil
		},
	}
}

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "print utterance and token statistics",
		Flags: []cli.Flag{fileFlag(), speakerFlag()},
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			groups, err := r.Sents(c.String("file"), extract.Options{
				Speaker:    c.String("speaker"),
				StripSpace: true,
			})
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()
			hdl.Aggregate(groups)

			stats := hdl.Get()
			fmt.Fprintf(ui.Out, "Num utterances %d, num tokens %d, tokens per utterance %.2f\n",
				stats.NumUtterances, stats.NumTokens, stats.TokensPerUtteranceMean)

			return nil
		},
	}
}

func importCommand(cfg *config.Config, ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "extract the corpus and store it in SQLite",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "SQLite database path", Value: cfg.DBPath},
		},
		Action: func(c *cli.Context) error {
			r, err := newReader(c)
			if err != nil {
				return err
			}

			pool, err := zombiezen.NewPool(c.String("db"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateTranscriptTables(pool); err != nil {
				return fmt.Errorf("failed to create transcript tables: %w", err)
			}

			dst := zombiezen.NewTranscriptStore(pool)

			fmt.Fprintf(ui.Out, "Reading transcripts from %s...\n", c.String("corpus"))

			ex := extract.New(extract.Options{
				Stem:       true,
				Pos:        true,
				Replace:    true,
				StripSpace: true,
			})

			uiprogress.Start()
			bar := uiprogress.AddBar(len(r.FileIDs()))
			bar.AppendCompleted()
			bar.PrependElapsed()

			count := 0
			for _, fid := range r.FileIDs() {
				t, err := r.Transcript(fid)
				if err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to read transcript %s: %w", fid, err)
				}

				entry := storage.Entry{
					Name:   t.Name,
					Corpus: t.Attrs["Corpus"],
				}
				if m, ok := t.AgeMonths(); ok {
					entry.AgeMonths = &m
				}
				for _, u := range t.Utterances {
					entry.Utterances = append(entry.Utterances, storage.Utterance{
						Speaker: u.Speaker,
						Tokens:  ex.Utterance(u),
					})
				}

				if err := dst.Write(entry); err != nil {
					uiprogress.Stop()
					return fmt.Errorf("failed to store transcript %s: %w", fid, err)
				}

				count++
				bar.Incr()
			}
			uiprogress.Stop()

			fmt.Fprintf(ui.Out, "Imported %d transcripts into %s\n", count, c.String("db"))
			return nil
		},
	}
}

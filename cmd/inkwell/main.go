package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/eringen/inkwell"
	"github.com/eringen/inkwell/content"
	"github.com/eringen/inkwell/markdown"
	"github.com/eringen/inkwell/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := &cli.App{
		Name:    "inkwell",
		Usage:   "A blog engine with a scroll-synchronized table of contents",
		Version: version,
		Commands: []*cli.Command{
			serveCommand,
			checkCommand,
			importCommand,
			tocCommand,
			{
				Name:  "version",
				Usage: "Print the inkwell version",
				Action: func(cCtx *cli.Context) error {
					fmt.Printf("inkwell %s\n", version)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run the blog server configured from the environment",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "static", Value: "public", Usage: "directory for static assets"},
	},
	Action: func(cCtx *cli.Context) error {
		cfg, err := inkwell.LoadConfig()
		if err != nil {
			return err
		}
		app := inkwell.New(cfg, views.Funcs(cfg), inkwell.WithStaticDir(cCtx.String("static")))
		defer app.Close()

		ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Echo.Shutdown(shutdownCtx)
	},
}

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "Validate the front matter of every post in a content directory",
	ArgsUsage: "<dir>",
	Action: func(cCtx *cli.Context) error {
		dir := cCtx.Args().First()
		if dir == "" {
			return errors.New("check: content directory required")
		}
		coll, err := content.Load(dir)
		if coll != nil {
			fmt.Printf("%d valid posts in %s\n", len(coll.Entries), dir)
		}
		return err
	},
}

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "Import a content directory into the database",
	ArgsUsage: "<dir>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "db", Value: inkwell.EnvOr("DATABASE_PATH", "data/blog.db"), Usage: "SQLite database path"},
		&cli.StringFlag{Name: "static", Value: "public", Usage: "directory hero images are written under"},
	},
	Action: func(cCtx *cli.Context) error {
		dir := cCtx.Args().First()
		if dir == "" {
			return errors.New("import: content directory required")
		}
		store, err := inkwell.NewStore(cCtx.String("db"))
		if err != nil {
			return err
		}
		defer store.Close()

		imp := &inkwell.Importer{Store: store, StaticDir: cCtx.String("static")}
		n, err := imp.ImportDir(dir)
		fmt.Printf("imported %d posts\n", n)
		return err
	},
}

var tocCommand = &cli.Command{
	Name:      "toc",
	Usage:     "Print the heading index of a markdown file",
	ArgsUsage: "<file>",
	Action: func(cCtx *cli.Context) error {
		path := cCtx.Args().First()
		if path == "" {
			return errors.New("toc: file required")
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, body, err := content.SplitFrontMatter(src); err == nil {
			src = body
		}
		for _, h := range markdown.Headings(src) {
			fmt.Printf("%*s- %s (#%s)\n", 2*(h.Depth-1), "", h.Text, h.Slug)
		}
		return nil
	},
}

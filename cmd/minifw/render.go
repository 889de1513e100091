package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minifw/internal/config"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/router"
)

func renderCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		add  []string
		done []int
		ids  bool
	)

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render the todo app to HTML",
		Long: `Render the todo app at a route and print the body HTML.

Examples:
  minifw render
  minifw render /active --add milk --add eggs --done 1
  minifw render /completed --ids`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd.OutOrStdout(), cfg, path, add, done, ids)
		},
	}

	cmd.Flags().StringArrayVar(&add, "add", nil, "Add an item before rendering (repeatable)")
	cmd.Flags().IntSliceVar(&done, "done", nil, "Mark item IDs done before rendering")
	cmd.Flags().BoolVar(&ids, "ids", false, "Include node IDs in the output")

	return cmd
}

func runRender(w io.Writer, cfg *config.Config, path string, add []string, done []int, ids bool) error {
	b := &builder{cfg: cfg, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	doc := host.NewDocument()
	inst, td, err := b.build(doc, router.NewBrowser(b.url("/")), "")
	if err != nil {
		return err
	}
	defer inst.Destroy()

	for _, title := range add {
		td.Add(title)
	}
	for _, id := range done {
		td.Toggle(id)
	}
	td.Navigate(path)

	if ids {
		fmt.Fprintln(w, doc.HTMLWithIDs(doc.Body()))
	} else {
		fmt.Fprintln(w, doc.InnerHTML(doc.Body()))
	}
	return nil
}

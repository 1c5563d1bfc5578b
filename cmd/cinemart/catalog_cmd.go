package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/cinemart/internal/catalog"
)

// newGenresCmd returns the "genres" subcommand listing the selectable genres.
func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the selectable genres",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printGenres(cmd.OutOrStdout())
		},
	}
}

// newRatingsCmd returns the "ratings" subcommand listing the rating presets.
func newRatingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ratings",
		Short: "List the rating presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printRatings(cmd.OutOrStdout())
		},
	}
}

func printGenres(w io.Writer) {
	fmt.Fprintln(w, styleHeader.Render("Genres"))
	for _, g := range catalog.Genres() {
		fmt.Fprintf(w, "  %s  %s\n", styleDim.Render(fmt.Sprintf("%5d", g.ID)), g.Name)
	}
}

func printRatings(w io.Writer) {
	fmt.Fprintln(w, styleHeader.Render("Ratings"))
	for _, r := range catalog.Ratings() {
		fmt.Fprintf(w, "  %s  %-10s %s\n",
			styleDim.Render(fmt.Sprintf("%d", r.ID)), r.Label, styleDim.Render(r.Range.String()))
	}
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"probenbuch/internal/pieces"
)

func newPieceCommand(ctx *commandContext) *cobra.Command {
	pieceCmd := &cobra.Command{
		Use:     "piece",
		Aliases: []string{"pieces"},
		Short:   "Browse and extend the piece catalog",
	}

	pieceCmd.AddCommand(newPieceListCommand(ctx))
	pieceCmd.AddCommand(newPieceSearchCommand(ctx))
	pieceCmd.AddCommand(newPieceAddCommand(ctx))

	return pieceCmd
}

func loadCatalog(cmd *cobra.Command, ctx *commandContext) ([]pieces.Piece, error) {
	client, err := ctx.client()
	if err != nil {
		return nil, err
	}
	rows, err := client.ListPieces(cmd.Context())
	if err != nil {
		return nil, err
	}
	return pieces.FromRows(rows), nil
}

func newPieceListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the piece catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd, ctx)
			if err != nil {
				return err
			}
			printPieceTable(cmd, catalog)
			fmt.Fprintf(cmd.OutOrStdout(), "%d pieces\n", len(catalog))
			return nil
		},
	}
}

func newPieceSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find pieces whose label contains the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd, ctx)
			if err != nil {
				return err
			}
			selector := pieces.NewSelector(catalog, nil, nil)
			matches := selector.Suggest(args[0])
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			printPieceTable(cmd, matches)
			return nil
		},
	}
}

func newPieceAddCommand(ctx *commandContext) *cobra.Command {
	var folder string
	var page string
	var composer string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a piece to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("piece name must not be blank")
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd, ctx)
			if err != nil {
				return err
			}
			hintNewValue(cmd, "folder", folder, pieces.Folders(catalog))
			hintNewValue(cmd, "composer", composer, pieces.Composers(catalog))

			fields := map[string]any{"Name": name}
			if folder != "" {
				fields["Heft/Noten"] = folder
			}
			if page != "" {
				fields["Seite"] = page
			}
			if composer != "" {
				fields["Komponist"] = composer
			}
			created, err := client.CreatePiece(cmd.Context(), fields)
			if err != nil {
				return err
			}

			ctx.ensureLogger().Info("piece created", "id", created.ID, "name", created.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q (id %d)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Folder or sheet collection the piece lives in")
	cmd.Flags().StringVar(&page, "page", "", "Page number within the folder")
	cmd.Flags().StringVar(&composer, "composer", "", "Composer name")
	return cmd
}

// hintNewValue warns when a folder or composer value is not in the catalog
// yet, listing near matches so typos do not fragment the option pools.
func hintNewValue(cmd *cobra.Command, kind, value string, known []string) {
	if value == "" {
		return
	}
	for _, option := range known {
		if option == value {
			return
		}
	}
	if near := pieces.MatchOptions(known, value); len(near) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Note: new %s %q; similar existing: %s\n", kind, value, strings.Join(near, ", "))
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Note: new %s %q\n", kind, value)
}

func printPieceTable(cmd *cobra.Command, catalog []pieces.Piece) {
	rows := make([][]string, 0, len(catalog))
	for _, piece := range catalog {
		rows = append(rows, []string{
			strconv.FormatInt(piece.ID, 10),
			piece.Name,
			piece.Folder,
			piece.Page,
			piece.Composer,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Name", "Folder", "Page", "Composer"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))
}

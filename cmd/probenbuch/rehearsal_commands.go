package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"probenbuch/internal/baserow"
	"probenbuch/internal/pieces"
	"probenbuch/internal/rehearsal"
	"probenbuch/internal/roster"
)

func newRehearsalCommand(ctx *commandContext) *cobra.Command {
	rehearsalCmd := &cobra.Command{
		Use:     "rehearsal",
		Aliases: []string{"probe"},
		Short:   "Inspect and manage rehearsals",
	}

	rehearsalCmd.AddCommand(newRehearsalListCommand(ctx))
	rehearsalCmd.AddCommand(newRehearsalAddCommand(ctx))
	rehearsalCmd.AddCommand(newRehearsalShowCommand(ctx))
	rehearsalCmd.AddCommand(newRehearsalEditCommand(ctx))

	return rehearsalCmd
}

func newRehearsalListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rehearsals, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			records, err := client.ListRehearsals(cmd.Context())
			if err != nil {
				return err
			}
			sort.SliceStable(records, func(i, j int) bool {
				return records[i].Date > records[j].Date
			})

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					strconv.FormatInt(record.ID, 10),
					record.Date,
					record.Name,
					strconv.Itoa(len(record.Present)),
					strconv.Itoa(len(record.Excused)),
					strconv.Itoa(len(record.Pieces)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Date", "Name", "Present", "Excused", "Pieces"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d rehearsals\n", len(records))
			return nil
		},
	}
}

func newRehearsalAddCommand(ctx *commandContext) *cobra.Command {
	var name string
	var date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a rehearsal, proposing the next name when omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if name == "" {
				records, err := client.ListRehearsals(cmd.Context())
				if err != nil {
					return err
				}
				proposed, ok := rehearsal.ProposeName(records, cfg.Naming.Marker, cfg.Naming.ExcludeMarker, cfg.Naming.PadWidth)
				if !ok {
					return fmt.Errorf("no ordinary rehearsal to derive a name from; pass --name")
				}
				name = proposed
			}

			created, err := rehearsal.Create(cmd.Context(), client, name, date)
			if err != nil {
				if errors.Is(err, rehearsal.ErrDuplicateDate) {
					return fmt.Errorf("not created: %w", err)
				}
				return err
			}

			ctx.ensureLogger().Info("rehearsal created", "id", created.ID, "name", created.Name, "date", created.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q for %s (id %d)\n", created.Name, created.Date, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Rehearsal name (defaults to the proposed next name)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "ISO date (defaults to today)")
	return cmd
}

func newRehearsalShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a rehearsal with attendance and pieces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}
			session, err := rehearsal.LoadSession(cmd.Context(), client, id, nil)
			if err != nil {
				return err
			}
			printSession(cmd, session)
			return nil
		},
	}
}

func newRehearsalEditCommand(ctx *commandContext) *cobra.Command {
	var notes string
	var present []int64
	var absent []int64
	var excuse []int64
	var unexcuse []int64
	var addPieces []string
	var removePieces []int64

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a rehearsal and save only what changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			session, err := rehearsal.LoadSession(cmd.Context(), client, id, pieceAllocator(cmd.Context(), client))
			if err != nil {
				return err
			}

			rosterIndex := roster.ByID(session.Roster)
			for _, playerID := range slices.Concat(present, absent, excuse, unexcuse) {
				if _, ok := rosterIndex[playerID]; !ok {
					return fmt.Errorf("player %d is not on the roster", playerID)
				}
			}

			if cmd.Flags().Changed("notes") {
				session.Notes = notes
			}
			for _, playerID := range present {
				session.TogglePresent(playerID, true)
			}
			for _, playerID := range absent {
				session.TogglePresent(playerID, false)
			}
			for _, playerID := range excuse {
				session.ToggleExcused(playerID, true)
			}
			for _, playerID := range unexcuse {
				session.ToggleExcused(playerID, false)
			}
			for _, query := range addPieces {
				if matches := session.Selector.Suggest(query); len(matches) == 1 {
					session.Selector.Select(matches[0].ID)
					continue
				}
				if _, err := session.Selector.Add(query); err != nil {
					return fmt.Errorf("add piece %q: %w", query, err)
				}
			}
			for _, pieceID := range removePieces {
				session.Selector.Deselect(pieceID)
			}

			if err := session.Save(cmd.Context()); err != nil {
				if errors.Is(err, rehearsal.ErrNoChanges) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to save.")
					return nil
				}
				return err
			}

			ctx.ensureLogger().Info("rehearsal saved", "id", session.RecordID)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q.\n", session.Name)
			printSession(cmd, session)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Replace the notes text")
	cmd.Flags().Int64SliceVar(&present, "present", nil, "Mark player IDs as present")
	cmd.Flags().Int64SliceVar(&absent, "absent", nil, "Unmark player IDs as present")
	cmd.Flags().Int64SliceVar(&excuse, "excuse", nil, "Mark player IDs as excused")
	cmd.Flags().Int64SliceVar(&unexcuse, "unexcuse", nil, "Unmark player IDs as excused")
	cmd.Flags().StringArrayVar(&addPieces, "piece", nil, "Add a performed piece by label match or new name")
	cmd.Flags().Int64SliceVar(&removePieces, "remove-piece", nil, "Remove piece IDs from the performed set")
	return cmd
}

// pieceAllocator registers inline pieces on the server so identifiers are
// assigned remotely rather than guessed locally.
func pieceAllocator(ctx context.Context, client *baserow.Client) pieces.IDAllocator {
	return func(name string) (int64, error) {
		created, err := client.CreatePiece(ctx, map[string]any{"Name": name})
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	}
}

func parseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

func printSession(cmd *cobra.Command, session *rehearsal.Session) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", session.Name, session.Date)
	if session.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", session.Notes)
	}

	rows := make([][]string, 0, len(session.Roster))
	for _, entry := range session.Roster {
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			entry.DisplayName,
			checkmark(session.Present.Has(entry.ID)),
			checkmark(session.Excused.Has(entry.ID)),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Player", "Present", "Excused"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))

	chosen := session.Selector.SelectedPieces()
	if len(chosen) == 0 {
		fmt.Fprintln(out, "No pieces selected.")
		return
	}
	fmt.Fprintln(out, "Pieces:")
	for _, piece := range chosen {
		fmt.Fprintf(out, "  - %s\n", piece.Label())
	}
}

func checkmark(on bool) string {
	if on {
		return "x"
	}
	return ""
}

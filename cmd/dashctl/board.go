package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/dashboard"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-admin-dashboard/components/dashboard/queries"
)

type boardCmd struct {
	Show boardShowCmd `cmd:"" help:"Print the board columns and their cards."`
	Move boardMoveCmd `cmd:"" help:"Move a card to a column position."`
}

type boardShowCmd struct {
	Format string `default:"table" enum:"table,json" help:"Output format (${enum})."`
}

func (cmd *boardShowCmd) Run(rc *runContext) error {
	svc, _, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	columns, err := queries.NewBoardQuery(svc).Query(rc.ctx, queries.BoardInput{})
	if err != nil {
		return err
	}
	if cmd.Format == "json" {
		return writeJSON(rc.out, columns)
	}
	return writeBoard(rc, columns)
}

func writeBoard(rc *runContext, columns []board.Column) error {
	tw := tabwriter.NewWriter(rc.out, 0, 4, 2, ' ', 0)
	for _, col := range columns {
		fmt.Fprintf(tw, "%s (%s)\t%d cards\t\t\n", col.Title, col.ID, len(col.Cards))
		for idx, card := range col.Cards {
			due := ""
			if !card.DueDate.IsZero() {
				due = card.DueDate.Format(board.DateLayout)
			}
			fmt.Fprintf(tw, "  %d. [%s] %s\t%s\t%s\t%s\n", idx, card.ID, card.Title, card.Priority, card.Assignee, due)
		}
	}
	return tw.Flush()
}

type boardMoveCmd struct {
	Card  string `arg:"" help:"Card id."`
	From  string `required:"" help:"Source column id."`
	To    string `required:"" help:"Destination column id."`
	Index int    `default:"0" help:"Destination index; clamped to the column length."`
	Write bool   `help:"Write the resulting stores back to the --seed file."`
}

func (cmd *boardMoveCmd) Run(rc *runContext) error {
	if cmd.Write && rc.seedPath == "" {
		return fmt.Errorf("dashctl: --write needs --seed")
	}
	svc, stores, err := rc.load(dashboard.Options{})
	if err != nil {
		return err
	}
	var moved bool
	move := commands.NewMoveCardCommand(svc, dashboard.NewLogrusTelemetry(rc.logger))
	if err := move.Execute(rc.ctx, commands.MoveCardInput{
		CardID: cmd.Card,
		From:   cmd.From,
		To:     cmd.To,
		Index:  cmd.Index,
		Output: &moved,
	}); err != nil {
		return err
	}
	if !moved {
		_, err := fmt.Fprintf(rc.out, "card %s already at %s[%d]\n", cmd.Card, cmd.To, cmd.Index)
		return err
	}
	if cmd.Write {
		if err := writeSeedFile(rc.seedPath, stores.Document()); err != nil {
			return err
		}
	}
	col, err := svc.Board().Column(cmd.To)
	if err != nil {
		return err
	}
	return writeBoard(rc, []board.Column{col})
}

func writeSeedFile(path string, doc *dashboard.SeedDocument) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec
	if err != nil {
		return fmt.Errorf("dashctl: create %s: %w", tmp, err)
	}
	if err := dashboard.EncodeSeed(f, doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("dashctl: close %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

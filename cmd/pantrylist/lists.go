package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantrylist/internal/grocery"
	"github.com/dukerupert/pantrylist/internal/model"
)

func newListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your grocery lists",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := root.accessToken(cmd)
			if err != nil {
				return err
			}
			lists, err := root.client().ListGroceryLists(cmd.Context(), tok)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tITEMS\tPINNED")
			for _, l := range lists {
				pin := ""
				if l.IsPinned {
					pin = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\n", l.ID, l.Title, l.CheckedCount, l.ItemCount, pin)
			}
			return tw.Flush()
		},
	}
}

func newShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a grocery list grouped by category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := root.accessToken(cmd)
			if err != nil {
				return err
			}
			gl, err := root.client().GetGroceryList(cmd.Context(), tok, args[0])
			if err != nil {
				return err
			}
			list := grocery.Load(gl.ID, gl.Title, gl.IsPinned, fromModel(gl.Items))
			printList(cmd.OutOrStdout(), list.Title(), list.Pinned(), list.Categories())
			return nil
		},
	}
}

func newPinCmd(root *rootOptions) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "pin ID",
		Short: "Pin or unpin a grocery list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToken(cmd, root, func(ctx context.Context, tok string) error {
				return root.client().SetPinned(ctx, tok, args[0], !off)
			})
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "unpin instead")
	return cmd
}

func newRemoveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a grocery list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToken(cmd, root, func(ctx context.Context, tok string) error {
				return root.client().DeleteGroceryList(ctx, tok, args[0])
			})
		},
	}
}

func withToken(cmd *cobra.Command, root *rootOptions, fn func(ctx context.Context, tok string) error) error {
	tok, err := root.accessToken(cmd)
	if err != nil {
		return err
	}
	return fn(cmd.Context(), tok)
}

func fromModel(items []model.GroceryItem) []grocery.Item {
	out := make([]grocery.Item, 0, len(items))
	for _, it := range items {
		item := grocery.Item{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Checked:   it.Checked,
			Pinned:    it.IsPinned,
			SortOrder: it.SortOrder,
		}
		if it.Unit != nil {
			item.Unit = *it.Unit
		}
		if it.Category != nil {
			item.Category = *it.Category
		}
		out = append(out, item)
	}
	return out
}

func printList(w io.Writer, title string, pinned bool, categories []grocery.Category) {
	header := title
	if pinned {
		header += " (pinned)"
	}
	fmt.Fprintln(w, header)
	for _, c := range categories {
		fmt.Fprintf(w, "\n%s (%d)\n", c.Name, len(c.Items))
		for _, item := range c.Items {
			box := "[ ]"
			if item.Checked {
				box = "[x]"
			}
			line := "  " + box + " " + item.Name
			if item.Quantity != nil {
				line += " " + strconv.FormatFloat(*item.Quantity, 'f', -1, 64)
			}
			if item.Unit != "" {
				line += " " + item.Unit
			}
			if item.Pinned {
				line += " *"
			}
			fmt.Fprintln(w, line)
		}
	}
}

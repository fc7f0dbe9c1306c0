package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantrylist/internal/auth"
	"github.com/dukerupert/pantrylist/internal/grocery"
)

type newOptions struct {
	title          string
	pinned         bool
	draft          string
	items          []string
	autoCategorize bool
	dryRun         bool
}

// draftFile is the on-disk shape read by --draft.
type draftFile struct {
	Title    string         `json:"title"`
	IsPinned bool           `json:"isPinned"`
	Items    []grocery.Item `json:"items"`
}

func newNewCmd(root *rootOptions) *cobra.Command {
	var o newOptions
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a grocery list",
		Long: `Builds a new list from --draft and --item flags, shows it grouped by
category and saves it. Items are "Category:Name[:quantity[:unit]]"; leave the
category empty (":Milk") to file the item under the default category.`,
		Example: `  pantrylist new --title "For the party" --item "Snacks:Chips:5:bags" --item ":Napkins" --auto-categorize`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, root, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.title, "title", "", "list title (default \"New Grocery List\")")
	f.BoolVar(&o.pinned, "pinned", false, "pin the list")
	f.StringVar(&o.draft, "draft", "", "JSON draft file with title, isPinned and items")
	f.StringArrayVar(&o.items, "item", nil, "item as Category:Name[:quantity[:unit]] (repeatable)")
	f.BoolVar(&o.autoCategorize, "auto-categorize", false, "fill in categories for uncategorized items")
	f.BoolVar(&o.dryRun, "dry-run", false, "print the payload instead of saving")
	return cmd
}

func runNew(cmd *cobra.Command, root *rootOptions, o newOptions) error {
	list, err := buildList(o, root)
	if err != nil {
		return err
	}

	if o.autoCategorize {
		if n := list.AutoCategorize(); n > 0 {
			root.logger.Info("auto-categorized items", "count", n)
		}
	}

	out := cmd.OutOrStdout()
	printList(out, list.Title(), list.Pinned(), list.Categories())

	if o.dryRun {
		payload, err := grocery.PrepareSave(list.Title(), list.Pinned(), list.Items())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	id, err := list.Save(cmd.Context(), auth.StaticToken(root.token), root.client())
	if err != nil {
		if errors.Is(err, grocery.ErrUnauthenticated) {
			return fmt.Errorf("%w: pass --token or set PANTRYLIST_ACCESS_TOKEN", err)
		}
		return err
	}
	fmt.Fprintf(out, "saved %s\n", id)
	return nil
}

func buildList(o newOptions, root *rootOptions) (*grocery.List, error) {
	logOpt := grocery.WithLogger(root.logger.With("component", "editor"))

	if o.draft == "" && len(o.items) == 0 {
		list := grocery.NewList(logOpt)
		if o.title != "" {
			list.SetTitle(o.title)
		}
		if o.pinned {
			list.ToggleListPinned()
		}
		return list, nil
	}

	d := draftFile{Title: "New Grocery List"}
	if o.draft != "" {
		data, err := os.ReadFile(o.draft)
		if err != nil {
			return nil, fmt.Errorf("read draft: %w", err)
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse draft %s: %w", o.draft, err)
		}
	}
	for _, spec := range o.items {
		item, err := parseItemSpec(spec)
		if err != nil {
			return nil, err
		}
		d.Items = append(d.Items, item)
	}
	if o.title != "" {
		d.Title = o.title
	}
	if o.pinned {
		d.IsPinned = true
	}
	return grocery.Load(grocery.NewListID, d.Title, d.IsPinned, d.Items, logOpt), nil
}

// parseItemSpec reads "Category:Name[:quantity[:unit]]".
func parseItemSpec(spec string) (grocery.Item, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 2 {
		return grocery.Item{}, fmt.Errorf("item %q: want Category:Name[:quantity[:unit]]", spec)
	}

	item := grocery.Item{
		Category: grocery.NormalizeCategory(parts[0]),
		Name:     strings.TrimSpace(parts[1]),
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		q, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || q < 0 {
			return grocery.Item{}, fmt.Errorf("item %q: bad quantity %q", spec, parts[2])
		}
		item.Quantity = &q
	}
	if len(parts) > 3 {
		item.Unit = strings.TrimSpace(parts[3])
	}
	return item, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/highrow623/pseudoregalia-archipelago/model"
	"github.com/highrow623/pseudoregalia-archipelago/rules"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"github.com/highrow623/pseudoregalia-archipelago/world"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile every configured player and print each target's requirements",
	Args:  cobra.NoArgs,
	RunE:  runCompile,
}

var tagsCmd = &cobra.Command{
	Use:   "tags [tag...]",
	Short: "Print the closure of the given tags under the catalog hierarchy",
	Args:  cobra.ArbitraryArgs,
	RunE:  runTags,
}

var (
	evalPlayer    int
	evalInventory string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate one player's targets against an inventory file",
	Args:  cobra.NoArgs,
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().IntVarP(&evalPlayer, "player", "p", 1, "player id from the config")
	evalCmd.Flags().StringVarP(&evalInventory, "inventory", "i", "", `inventory JSON file, e.g. {"items": {"Cling Gem": 1}}`)
	_ = evalCmd.MarkFlagRequired("inventory")
}

func runCompile(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	players := e.cfg.Players
	if len(players) == 0 {
		players = []rules.PlayerOptions{{Player: 1}}
	}
	out, err := rules.CompileAll(cmd.Context(), e.catalog, players, e.resolve)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, rs := range out {
		printRuleset(w, rs)
	}
	return nil
}

func printRuleset(w io.Writer, rs *rules.Ruleset) {
	fmt.Fprintf(w, "player %d  tags=[%s]  small keys=%d\n",
		rs.Player, strings.Join(rs.Tags.Sorted(), ", "), rs.RequiredSmallKeys)
	entrances, locations := rs.Targets()
	for _, name := range entrances {
		fmt.Fprintf(w, "  entrance %s: %s\n", name, rs.Entrances[name])
	}
	for _, name := range locations {
		fmt.Fprintf(w, "  location %s: %s\n", name, rs.Locations[name])
	}
}

func runTags(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	resolved, err := e.resolve(tags.NewSet(args...), e.catalog.TagHierarchy)
	if err != nil {
		return err
	}
	for _, t := range resolved.Sorted() {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	inv, err := readInventory(evalInventory)
	if err != nil {
		return err
	}

	opts := rules.PlayerOptions{Player: evalPlayer}
	for _, p := range e.cfg.Players {
		if p.Player == evalPlayer {
			opts = p
		}
	}
	inv.Player = opts.Player

	rs, err := rules.Compile(e.catalog, opts, e.resolve)
	if err != nil {
		return err
	}
	layout := world.CatalogLayout(e.catalog, opts.SplitSunGreaves)
	if e.layout != nil {
		layout = *e.layout
	}
	g := world.NewGraph(layout)
	if err := world.Apply(rs, g, opts.SplitSunGreaves); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(g.Evaluate(inv))
}

func readInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("read inventory: %w", err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("decode inventory %s: %w", path, err)
	}
	return inv, nil
}

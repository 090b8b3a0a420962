package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aglyzov/go-lpm/config"
	"github.com/aglyzov/go-lpm/prefix"
	"github.com/aglyzov/go-lpm/table"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var lookupCmd = &cobra.Command{
	Use:   "lookup ADDR|PREFIX...",
	Short: "Print the longest matching route and label of each argument",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd.OutOrStdout(), &opts, args)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all routes in trie order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd.OutOrStdout(), &opts)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the trie structure of the route table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDump(cmd.OutOrStdout(), &opts)
	},
}

// Result is one lookup answer. Empty fields mean no match.
type Result struct {
	Query   string `json:"query,omitempty"`
	Route   string `json:"route,omitempty"`
	NextHop string `json:"nexthop,omitempty"`
	Label   string `json:"label,omitempty"`
}

type tables struct {
	routes *table.Table[string]
	labels *table.Table[string]
}

func loadTables(o *Options) (*tables, error) {
	switch o.Output {
	case "text", "json":
	default:
		return nil, errors.Errorf("unknown output format %q", o.Output)
	}

	cfg, err := config.Load(o.Routes)
	if err != nil {
		return nil, err
	}

	routes, err := cfg.RouteTable(table.WithCache(o.CacheSize))
	if err != nil {
		return nil, err
	}
	labels, err := cfg.LabelTable(table.WithCache(o.CacheSize))
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"ipv4":   routes.Len4(),
		"ipv6":   routes.Len6(),
		"labels": labels.Len(),
	}).Info("route table ready")

	return &tables{routes, labels}, nil
}

func (t *tables) lookup(query string) (Result, error) {
	res := Result{Query: query}

	p, err := prefix.Parse(query)
	if err != nil {
		return res, err
	}
	pfx := p.Netip()

	if lpm, hop, ok := t.routes.LookupPrefixLPM(pfx); ok {
		res.Route, res.NextHop = lpm.String(), hop
	}
	if label, ok := t.labels.LookupPrefix(pfx); ok {
		res.Label = label
	}
	return res, nil
}

func runLookup(w io.Writer, o *Options, args []string) error {
	t, err := loadTables(o)
	if err != nil {
		return err
	}

	results := make([]Result, 0, len(args))
	for _, arg := range args {
		res, err := t.lookup(arg)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	if o.Output == "json" {
		return writeJSON(w, results)
	}
	for _, res := range results {
		switch {
		case res.Route == "":
			fmt.Fprintf(w, "%s: no route\n", res.Query)
		case res.Label != "":
			fmt.Fprintf(w, "%s: %s via %s [%s]\n", res.Query, res.Route, res.NextHop, res.Label)
		default:
			fmt.Fprintf(w, "%s: %s via %s\n", res.Query, res.Route, res.NextHop)
		}
	}
	return nil
}

func runList(w io.Writer, o *Options) error {
	t, err := loadTables(o)
	if err != nil {
		return err
	}

	results := make([]Result, 0, t.routes.Len())
	for pfx, hop := range t.routes.All() {
		res := Result{Route: pfx.String(), NextHop: hop}
		if label, ok := t.labels.LookupPrefix(pfx); ok {
			res.Label = label
		}
		results = append(results, res)
	}

	if o.Output == "json" {
		return writeJSON(w, results)
	}
	for _, res := range results {
		if res.Label != "" {
			fmt.Fprintf(w, "%-20s %-16s [%s]\n", res.Route, res.NextHop, res.Label)
		} else {
			fmt.Fprintf(w, "%-20s %s\n", res.Route, res.NextHop)
		}
	}
	return nil
}

func runDump(w io.Writer, o *Options) error {
	t, err := loadTables(o)
	if err != nil {
		return err
	}
	t.routes.DebugDump(w)

	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding json")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

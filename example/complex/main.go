package main

import (
	"log"
	"os"

	"github.com/bassosimone/optx"
)

type RunWebsitesOptions struct {
	EnableHTTP3 bool `doc:"enable HTTP3 measurements"`
}

type RunIMOptions struct {
	TestAllEndpoints bool `doc:"test all available endpoints"`
}

type RunOptions struct {
	Input    []string           `doc:"add URL to measure" short:"i"`
	Websites RunWebsitesOptions `doc:"-"`
	IM       RunIMOptions       `doc:"-"`
}

type ListOptions struct {
	ID int `doc:"ID of the input to show"`
}

type Options struct {
	Batch   bool         `doc:"emit JSON formatted logs" short:"b"`
	Verbose optx.Counter `doc:"increases verbosity" short:"v"`
	Run     RunOptions   `doc:"-"`
	List    ListOptions  `doc:"-"`
}

func main() {
	options := &Options{
		Batch:   false,
		Verbose: 0,
		Run: RunOptions{
			Input: []string{},
			Websites: RunWebsitesOptions{
				EnableHTTP3: false,
			},
			IM: RunIMOptions{
				TestAllEndpoints: false,
			},
		},
		List: ListOptions{
			ID: 0,
		},
	}
	cli := optx.Command(
		"network measurement tool", options,
		optx.Subcommand(
			"run", "runs nettests", &options.Run,
			optx.LeafSubcommand(
				"websites", "checks for blocked websites",
				&options.Run.Websites,
				optx.NoPositionalArguments(),
			),
			optx.LeafSubcommand(
				"im", "checks for blocked IM apps",
				&options.Run.IM,
				optx.NoPositionalArguments(),
			),
		),
		optx.LeafSubcommand(
			"list", "lists available measurements", &options.List,
			optx.NoPositionalArguments(),
		),
	)
	selected := cli.MustGetopt(os.Args)
	switch selected.Options().(type) {
	case *RunWebsitesOptions:
		log.Printf("run websites with: %+v", options)
	case *RunIMOptions:
		log.Printf("run IM with: %+v", options)
	case *ListOptions:
		log.Printf("lists measurements with: %+v", options)
	case *optx.HasPrintedHelp:
		os.Exit(1)
	default:
		log.Fatalf("unhandled selected command: %T %+v", selected, selected)
	}
}

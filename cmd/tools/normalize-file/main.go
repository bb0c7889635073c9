package main

import (
	"flag"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
	"github.com/Vodeneev/livescore/internal/pkg/normalize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	id := flag.Int64("id", 0, "Print the details view of this match id instead of the list")
	status := flag.String("status", "", "Only list matches in this state: live, upcoming or finished")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-id N | -status live] <feed.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *id, *status); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, id int64, status string) error {
	records, err := feed.LoadFile(path)
	if err != nil {
		return err
	}

	if id != 0 {
		rec, ok := feed.FindByID(records, id)
		if !ok {
			return fmt.Errorf("%w: %d", feed.ErrMatchNotFound, id)
		}
		details, err := normalize.Details(rec)
		if err != nil {
			return err
		}
		return printJSON(details)
	}

	matches := normalize.NormalizeAll(records)
	if status != "" {
		state, ok := enums.ParseMatchState(status)
		if !ok {
			return fmt.Errorf("unknown status %q", status)
		}
		filtered := make([]models.NormalizedMatch, 0, len(matches))
		for _, m := range matches {
			if m.Status.State == state {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}
	fmt.Fprintf(os.Stderr, "%d records, %d normalized\n", len(records), len(matches))
	return printJSON(matches)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Println(string(out))
	return err
}

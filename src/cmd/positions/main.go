package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/trade-journal/src/ingest"
	"github.com/jiaming2012/trade-journal/src/positions"
	"github.com/jiaming2012/trade-journal/src/reconcile"
)

type RunArgs struct {
	Files          []string
	Timezone       string
	FilledStatuses []string
}

type RunResult struct {
	Positions *positions.Result
	Summary   positions.Summary
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/positions/main.go orders.xlsx [more exports...]",
	Short: "Print FIFO positions for broker export files without touching the journal",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		timezone, err := cmd.Flags().GetString("timezone")
		if err != nil {
			log.Fatalf("error getting timezone: %v", err)
		}

		filled, err := cmd.Flags().GetStringArray("filled-status")
		if err != nil {
			log.Fatalf("error getting filled-status: %v", err)
		}

		result, err := Run(RunArgs{
			Files:          args,
			Timezone:       timezone,
			FilledStatuses: filled,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		Print(os.Stdout, result)
	},
}

func Run(args RunArgs) (RunResult, error) {
	loc, err := time.LoadLocation(args.Timezone)
	if err != nil {
		return RunResult{}, fmt.Errorf("error loading location: %w", err)
	}

	reader := ingest.NewReader(ingest.NewNormalizer(loc, args.FilledStatuses), 0)
	read, err := reader.ReadFiles(context.Background(), args.Files)
	if err != nil {
		return RunResult{}, err
	}

	entries, _ := ingest.DropInvalidTimestamps(read.Entries)
	records, err := ingest.ToTradeRecords(ingest.Dedupe(entries))
	if err != nil {
		return RunResult{}, err
	}

	result, err := positions.Process(records)
	if err != nil {
		return RunResult{}, err
	}

	summary, err := positions.Summarize(result)
	if err != nil {
		return RunResult{}, err
	}

	return RunResult{
		Positions: result,
		Summary:   summary,
	}, nil
}

func Print(w io.Writer, result RunResult) {
	p := message.NewPrinter(language.English)

	fmt.Fprintln(w, "Open Positions:")
	reconcile.Render(w, reconcile.OpenPositionsTable(result.Positions.OpenPositions))

	closed := reconcile.ClosedTradesTable(result.Positions.ClosedTrades)
	reconcile.FormatReturnRates(closed)

	fmt.Fprintln(w, "Closed Trades:")
	reconcile.Render(w, closed)

	s := result.Summary
	p.Fprintf(w, "Closed trades: %d (%d priced), wins: %d, win rate: %s\n", s.ClosedTrades, s.PricedTrades, s.Wins, positions.FormatPercent(&s.WinRate))
	p.Fprintf(w, "Realized PnL: %s, mean: %s, median: %s\n", reconcile.FormatMoney(s.TotalRealizedPnL), reconcile.FormatMoney(s.MeanPnL), reconcile.FormatMoney(s.MedianPnL))

	if n := len(result.Positions.UnmatchedSells); n > 0 {
		p.Fprintf(w, "Unmatched sells: %d\n", n)
	}
}

func main() {
	runCmd.PersistentFlags().StringP("timezone", "t", "America/New_York", "Timezone of the export order times. This should be a golang standard timezone.")
	runCmd.PersistentFlags().StringArray("filled-status", nil, "Order status marking a filled order. Repeat for several; defaults to the broker's filled markers.")

	cobra.CheckErr(runCmd.Execute())
}

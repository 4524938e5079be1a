package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/miretskiy/cpusched/report"
	"github.com/miretskiy/cpusched/simulator"
	"github.com/miretskiy/cpusched/terminal"
)

// replOptions controls the optional output of runREPL
type replOptions struct {
	Verbose bool      // Log engine events to Log
	Stats   bool      // Print CPU statistics after each result table
	Log     io.Writer // Destination for verbose engine events
}

func main() {
	verbose := flag.Bool("verbose", false, "Log engine events to stderr")
	stats := flag.Bool("stats", false, "Print CPU statistics after each run")
	flag.Parse()

	opts := replOptions{Verbose: *verbose, Stats: *stats, Log: os.Stderr}
	if err := runREPL(os.Stdin, os.Stdout, opts); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}
}

// runREPL feeds input lines to a terminal session until EOF, or until
// exit/quit is typed while the session is idle
func runREPL(in io.Reader, out io.Writer, opts replOptions) error {
	session := terminal.NewSession()
	if opts.Verbose && opts.Log != nil {
		session.LogEvent = func(msg string) {
			fmt.Fprintf(opts.Log, "[SIM] %s\n", msg)
		}
	}

	// OnResult fires before the session renders its table, so stats are
	// held until the response lines are written
	var pendingStats bytes.Buffer
	if opts.Stats {
		session.OnResult = func(result simulator.Result) {
			report.WriteStats(&pendingStats, simulator.ComputeStats(result))
		}
	}

	printLines(out, session.Banner())
	fmt.Fprint(out, "> ")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "exit", "quit":
			if session.State() == terminal.StateIdle {
				return nil
			}
		}

		resp := session.Handle(line)
		if resp.Clear {
			fmt.Fprint(out, "\033[H\033[2J")
		}
		printLines(out, resp.Lines)
		if pendingStats.Len() > 0 {
			pendingStats.WriteTo(out)
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, "> ")
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

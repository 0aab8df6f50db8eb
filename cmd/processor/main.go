/*
main.go - Batch payment processor entry point

PURPOSE:
  Reads one or more CSV transaction files, runs them through a single
  engine in order, and writes the final account summary as CSV on
  stdout. Diagnostics go to stderr and never mix with the summary.

COMMAND-LINE:
  processor [flags] <input.csv> [more.csv ...]

  -v              log per-event rejection and decode diagnostics
  -export <path>  also write the summary to a SQLite database
  -serve <addr>   after processing, serve the summary over HTTP
                  (e.g. -serve :8080)

EXIT CODES:
  0  processing completed (rejected events do not fail the run)
  1  no input files, unreadable input, or export/serve failure
  2  unrecognised flag (reported by the flag package)

EXAMPLES:
  # Basic run
  ./processor transactions.csv > accounts.csv

  # Several files, concatenated through one engine
  ./processor -v jan.csv feb.csv mar.csv > q1.csv

  # Export to SQLite and serve a dashboard API
  ./processor -export summary.db -serve :8080 transactions.csv

SEE ALSO:
  - csvio/reader.go: Record decoding and skip semantics
  - api/server.go: The serve-mode router
  - store/sqlite/sqlite.go: The export sink
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/payment-engine/api"
	"github.com/warp/payment-engine/csvio"
	"github.com/warp/payment-engine/ledger"
	"github.com/warp/payment-engine/store/sqlite"
)

func main() {
	verbose := flag.Bool("v", false, "log per-event rejection diagnostics")
	exportPath := flag.String("export", "", "SQLite database path for summary export")
	serveAddr := flag.String("serve", "", "serve the summary over HTTP on this address")
	flag.Parse()

	log.SetOutput(os.Stderr)

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: processor [-v] [-export db] [-serve addr] <input.csv> ...")
		os.Exit(1)
	}

	engine := ledger.NewEngine()
	for _, path := range inputs {
		if err := processFile(engine, path, *verbose); err != nil {
			log.Fatalf("Failed to process %s: %v", path, err)
		}
	}

	reports, errs := engine.Snapshots()
	for _, err := range errs {
		log.Printf("Skipping account in summary: %v", err)
	}

	if err := writeSummary(os.Stdout, reports); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}

	if *exportPath != "" {
		if err := exportSummary(*exportPath, reports); err != nil {
			log.Fatalf("Failed to export summary: %v", err)
		}
	}

	if *serveAddr != "" {
		if err := serve(*serveAddr, engine); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

// processFile feeds every event in one file through the engine.
// Decode failures and rejected events are skipped; only I/O problems
// abort the run.
func processFile(engine *ledger.Engine, path string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if verbose {
		log.Printf("Reading file %s", path)
	}

	reader := csvio.NewReader(f)
	for {
		ev, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			var rowErr *csvio.RowError
			if errors.As(err, &rowErr) {
				if verbose {
					log.Printf("%s: skipping row: %v", path, rowErr)
				}
				continue
			}
			return err
		}

		if err := engine.Submit(ev); err != nil {
			if verbose {
				log.Printf("%s: rejected: %v", path, err)
			}
		}
	}
}

func writeSummary(w io.Writer, reports []ledger.Report) error {
	cw := csvio.NewWriter(w)
	for _, r := range reports {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	return cw.Flush()
}

func exportSummary(path string, reports []ledger.Report) error {
	store, err := sqlite.New(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.ExportReports(context.Background(), reports)
}

// serve exposes the processed engine over HTTP until SIGINT/SIGTERM.
func serve(addr string, engine *ledger.Engine) error {
	router := api.NewRouter(api.NewHandler(engine))
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving account summary on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// Command cli prints one receipt payload from a JSON file or stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/souqtech/receipt-printer/internal/config"
	"github.com/souqtech/receipt-printer/internal/engine"
	"github.com/souqtech/receipt-printer/pkg/payload"
)

func main() {
	var (
		file    string
		port    string
		baud    int
		fontArg string
		dryRun  string
		verbose bool
	)
	flag.StringVar(&file, "f", "-", "payload JSON file ('-' for stdin)")
	flag.StringVar(&port, "port", "", "serial port override")
	flag.IntVar(&baud, "baud", 0, "baud rate override")
	flag.StringVar(&fontArg, "font", "", "TTF font path override")
	flag.StringVar(&dryRun, "dry-run", "", "write the encoded stream to a file instead of printing")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	log := newLogger(verbose)
	defer log.Sync()

	req, err := readPayload(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if port != "" {
		req.Port = port
	}
	if baud > 0 {
		req.Baud = baud
	}

	cfg := config.FromEnv()
	if fontArg != "" {
		cfg.FontPath = fontArg
	}

	eng, err := engine.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if dryRun != "" {
		data, err := eng.Compile(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(dryRun, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), dryRun)
		return
	}

	ack, err := eng.Print(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(ack)
}

func readPayload(file string) (*payload.Receipt, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return payload.Parse(data)
	}
	return payload.ParseFile(file)
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		log, _ := zap.NewDevelopment()
		return log
	}
	return zap.NewNop()
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-formwizard/pkg/runner"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func main() {
	definition := flag.String("definition", "wizard.yaml", "YAML wizard definition path")
	output := flag.String("output", "", "write collected data as JSON (stdout if empty)")
	flag.Parse()

	def, err := wizard.LoadDefinitionFile(*definition)
	if err != nil {
		log.Fatalf("Failed to load definition: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	walk, err := runner.New(def)
	if err != nil {
		log.Fatalf("Failed to build runner: %v", err)
	}

	forms, err := walk.Run(ctx)
	if err != nil {
		if errors.Is(err, runner.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		log.Fatalf("Failed to run wizard: %v", err)
	}

	collected := make(map[string]map[string]any, len(forms))
	for _, completed := range forms {
		collected[completed.Step.Name] = completed.Data
	}

	payload, err := json.MarshalIndent(collected, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Data written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

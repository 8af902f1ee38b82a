// Command tachoscan decodes a .ddd file, builds its activity timeline,
// evaluates it against Regulation (EC) 561/2006, and prints the combined
// result as JSON. Grounded in the teacher's cmd/dddparser: flag-driven
// input/output file selection (stdin/stdout by default), single decode
// call, json.Marshal to output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alpinefleet/tachoscan/pkg/compliance"
	"github.com/alpinefleet/tachoscan/pkg/framing"
	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/alpinefleet/tachoscan/pkg/timeline"
)

var (
	input   = flag.String("input", "", "Input .ddd file (optional, stdin is used if not set)")
	output  = flag.String("output", "", "Output file (optional, stdout is used if not set)")
	strict  = flag.Bool("strict", false, "Disable G2.2 record-size heuristics (permit_g2_2_heuristics=false)")
)

// report is the CLI's combined output shape: the decoded file plus its
// compliance evaluation, matching §6's "Compliance output ... plus
// aggregate counters per week."
type report struct {
	File        *result.TachographFile  `json:"file"`
	Infractions []compliance.Infraction `json:"infractions"`
	WeekStats   []compliance.WeekStats  `json:"week_stats"`
}

func main() {
	flag.Parse()

	var data []byte
	if *input == "" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("error: could not read stdin: %v", err)
		}
	} else {
		var err error
		data, err = os.ReadFile(*input)
		if err != nil {
			log.Fatalf("error: could not read file: %v", err)
		}
	}

	cfg := framing.DefaultConfig()
	if *strict {
		cfg.PermitG22Heuristics = false
	}

	file, err := framing.Decode(data, cfg)
	if err != nil {
		log.Fatalf("error: could not decode file: %v", err)
	}

	acts := timeline.Build(file.Activities)
	infractions, weekStats := compliance.Evaluate(acts, file.Activities)

	dataOut, err := json.Marshal(report{File: file, Infractions: infractions, WeekStats: weekStats})
	if err != nil {
		log.Fatalf("error: could not marshal result: %v", err)
	}

	if *output == "" || *output == "-" {
		fmt.Print(string(dataOut))
	} else {
		if err := os.WriteFile(*output, dataOut, 0644); err != nil {
			log.Fatalf("error: could not write output file: %v", err)
		}
	}
}

// Command gonest runs the NES core against a ROM file, either under
// the ebiten front end or, with -automation, headless for trace-based
// regression testing (e.g. against nestest.nes).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/bdwalton/gonest/console"
	"github.com/bdwalton/gonest/mappers"
	"github.com/bdwalton/gonest/nesrom"
	"github.com/bdwalton/gonest/trace"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile    = flag.String("nes_rom", "", "Path to NES ROM to run.")
	tracePath  = flag.String("trace", "", "If set, write a Nintendulator-compatible instruction trace to this path.")
	automation = flag.Bool("automation", false, "Run headless from a fixed PC instead of the ebiten front end (nestest-style regression mode).")
	startPC    = flag.String("pc", "C000", "Hex program counter automation mode starts execution at.")
	bios       = flag.Bool("bios", false, "Launch the interactive debug REPL instead of running.")
)

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("couldn't Get() mapper: %v", err)
	}

	bus := console.New(m)

	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			log.Fatalf("couldn't create trace file: %v", err)
		}
		defer f.Close()
		bus.CPU().SetTraceSink(trace.NewWriterSink(f))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case *automation:
		pc, err := strconv.ParseUint(*startPC, 16, 16)
		if err != nil {
			log.Fatalf("invalid -pc %q: %v", *startPC, err)
		}
		bus.CPU().RunAutomation()
		bus.CPU().PCSet(uint16(pc))
		for !bus.CPU().Halted() {
			bus.CPU().Clock()
		}
		if err := bus.CPU().Err(); err != nil {
			log.Fatalf("halted: %v", err)
		}
	case *bios:
		bus.BIOS(ctx)
	default:
		go bus.Run(ctx)
		if err := ebiten.RunGame(bus); err != nil {
			log.Fatal(err)
		}
	}

	os.Exit(0)
}

package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/jwkunz/plum-chess/internal/engine"
	"github.com/jwkunz/plum-chess/internal/uci"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	// Create engine with 64MB hash table. Multi-threaded search (Lazy
	// SMP) is off by default; the UCI Threads option turns it on.
	eng := engine.NewEngine(64)

	protocol := uci.New(eng)
	protocol.Run()
}

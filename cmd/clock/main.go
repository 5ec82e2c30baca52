// Command clock simulates a clock with three needles: a generator ticking
// every second, one every minute, one every hour, all three wired
// straight to the coupled model's output. Mirrors the original's
// example/main-clock.cpp, reworked onto the Go kernel's Runner.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dvicino/pdevs/devs"
	"github.com/dvicino/pdevs/devs/emit"
	"github.com/dvicino/pdevs/models"
)

func main() {
	fmt.Println("Creating the atomic models for the 3 needles")
	second := models.NewGenerator[devs.IntTime, string](1, "second")
	minute := models.NewGenerator[devs.IntTime, string](60, "minute")
	hour := models.NewGenerator[devs.IntTime, string](3600, "hour")

	fmt.Println("Coupling the models into a clock model, the 3 needles make output")
	clock := devs.NewAtomicSet[devs.IntTime, string]("clock",
		map[string]devs.Atomic[devs.IntTime, string]{
			"second": second,
			"minute": minute,
			"hour":   hour,
		},
		nil, nil, []string{"second", "minute", "hour"},
	)

	fmt.Println("Preparing runner")
	emitter := emit.NewLogEmitter(os.Stdout, false)
	r, err := devs.NewRunner[devs.IntTime, string](clock, 0,
		func(t devs.IntTime, msg string) { fmt.Printf("%d: %s\n", t, msg) },
		devs.WithEmitter[devs.IntTime, string](emitter),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building runner:", err)
		os.Exit(1)
	}

	const twoHours = devs.IntTime(7200)
	fmt.Println("Starting simulation for 2 hours of clock time")
	if err := r.RunUntil(context.Background(), twoHours); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}
	fmt.Println("Finished simulation")
}

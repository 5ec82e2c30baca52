// Command customevents replays a recorded list of integer events through
// an InfiniteCounter, demonstrating both the event-stream player
// (scenario: event-stream source) and the trigger-driven counter from a
// single composed model. Expands on the original's
// example/main-custom-event-list.cpp, which only exercises plain
// event-stream playback, by giving the played-back events somewhere to
// land. Each record reaches the counter through an external transition;
// after a trigger the counter emits through an internal transition at the
// same instant, so this run fires no confluent transition.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dvicino/pdevs/devs"
	"github.com/dvicino/pdevs/models"
)

func main() {
	fmt.Println("Creating an input stream to be processed by the event-stream atomic model")
	// Each record is (time, value); a value of zero triggers the counter
	// to emit its running total and reset.
	stream := models.NewEventStream(devs.IntTime(0), []models.Record[devs.IntTime, int]{
		{Time: 1, Msg: 1},
		{Time: 1, Msg: 1},
		{Time: 3, Msg: 0},
		{Time: 5, Msg: 1},
		{Time: 7, Msg: 0},
	})

	fmt.Println("Creating the infinite counter to tally and emit on trigger")
	counter := models.NewIntCounter[devs.IntTime]()

	fmt.Println("Coupling the stream to the counter and connecting to the coupled output")
	player := devs.NewAtomicSet[devs.IntTime, int]("player",
		map[string]devs.Atomic[devs.IntTime, int]{
			"stream":  stream,
			"counter": counter,
		},
		nil,
		[]devs.Coupling{{From: "stream", To: "counter"}},
		[]string{"counter"},
	)

	fmt.Println("Preparing runner")
	r, err := devs.NewRunner[devs.IntTime, int](player, 0,
		func(t devs.IntTime, msg int) { fmt.Printf("%d: %d\n", t, msg) },
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building runner:", err)
		os.Exit(1)
	}

	fmt.Println("Starting simulation until all events are consumed")
	if err := r.RunUntilPassivate(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}
	fmt.Println("Finished simulation")
}

// Command echobox replays a short list of integer events through two
// chained processors, echoing each job back after two fixed delays.
// Mirrors the original's example/main-echobox.cpp.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dvicino/pdevs/devs"
	"github.com/dvicino/pdevs/models"
)

func main() {
	fmt.Println("Creating the atomic models for the 2 echos")
	echo1 := models.NewProcessor[devs.IntTime, int](1)
	echo2 := models.NewProcessor[devs.IntTime, int](3)

	fmt.Println("Coupling the models into the echobox: input to echo1, echo1 to echo2, and both to the output")
	echobox := devs.NewAtomicSet[devs.IntTime, int]("echobox",
		map[string]devs.Atomic[devs.IntTime, int]{
			"echo1": echo1,
			"echo2": echo2,
		},
		[]string{"echo1"},
		[]devs.Coupling{{From: "echo1", To: "echo2"}},
		[]string{"echo1", "echo2"},
	)

	fmt.Println("Creating the model to insert the input from a recorded event list")
	stream := models.NewEventStream(devs.IntTime(0), []models.Record[devs.IntTime, int]{
		{Time: 1, Msg: 1},
		{Time: 4, Msg: 4},
		{Time: 5, Msg: 5},
		{Time: 6, Msg: 6},
		{Time: 8, Msg: 8},
		{Time: 9, Msg: 9},
	})

	fmt.Println("Coupling the echobox to the input")
	root := devs.New[devs.IntTime, int]("root",
		map[string]devs.Submodel{
			"stream":  devs.WrapAtomic[devs.IntTime, int](stream),
			"echobox": echobox,
		},
		nil,
		[]devs.Coupling{{From: "stream", To: "echobox"}},
		[]string{"echobox"},
	)

	fmt.Println("Preparing runner")
	r, err := devs.NewRunner[devs.IntTime, int](root, 0,
		func(t devs.IntTime, msg int) { fmt.Printf("%d: %d\n", t, msg) },
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building runner:", err)
		os.Exit(1)
	}

	fmt.Println("Starting simulation until passivate")
	if err := r.RunUntilPassivate(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}
	fmt.Println("Finished simulation")
}

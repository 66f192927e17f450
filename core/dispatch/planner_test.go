package dispatch

import (
	"testing"

	"github.com/hoistlab/liftcore/core/model"
)

func TestNextStopEmptyTargetsRests(t *testing.T) {
	p := NewPlanner(SweepNearest)
	car := model.NewCar(0, 10)
	car.Floor = 4
	car.State = model.StateScanning
	car.Direction = model.DirUp

	if _, ok := p.NextStop(car); ok {
		t.Fatal("no targets should yield no stop")
	}
	if car.State != model.StateResting || car.Direction != model.DirNone {
		t.Fatalf("car should be resting directionless, got %s/%s", car.State, car.Direction)
	}
}

func TestNextStopNearestAhead(t *testing.T) {
	p := NewPlanner(SweepNearest)
	car := model.NewCar(0, 10)
	car.Floor = 4
	car.Direction = model.DirUp
	for _, f := range []int{2, 6, 8} {
		car.AddTarget(f)
	}

	floor, ok := p.NextStop(car)
	if !ok || floor != 6 {
		t.Fatalf("got %d,%v want 6,true", floor, ok)
	}
	if car.Direction != model.DirUp || car.State != model.StateScanning {
		t.Fatalf("car should keep scanning up, got %s/%s", car.State, car.Direction)
	}
}

func TestNextStopFarthestAhead(t *testing.T) {
	p := NewPlanner(SweepFarthest)
	car := model.NewCar(0, 10)
	car.Floor = 4
	car.Direction = model.DirUp
	for _, f := range []int{6, 8} {
		car.AddTarget(f)
	}

	floor, ok := p.NextStop(car)
	if !ok || floor != 8 {
		t.Fatalf("got %d,%v want 8,true", floor, ok)
	}
}

func TestNextStopReversesWhenExhausted(t *testing.T) {
	p := NewPlanner(SweepNearest)
	car := model.NewCar(0, 10)
	car.Floor = 8
	car.Direction = model.DirUp
	car.AddTarget(2)

	floor, ok := p.NextStop(car)
	if !ok || floor != 2 {
		t.Fatalf("got %d,%v want 2,true", floor, ok)
	}
	if car.Direction != model.DirDown {
		t.Fatalf("car should have reversed, got %s", car.Direction)
	}
}

func TestNextStopDirectionlessSweepsUpFirst(t *testing.T) {
	p := NewPlanner(SweepNearest)
	car := model.NewCar(0, 10)
	car.Floor = 4
	car.AddTarget(2)
	car.AddTarget(6)

	floor, ok := p.NextStop(car)
	if !ok || floor != 6 {
		t.Fatalf("got %d,%v want 6,true", floor, ok)
	}
	if car.Direction != model.DirUp {
		t.Fatalf("expected up, got %s", car.Direction)
	}
}

func TestNextStopCurrentFloorFallback(t *testing.T) {
	p := NewPlanner(SweepNearest)
	car := model.NewCar(0, 10)
	car.Floor = 4
	car.Direction = model.DirUp
	car.AddTarget(4)

	floor, ok := p.NextStop(car)
	if !ok || floor != 4 {
		t.Fatalf("got %d,%v want 4,true", floor, ok)
	}
	if car.State != model.StateScanning {
		t.Fatalf("expected scanning, got %s", car.State)
	}
}

// A full sweep visits every target above before any below: LOOK order, not
// first-come-first-served.
func TestSweepOrder(t *testing.T) {
	p := NewPlanner(SweepNearest)
	car := model.NewCar(0, 10)
	car.Floor = 4
	car.Direction = model.DirUp
	for _, f := range []int{1, 3, 5, 7} {
		car.AddTarget(f)
	}

	var visited []int
	for len(car.Targets) > 0 {
		floor, ok := p.NextStop(car)
		if !ok {
			t.Fatalf("planner gave up with targets left: %v", car.Targets)
		}
		car.Floor = floor
		car.RemoveTarget(floor)
		visited = append(visited, floor)
	}

	want := []int{5, 7, 3, 1}
	if len(visited) != len(want) {
		t.Fatalf("visited %v want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v want %v", visited, want)
		}
	}
}

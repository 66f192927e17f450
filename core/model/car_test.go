package model

import "testing"

func TestTowardAndOpposite(t *testing.T) {
	if got := Toward(2, 7); got != DirUp {
		t.Fatalf("expected up got %s", got)
	}
	if got := Toward(7, 2); got != DirDown {
		t.Fatalf("expected down got %s", got)
	}
	if got := Toward(4, 4); got != DirNone {
		t.Fatalf("expected none got %s", got)
	}
	if DirUp.Opposite() != DirDown || DirDown.Opposite() != DirUp || DirNone.Opposite() != DirNone {
		t.Fatal("opposite mapping broken")
	}
}

func TestTargetSet(t *testing.T) {
	car := NewCar(0, 10)
	car.AddTarget(5)
	car.AddTarget(5)
	if len(car.Targets) != 1 || !car.HasTarget(5) {
		t.Fatalf("expected a single target 5, got %v", car.Targets)
	}
	car.RemoveTarget(5)
	car.RemoveTarget(5)
	if car.HasTarget(5) {
		t.Fatal("target 5 should be gone")
	}
}

func TestNearestAndFarthestAhead(t *testing.T) {
	car := NewCar(0, 10)
	car.Floor = 4
	for _, f := range []int{1, 6, 8} {
		car.AddTarget(f)
	}

	if f, ok := car.NearestAhead(DirUp); !ok || f != 6 {
		t.Fatalf("nearest up: got %d,%v want 6,true", f, ok)
	}
	if f, ok := car.FarthestAhead(DirUp); !ok || f != 8 {
		t.Fatalf("farthest up: got %d,%v want 8,true", f, ok)
	}
	if f, ok := car.NearestAhead(DirDown); !ok || f != 1 {
		t.Fatalf("nearest down: got %d,%v want 1,true", f, ok)
	}

	// The current floor itself is never ahead.
	car.AddTarget(4)
	if f, ok := car.NearestAhead(DirUp); !ok || f != 6 {
		t.Fatalf("current floor counted as ahead: got %d,%v", f, ok)
	}
	if _, ok := car.NearestAhead(DirNone); ok {
		t.Fatal("no floor is ahead without a direction")
	}
}

func TestPrimaryTarget(t *testing.T) {
	car := NewCar(0, 10)
	car.Floor = 3
	if _, ok := car.PrimaryTarget(); ok {
		t.Fatal("empty target set has no primary")
	}
	car.AddTarget(6)
	car.AddTarget(8)

	car.Direction = DirUp
	if f, _ := car.PrimaryTarget(); f != 6 {
		t.Fatalf("heading up: primary should be lowest target, got %d", f)
	}
	car.Direction = DirDown
	if f, _ := car.PrimaryTarget(); f != 8 {
		t.Fatalf("heading down: primary should be highest target, got %d", f)
	}
}

func TestPrimaryTargetIgnoresTargetsBehind(t *testing.T) {
	car := NewCar(0, 10)
	car.Floor = 5
	car.AddTarget(2)
	car.AddTarget(8)

	// The destination at 2 sits behind an upward sweep; the committed stop
	// ahead is the reference point.
	car.Direction = DirUp
	if f, _ := car.PrimaryTarget(); f != 8 {
		t.Fatalf("heading up from 5: primary should be 8, got %d", f)
	}
	car.Direction = DirDown
	if f, _ := car.PrimaryTarget(); f != 2 {
		t.Fatalf("heading down from 5: primary should be 2, got %d", f)
	}

	// With nothing ahead the sweep boundary is returned.
	car.Floor = 9
	car.Direction = DirUp
	if f, _ := car.PrimaryTarget(); f != 2 {
		t.Fatalf("nothing ahead: boundary should be 2, got %d", f)
	}
}

func TestLoadAndFull(t *testing.T) {
	car := NewCar(0, 2)
	car.Onboard["a"] = 3
	if car.Full() {
		t.Fatal("one of two is not full")
	}
	car.Onboard["b"] = 5
	if !car.Full() || car.Load() != 2 {
		t.Fatalf("expected full with load 2, got load %d", car.Load())
	}
}

func TestFleetByID(t *testing.T) {
	fleet := NewFleet(3, 10)
	if fleet.Len() != 3 {
		t.Fatalf("expected 3 cars, got %d", fleet.Len())
	}
	car, ok := fleet.ByID(2)
	if !ok || car.ID != 2 {
		t.Fatalf("lookup of car 2 failed: %v, %v", car, ok)
	}
	if _, ok := fleet.ByID(3); ok {
		t.Fatal("car 3 should not exist")
	}
}

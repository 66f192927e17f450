// Package simulator provides the in-process engine the dispatch core is
// developed against: integer-tick car motion, passenger generation and
// event delivery in engine order. It stands in for the external physics
// engine, which owns the same contract.
package simulator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hoistlab/liftcore/core/dispatch"
	"github.com/hoistlab/liftcore/core/logger"
	"github.com/hoistlab/liftcore/core/model"
)

// rider is a simulated passenger from call to alighting.
type rider struct {
	id        string
	origin    int
	dest      int
	dir       model.Direction
	callTick  int
	boardTick int
	doneTick  int
	car       int
}

// carBody is the physical side of a car: where it is and where it was told
// to go. One floor per tick.
type carBody struct {
	floor        int
	target       int
	hasTarget    bool
	idleReported bool
	traveled     int
}

// Engine drives a dispatch manager through a scenario. It implements
// dispatch.CommandPublisher so the manager's move commands feed straight
// back into the simulated world. Strictly single-threaded: each event is
// processed to completion before the next.
type Engine struct {
	scn     Scenario
	mgr     *dispatch.Manager
	rng     *rand.Rand
	log     logger.Logger
	cars    []carBody
	waiting map[int][]*rider
	riding  map[int][]*rider
	done    []*rider
	spawned int
	tick    int
}

// New creates an engine for the scenario. Bind must be called with the
// manager before Run; the manager in turn needs the engine as its command
// publisher, which is why construction is split.
func New(scn Scenario, log logger.Logger) (*Engine, error) {
	scn.SetDefaults()
	if err := scn.Validate(); err != nil {
		return nil, err
	}
	seed := scn.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		scn:     scn,
		rng:     rand.New(rand.NewSource(seed)),
		log:     log,
		cars:    make([]carBody, scn.Cars),
		waiting: make(map[int][]*rider),
		riding:  make(map[int][]*rider),
	}, nil
}

// Bind attaches the dispatch manager whose decisions the engine executes.
func (e *Engine) Bind(m *dispatch.Manager) { e.mgr = m }

// Move implements dispatch.CommandPublisher. Immediate commands position
// the car without motion; they are used for startup placement only.
func (e *Engine) Move(carID, floor int, immediate bool) error {
	if carID < 0 || carID >= len(e.cars) {
		return fmt.Errorf("simulator: unknown car %d", carID)
	}
	if floor < 0 || floor >= e.scn.Floors {
		return fmt.Errorf("simulator: floor %d outside building", floor)
	}
	body := &e.cars[carID]
	if immediate {
		body.floor = floor
		body.hasTarget = false
		return nil
	}
	body.target = floor
	body.hasTarget = true
	body.idleReported = false
	return nil
}

// Run executes the scenario and returns the collected statistics. The run
// extends past the scenario length by at most DrainTicks while passengers
// are still waiting or riding.
func (e *Engine) Run() (Stats, error) {
	if e.mgr == nil {
		return Stats{}, fmt.Errorf("simulator: no manager bound")
	}
	if _, err := e.mgr.InitFleet(e.scn.Cars, e.scn.Floors, e.scn.Capacity); err != nil {
		return Stats{}, err
	}
	limit := e.scn.Ticks + e.scn.DrainTicks
	for e.tick = 1; e.tick <= limit; e.tick++ {
		if e.tick <= e.scn.Ticks {
			e.spawn()
		}
		e.step()
		e.reportIdle()
		if e.tick > e.scn.Ticks && e.inFlight() == 0 {
			break
		}
	}
	return e.stats(), nil
}

// spawn generates this tick's arrivals and presses their hall buttons.
func (e *Engine) spawn() {
	for _, c := range e.scn.Calls {
		if c.Tick == e.tick {
			e.admit(c.Origin, c.Destination)
		}
	}
	if e.scn.ArrivalRate > 0 && e.rng.Float64() < e.scn.ArrivalRate {
		origin := e.rng.Intn(e.scn.Floors)
		dest := e.rng.Intn(e.scn.Floors - 1)
		if dest >= origin {
			dest++
		}
		e.admit(origin, dest)
	}
}

func (e *Engine) admit(origin, dest int) {
	r := &rider{
		id:       uuid.NewString(),
		origin:   origin,
		dest:     dest,
		dir:      model.Toward(origin, dest),
		callTick: e.tick,
		car:      -1,
	}
	e.waiting[origin] = append(e.waiting[origin], r)
	e.spawned++
	if _, err := e.mgr.HandleCall(origin, r.dir); err != nil {
		e.log.Errorf("call %d/%s: %v", origin, r.dir, err)
	}
}

// step advances every commanded car one floor and services arrivals.
func (e *Engine) step() {
	for id := range e.cars {
		body := &e.cars[id]
		if !body.hasTarget {
			continue
		}
		if body.floor < body.target {
			body.floor++
			body.traveled++
		} else if body.floor > body.target {
			body.floor--
			body.traveled++
		}
		if body.floor == body.target {
			body.hasTarget = false
			e.arrive(id, body.floor)
		}
	}
}

// arrive delivers the stop, alight and board events for one car in engine
// order, then re-presses buttons for riders left behind.
func (e *Engine) arrive(carID, floor int) {
	if _, err := e.mgr.HandleStopped(carID, floor); err != nil {
		e.log.Errorf("stop car %d floor %d: %v", carID, floor, err)
		return
	}

	kept := e.riding[carID][:0]
	for _, r := range e.riding[carID] {
		if r.dest != floor {
			kept = append(kept, r)
			continue
		}
		r.doneTick = e.tick
		e.done = append(e.done, r)
		if _, err := e.mgr.HandleAlight(carID, r.id, floor); err != nil {
			e.log.Errorf("alight %s: %v", r.id, err)
		}
	}
	e.riding[carID] = kept

	e.board(carID, floor)
}

func (e *Engine) board(carID, floor int) {
	queue := e.waiting[floor]
	if len(queue) == 0 {
		return
	}
	heading := e.carDirection(carID)
	var left []*rider
	for _, r := range queue {
		if heading != model.DirNone && r.dir != heading {
			left = append(left, r)
			continue
		}
		if len(e.riding[carID]) >= e.scn.Capacity {
			left = append(left, r)
			continue
		}
		p := model.Passenger{ID: r.id, Origin: r.origin, Destination: r.dest}
		if _, err := e.mgr.HandleBoard(carID, p); err != nil {
			left = append(left, r)
			continue
		}
		r.boardTick = e.tick
		r.car = carID
		e.riding[carID] = append(e.riding[carID], r)
	}
	e.waiting[floor] = left
	// Anyone left behind presses the button again; the registry add is
	// idempotent, but a freed-up car may now take the call.
	for _, r := range left {
		if _, err := e.mgr.HandleCall(floor, r.dir); err != nil {
			e.log.Errorf("re-press %d/%s: %v", floor, r.dir, err)
		}
	}
}

// reportIdle fires a single idle event per car once its commanded motion
// is exhausted.
func (e *Engine) reportIdle() {
	for id := range e.cars {
		body := &e.cars[id]
		if body.hasTarget || body.idleReported {
			continue
		}
		body.idleReported = true
		if _, err := e.mgr.HandleIdle(id); err != nil {
			e.log.Errorf("idle car %d: %v", id, err)
		}
	}
}

func (e *Engine) carDirection(carID int) model.Direction {
	snap := e.mgr.Snapshot()
	for _, c := range snap.Cars {
		if c.ID == carID {
			switch c.Direction {
			case "up":
				return model.DirUp
			case "down":
				return model.DirDown
			}
			return model.DirNone
		}
	}
	return model.DirNone
}

func (e *Engine) inFlight() int {
	n := 0
	for _, q := range e.waiting {
		n += len(q)
	}
	for _, q := range e.riding {
		n += len(q)
	}
	return n
}

func (e *Engine) stats() Stats {
	s := Stats{
		Ticks:          e.tick,
		Spawned:        e.spawned,
		Delivered:      len(e.done),
		Stranded:       e.inFlight(),
		FloorsTraveled: make([]int, len(e.cars)),
	}
	for id, body := range e.cars {
		s.FloorsTraveled[id] = body.traveled
	}
	s.summarize(e.done)
	return s
}

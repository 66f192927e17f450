package dispatch

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/hoistlab/liftcore/core/events"
	"github.com/hoistlab/liftcore/core/logger"
	"github.com/hoistlab/liftcore/core/metrics"
	"github.com/hoistlab/liftcore/core/model"
	"github.com/hoistlab/liftcore/core/registry"
	"github.com/hoistlab/liftcore/core/zone"
	"github.com/hoistlab/liftcore/internal/eventbus"
)

// DefaultCapacity is used when the fleet is initialized without an
// explicit per-car capacity.
const DefaultCapacity = 10

// Command tells the engine to move a car to a floor. Immediate bypasses
// queuing and is used for startup placement only.
type Command struct {
	Car       int
	Floor     int
	Immediate bool
}

// CommandPublisher delivers move commands to the external engine. The
// core treats delivery as fire-and-forget: an error is logged, never
// awaited or retried inline with a dispatch decision.
type CommandPublisher interface {
	Move(carID, floor int, immediate bool) error
}

// Bus carries dispatch events to observers such as the telemetry relay.
type Bus = eventbus.Bus[any]

// Manager is the dispatch orchestrator. It exclusively owns the fleet and
// the hall call registry and serializes all event handling behind one
// mutex, since scoring reads the whole fleet snapshot and must not observe
// a torn state.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	maxFloor int
	fleet    *model.Fleet
	calls    *registry.FloorRequests
	scorer   Scorer
	planner  Planner
	mover    CommandPublisher
	log      logger.Logger
	bus      *Bus
	sink     metrics.Sink
	seq      uint64

	// lastCmd suppresses duplicate consecutive commands per car so that
	// repeated idle events stay idempotent. Entries are dropped when the
	// car next stops.
	lastCmd map[int]Command
}

// NewManager creates a dispatch manager. The sink and bus may be nil; the
// mover and log may not.
func NewManager(cfg Config, mover CommandPublisher, sink metrics.Sink, bus *Bus, log logger.Logger) (*Manager, error) {
	if mover == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewManager")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		cfg:     cfg,
		scorer:  NewScorer(cfg),
		planner: NewPlanner(cfg.Sweep),
		mover:   mover,
		log:     log,
		bus:     bus,
		sink:    sink,
		lastCmd: make(map[int]Command),
	}, nil
}

// InitFleet creates the fleet, assigns homes and service zones, and issues
// immediate placement commands distributing the cars across the building.
// It must be called once before any event is handled.
func (m *Manager) InitFleet(cars, floors, capacity int) ([]Command, error) {
	if cars <= 0 {
		return nil, ErrNoCars
	}
	if floors < 2 {
		return nil, ErrNoFloors
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.maxFloor = floors - 1
	m.calls = registry.New(m.maxFloor)
	m.fleet = model.NewFleet(cars, capacity)
	var out []Command
	for _, car := range m.fleet.Cars {
		car.Home = zone.HomeFloor(car.ID, cars, m.maxFloor)
		car.Zone = zone.For(car.ID, cars, m.maxFloor, m.cfg.ZoneOverlap)
		car.Floor = car.Home
		m.emit(car, car.Home, true, &out)
		m.log.Infof("car %d home floor %d zone [%d, %d]", car.ID, car.Home, car.Zone.Low, car.Zone.High)
	}
	m.publishSnapshot()
	return out, nil
}

// Handle consumes one inbound event and returns the move commands it
// produced. It is the single entry point tying the five hooks together.
func (m *Manager) Handle(ev events.Event) ([]Command, error) {
	switch e := ev.(type) {
	case events.Call:
		return m.HandleCall(e.Floor, e.Direction)
	case events.Stopped:
		return m.HandleStopped(e.Car, e.Floor)
	case events.Board:
		return m.HandleBoard(e.Car, e.Passenger)
	case events.Alight:
		return m.HandleAlight(e.Car, e.Passenger, e.Floor)
	case events.Idle:
		return m.HandleIdle(e.Car)
	default:
		return nil, fmt.Errorf("dispatch: unhandled event type %T", ev)
	}
}

// HandleCall registers a hall call and tries to assign a car: first a
// scanning car for which the call is genuinely on the way, then the best
// scoring resting car, then the nearest resting car regardless of score.
// Only when every car is busy or full does the call stay pending; it is
// then re-inspected at every subsequent stop and idle event, which
// preserves liveness.
func (m *Manager) HandleCall(floor int, dir model.Direction) ([]Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkFloor(floor); err != nil {
		return nil, err
	}
	if dir != model.DirUp && dir != model.DirDown {
		return nil, fmt.Errorf("dispatch: call at floor %d without direction", floor)
	}

	m.calls.AddCall(floor, dir)
	callsReceived.WithLabelValues(dir.String()).Inc()

	var out []Command
	if car, score, ok := m.scorer.Best(m.fleet.Cars, model.StateScanning, floor, dir); ok {
		car.AddTarget(floor)
		m.replan(car, &out)
		m.log.Infof("car %d takes call %d/%s on the way (score %.1f, load %d)", car.ID, floor, dir, score, car.Load())
	} else if car, score, ok := m.scorer.Best(m.fleet.Cars, model.StateResting, floor, dir); ok {
		m.wake(car, floor, dir, &out)
		m.log.Infof("car %d woken for call %d/%s (score %.1f)", car.ID, floor, dir, score)
	} else if car, ok := m.nearestResting(floor); ok {
		// Scores rank resting cars, they never disqualify them: a lone
		// call must always wake somebody, however far away.
		m.wake(car, floor, dir, &out)
		m.log.Infof("car %d woken for distant call %d/%s", car.ID, floor, dir)
	} else {
		m.log.Debugf("no candidate for call %d/%s, left pending", floor, dir)
	}
	m.finish()
	return out, nil
}

// HandleStopped processes a car arrival: accounts travel, clears the
// serviced call, removes the floor from the target set and replans. The
// stop handler is the single source of truth for target clearing.
func (m *Manager) HandleStopped(carID, floor int) ([]Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, err := m.car(carID)
	if err != nil {
		return nil, err
	}
	if err := m.checkFloor(floor); err != nil {
		return nil, err
	}

	heading := car.Direction
	traveled := distance(car.Floor, floor)
	floorsTraveled.WithLabelValues(strconv.Itoa(car.ID)).Add(float64(traveled))
	stopsServiced.Inc()
	delete(m.lastCmd, car.ID)

	car.Floor = floor
	car.State = model.StateLoading
	car.RemoveTarget(floor)
	// First arrival wins: the call is cleared even if this car was not the
	// one originally assigned to it. A car without an active direction
	// serves whichever side is waiting.
	if heading == model.DirNone {
		m.calls.ClearCall(floor, model.DirUp)
		m.calls.ClearCall(floor, model.DirDown)
	} else {
		m.calls.ClearCall(floor, heading)
	}

	rec := metrics.StopRecord{Car: car.ID, Floor: floor, Direction: heading.String(), Load: car.Load(), Time: time.Now()}
	if err := m.sink.RecordStops([]metrics.StopRecord{rec}); err != nil {
		m.log.Errorf("metrics error: %v", err)
	}

	var out []Command
	m.decideAfterStop(car, &out)
	m.finish()
	return out, nil
}

// HandleBoard records the passenger, adds the destination to the target
// set and activates the car if it was resting.
func (m *Manager) HandleBoard(carID int, p model.Passenger) ([]Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, err := m.car(carID)
	if err != nil {
		return nil, err
	}
	if err := m.checkFloor(p.Destination); err != nil {
		return nil, err
	}
	if car.Full() {
		return nil, CarFullError{Car: car.ID}
	}

	car.Onboard[p.ID] = p.Destination
	car.AddTarget(p.Destination)
	if car.State == model.StateResting {
		car.Direction = model.Toward(car.Floor, p.Destination)
		m.log.Debugf("car %d activated by boarding passenger %s", car.ID, p.ID)
	}
	var out []Command
	m.replan(car, &out)
	m.finish()
	return out, nil
}

// HandleAlight discards the passenger. The destination floor is left in
// the target set if other passengers still need it; target clearing
// belongs to the stop handler alone.
func (m *Manager) HandleAlight(carID int, passengerID string, floor int) ([]Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, err := m.car(carID)
	if err != nil {
		return nil, err
	}
	delete(car.Onboard, passengerID)
	m.finish()
	return nil, nil
}

// HandleIdle replans a car with no commanded motion. Stale targets are
// rebuilt from the onboard destinations, pending calls anywhere in the
// building are picked up with zone affinity, and an undisturbed car rests,
// drifting back toward its zone when displaced too far.
func (m *Manager) HandleIdle(carID int) ([]Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, err := m.car(carID)
	if err != nil {
		return nil, err
	}

	car.Targets = make(map[int]struct{})
	for _, dest := range car.Onboard {
		car.AddTarget(dest)
	}

	var out []Command
	switch {
	case len(car.Targets) > 0:
		m.replan(car, &out)
	case m.calls.HasAny():
		m.selfDispatch(car, &out)
	default:
		m.rest(car, &out)
	}
	m.finish()
	return out, nil
}

// Snapshot returns a point-in-time view of the fleet and pending calls,
// in the same shape the telemetry relay forwards.
func (m *Manager) Snapshot() events.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// PendingFloors returns the floors with an unanswered hall call.
func (m *Manager) PendingFloors() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.PendingFloors()
}

// decideAfterStop picks the car's continuation once doors are open: keep
// scanning while obligations remain, otherwise pick up pending calls, and
// rest as the last resort.
func (m *Manager) decideAfterStop(car *model.Car, out *[]Command) {
	if len(car.Targets) > 0 || car.Load() > 0 {
		m.replan(car, out)
		return
	}
	if m.calls.HasAny() {
		m.selfDispatch(car, out)
		return
	}
	m.rest(car, out)
}

// replan asks the planner for the next stop and emits the move command.
func (m *Manager) replan(car *model.Car, out *[]Command) {
	before := car.Direction
	floor, ok := m.planner.NextStop(car)
	if !ok {
		m.rest(car, out)
		return
	}
	if before != model.DirNone && car.Direction != before {
		directionReversals.Inc()
	}
	m.emit(car, floor, false, out)
}

// wake puts a resting car on a call: direction toward the call floor, the
// floor as its first target, and a move command.
func (m *Manager) wake(car *model.Car, floor int, dir model.Direction, out *[]Command) {
	car.State = model.StateScanning
	car.Direction = model.Toward(car.Floor, floor)
	if car.Direction == model.DirNone {
		car.Direction = dir
	}
	car.AddTarget(floor)
	m.emit(car, floor, false, out)
}

// nearestResting returns the closest resting car with room on board.
// Exact ties go to the lowest car id; iteration is in id order.
func (m *Manager) nearestResting(floor int) (*model.Car, bool) {
	var best *model.Car
	for _, car := range m.fleet.Cars {
		if car.State != model.StateResting || car.Full() {
			continue
		}
		if best == nil || distance(car.Floor, floor) < distance(best.Floor, floor) {
			best = car
		}
	}
	return best, best != nil
}

// selfDispatch sends an unoccupied car to the best pending floor, scored
// by proximity and zone affinity like a fresh idle assignment.
func (m *Manager) selfDispatch(car *model.Car, out *[]Command) {
	best := -1
	bestScore := 0.0
	for _, floor := range m.calls.PendingFloors() {
		score := m.cfg.IdleBase - m.cfg.IdleDistanceWeight*float64(distance(car.Floor, floor))
		if car.Zone.Contains(floor) {
			score += m.cfg.ZoneBonus
		}
		if best < 0 || score > bestScore {
			best = floor
			bestScore = score
		}
	}
	if best < 0 {
		m.rest(car, out)
		return
	}
	car.State = model.StateScanning
	dir := model.Toward(car.Floor, best)
	if dir == model.DirNone {
		if m.calls.Has(best, model.DirUp) {
			dir = model.DirUp
		} else {
			dir = model.DirDown
		}
	}
	car.Direction = dir
	car.AddTarget(best)
	m.emit(car, best, false, out)
	m.log.Debugf("car %d self-dispatched to pending floor %d", car.ID, best)
}

// rest parks the car at its current floor, which becomes the new informal
// home. A car displaced beyond the drift threshold is nudged back toward
// its zone center so the fleet stays spread out for future calls.
func (m *Manager) rest(car *model.Car, out *[]Command) {
	car.State = model.StateResting
	car.Direction = model.DirNone
	car.Home = car.Floor
	center := (car.Zone.Low + car.Zone.High) / 2
	if distance(car.Floor, center) > m.cfg.DriftThreshold {
		m.emit(car, center, false, out)
		m.log.Debugf("car %d drifting back toward zone center %d", car.ID, center)
	}
}

// emit issues a move command unless it duplicates the last command sent to
// the car since its last stop.
func (m *Manager) emit(car *model.Car, floor int, immediate bool, out *[]Command) {
	cmd := Command{Car: car.ID, Floor: floor, Immediate: immediate}
	if last, ok := m.lastCmd[car.ID]; ok && last == cmd {
		return
	}
	m.lastCmd[car.ID] = cmd
	if err := m.mover.Move(cmd.Car, cmd.Floor, cmd.Immediate); err != nil {
		m.log.Warnf("move command car %d floor %d: %v", cmd.Car, cmd.Floor, err)
	}
	commandsIssued.WithLabelValues(strconv.FormatBool(immediate)).Inc()
	if m.bus != nil {
		m.bus.Publish(events.CommandIssued{Car: cmd.Car, Floor: cmd.Floor, Immediate: cmd.Immediate})
	}
	rec := metrics.CommandRecord{Car: cmd.Car, Floor: cmd.Floor, Immediate: cmd.Immediate, Time: time.Now()}
	if err := m.sink.RecordCommands([]metrics.CommandRecord{rec}); err != nil {
		m.log.Errorf("metrics error: %v", err)
	}
	*out = append(*out, cmd)
}

// finish closes out one event: refresh the pending gauge and publish a
// fleet snapshot for observers.
func (m *Manager) finish() {
	pendingCalls.Set(float64(len(m.calls.PendingFloors())))
	m.publishSnapshot()
}

func (m *Manager) publishSnapshot() {
	if m.bus == nil {
		return
	}
	m.bus.Publish(m.snapshotLocked())
}

func (m *Manager) snapshotLocked() events.Snapshot {
	m.seq++
	snap := events.Snapshot{
		Seq:      m.seq,
		MaxFloor: m.maxFloor,
		Cars:     make([]events.CarStatus, 0, m.fleet.Len()),
		Pending:  m.calls.PendingFloors(),
	}
	for _, car := range m.fleet.Cars {
		targets := make([]int, 0, len(car.Targets))
		for f := range car.Targets {
			targets = append(targets, f)
		}
		sort.Ints(targets)
		snap.Cars = append(snap.Cars, events.CarStatus{
			ID:        car.ID,
			Floor:     car.Floor,
			Direction: car.Direction.String(),
			State:     car.State.String(),
			Load:      car.Load(),
			Capacity:  car.Capacity,
			Targets:   targets,
		})
	}
	return snap
}

func (m *Manager) car(id int) (*model.Car, error) {
	if m.fleet == nil {
		return nil, fmt.Errorf("dispatch: fleet not initialized")
	}
	car, ok := m.fleet.ByID(id)
	if !ok {
		return nil, UnknownCarError{Car: id}
	}
	return car, nil
}

func (m *Manager) checkFloor(floor int) error {
	if m.calls == nil {
		return fmt.Errorf("dispatch: fleet not initialized")
	}
	if floor < 0 || floor > m.maxFloor {
		return InvalidFloorError{Floor: floor, MaxFloor: m.maxFloor}
	}
	return nil
}

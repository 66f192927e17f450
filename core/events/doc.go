// Package events defines the dispatch related events emitted on the event bus.
//
// Inbound event types consumed by the dispatcher:
//   - Call: a passenger pressed a hall button
//   - Stopped: a car arrived at a floor
//   - Board: a passenger entered a car
//   - Alight: a passenger left a car
//   - Idle: a car finished its commanded motion
//
// Outbound event types published for observers:
//   - CommandIssued: a move command was sent to the engine
//   - Snapshot: the fleet state after an event was fully processed
package events

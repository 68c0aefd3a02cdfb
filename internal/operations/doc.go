// Package operations runs the analysis pipeline as a sequence of
// observable steps.
//
// The pipeline has four steps: classify column types, clean the rows,
// compute statistics, and assemble the final Analysis. A Manager
// executes them in order against a shared OperationState and publishes
// a progress snapshot through the ProgressTracker after every step
// transition, which the websocket hub relays to connected clients.
//
// A running step is never interrupted: the context is only consulted
// between steps, so a cancelled operation still finishes the step it
// was in before reporting cancellation.
package operations

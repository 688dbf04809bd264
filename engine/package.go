// Package engine defines the capability set a key/value storage engine must
// provide to be benchmarked, and the engines kvbench ships with.
//
// The harness is generic over Engine, so every benchmarked engine is its own
// instantiation and engine calls are made on the concrete type.
package engine

//go:generate mockgen -destination mock_engine/engine.go . Engine

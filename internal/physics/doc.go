// Package physics provides the teaching models that drive the integrators.
//
// Each model is a struct of constants with a default constructor. Its
// derivative is exposed as a method whose value satisfies one of the
// callback shapes in dynamo:
//
//   - [dynamo.Func] for first-order systems: [Decay], [ChainDecay],
//     [Cooling], [VerticalDrag], [Projectile], [Cyclist], [Lorenz],
//     [Rossler], [Autocatalator], [Orbit], [Pitch], [SineODE], [Riccati]
//   - [dynamo.HighestFunc] for m-th order scalar equations:
//     [DrivenPendulum], [DampedSpring], [Oscillator]
//
// [Lookup] resolves a model name to a [Model] descriptor carrying the
// default initial state, schedule and stop condition, with optional
// parameter overrides.
//
// # Energy Conservation
//
// Models with a conserved quantity implement [dynamo.Hamiltonian]:
//
//	orbit := physics.NewOrbit()
//	drift := metrics.NewEnergyDrift(orbit)
package physics

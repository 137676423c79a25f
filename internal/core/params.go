package core

// Parameter describes a single physical constant exposed by a simulation.
type Parameter struct {
	Key   string
	Label string
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of constants exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParametersProvider is implemented by sims that expose a parameter snapshot.
type ParametersProvider interface {
	Parameters() ParameterSnapshot
}

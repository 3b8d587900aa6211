package metrics

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID               int     `yaml:"id"`
	Kind             string  `yaml:"kind"` // mcts, ismcts or multithreaded
	Simulations      int     `yaml:"simulations"`
	Determinizations int     `yaml:"determinizations"`
	Workers          int     `yaml:"workers"`     // multithreaded only, 0 uses every CPU
	Exploration      float64 `yaml:"exploration"` // 0 uses the default constant
	Temperature      float64 `yaml:"temperature"`
}

package game

import "golang.org/x/exp/rand"

// State is the capability set required by perfect-information search.
// Implementations are treated as immutable: Apply always returns a state the caller owns.
type State[S any, A comparable, P comparable] interface {
	// CurrentPlayer is the player who acts next.
	CurrentPlayer() P
	// Players lists every participant, in a stable order.
	Players() []P
	// Actions returns the legal actions of the current player in a stable enumeration order.
	Actions() []A
	// Apply returns the successor state. A non-nil error means the action is illegal.
	Apply(rng *rand.Rand, action A) (S, error)
	IsTerminal() bool
	// Reward is only defined once the state is terminal.
	Reward(player P) float64
}

// InformationSetState adds hidden information to State.
type InformationSetState[S any, A comparable, P comparable] interface {
	State[S, A, P]
	// Determinize samples a fully observable state consistent with everything observer
	// has seen. It must only read the observer's information set, so that repeated
	// calls with independent rng draws sample the hidden information posterior.
	Determinize(rng *rand.Rand, observer P) S
}

// SharedInformationSetState is an InformationSetState that can be handed to
// concurrent workers, each of which receives its own Clone.
type SharedInformationSetState[S any, A comparable, P comparable] interface {
	InformationSetState[S, A, P]
	Clone() S
}

// Stochastic is implemented by states whose next transition may be a chance event.
type Stochastic interface {
	IsChance() bool
}

// RolloutHinter is implemented by states that provide their own default policy for
// rollouts. Returning false falls back to the engine's rollout policy.
type RolloutHinter[A comparable] interface {
	RolloutAction(rng *rand.Rand) (A, bool)
}

// Evaluator is implemented by states that can score a non-terminal position from
// player's perspective. It is used when rollouts are cut off before the game ends.
type Evaluator[P comparable] interface {
	Evaluate(player P) float64
}

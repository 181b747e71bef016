package operator

// Kind names one of the thirteen neighborhoods in the operator catalogue.
// Each Kind exists in a capacity-only flavor and a time-window-aware
// flavor; the flavor is not a separate Kind value but a Validator supplied
// to the Move at construction, per the composition-over-inheritance design:
// one struct carries a capacity-only gain calculator plus a validator that
// is either always-valid (CVRP) or delegates to a TW route's probes
// (VRPTW). Dispatch happens on Kind and on the Validator's own type, never
// through a virtual method table.
type Kind int

const (
	Exchange Kind = iota
	CrossExchange
	MixedExchange
	TwoOpt
	ReverseTwoOpt
	Relocate
	OrOpt
	IntraExchange
	IntraCrossExchange
	IntraMixedExchange
	IntraRelocate
	IntraOrOpt
	IntraTwoOpt
)

func (k Kind) String() string {
	switch k {
	case Exchange:
		return "exchange"
	case CrossExchange:
		return "cross_exchange"
	case MixedExchange:
		return "mixed_exchange"
	case TwoOpt:
		return "two_opt"
	case ReverseTwoOpt:
		return "reverse_two_opt"
	case Relocate:
		return "relocate"
	case OrOpt:
		return "or_opt"
	case IntraExchange:
		return "intra_exchange"
	case IntraCrossExchange:
		return "intra_cross_exchange"
	case IntraMixedExchange:
		return "intra_mixed_exchange"
	case IntraRelocate:
		return "intra_relocate"
	case IntraOrOpt:
		return "intra_or_opt"
	case IntraTwoOpt:
		return "intra_two_opt"
	default:
		return "unknown"
	}
}

// IsIntra reports whether this Kind operates within a single route.
func (k Kind) IsIntra() bool { return k >= IntraExchange }

// Priority orders Kind values for deterministic tie-breaking among
// equal-gain contenders: table order, inter-route kinds before intra.
func (k Kind) Priority() int { return int(k) }

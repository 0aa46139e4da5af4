package domainmap

// UnknownPolicy controls how keys without a matching field are handled when
// parsing raw data.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Ignore unknown keys.
	UnknownStrict                      // Reject unknown keys with an issue.
)

// String returns the configuration name of the policy.
func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	default:
		return "strip"
	}
}

// ParseUnknownPolicy maps a configuration name ("strip", "strict") to a policy.
func ParseUnknownPolicy(s string) (UnknownPolicy, bool) {
	switch s {
	case "", "strip":
		return UnknownStrip, true
	case "strict":
		return UnknownStrict, true
	}
	return UnknownStrip, false
}

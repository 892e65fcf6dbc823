package accounts

// DefaultLockoutThreshold is the number of consecutive failures after
// which an account locks.
const DefaultLockoutThreshold = 5

// Decision is the outcome of applying the lockout policy to one attempt.
type Decision struct {
	Attempts int
	Locked   bool
	Allowed  bool
}

// LockoutPolicy decides whether a login attempt may proceed and how the
// per-account counters change afterwards. It is a pure function of its
// inputs; reading and persisting the counters stays with the caller.
type LockoutPolicy struct {
	Threshold int
}

func NewLockoutPolicy(threshold int) LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	return LockoutPolicy{Threshold: threshold}
}

// Apply computes the next state for one attempt.
//
// A locked account rejects the attempt outright regardless of the password;
// the lock never clears here, unlocking is an out-of-band administrative
// action. The failing attempt that reaches the threshold is itself rejected.
func (p LockoutPolicy) Apply(attempts int, locked bool, succeeded bool) Decision {
	if locked {
		return Decision{Attempts: attempts, Locked: true, Allowed: false}
	}

	if succeeded {
		return Decision{Attempts: 0, Locked: false, Allowed: true}
	}

	next := attempts + 1
	return Decision{Attempts: next, Locked: next >= p.Threshold, Allowed: false}
}

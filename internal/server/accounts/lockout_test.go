package accounts

import "testing"

func TestLockoutPolicy_Apply(t *testing.T) {
	t.Parallel()

	p := NewLockoutPolicy(5)

	tests := []struct {
		name      string
		attempts  int
		locked    bool
		succeeded bool
		want      Decision
	}{
		{
			name: "success resets counter",
			attempts: 3, locked: false, succeeded: true,
			want: Decision{Attempts: 0, Locked: false, Allowed: true},
		},
		{
			name: "success on fresh account",
			attempts: 0, locked: false, succeeded: true,
			want: Decision{Attempts: 0, Locked: false, Allowed: true},
		},
		{
			name: "first failure increments",
			attempts: 0, locked: false, succeeded: false,
			want: Decision{Attempts: 1, Locked: false, Allowed: false},
		},
		{
			name: "failure below threshold stays unlocked",
			attempts: 3, locked: false, succeeded: false,
			want: Decision{Attempts: 4, Locked: false, Allowed: false},
		},
		{
			name: "failure reaching threshold locks and rejects",
			attempts: 4, locked: false, succeeded: false,
			want: Decision{Attempts: 5, Locked: true, Allowed: false},
		},
		{
			name: "locked account rejects correct password",
			attempts: 5, locked: true, succeeded: true,
			want: Decision{Attempts: 5, Locked: true, Allowed: false},
		},
		{
			name: "locked account rejects wrong password without counting",
			attempts: 5, locked: true, succeeded: false,
			want: Decision{Attempts: 5, Locked: true, Allowed: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Apply(tt.attempts, tt.locked, tt.succeeded)
			if got != tt.want {
				t.Fatalf("Apply(%d, %v, %v) = %+v, want %+v",
					tt.attempts, tt.locked, tt.succeeded, got, tt.want)
			}
		})
	}
}

func TestNewLockoutPolicy_DefaultsThreshold(t *testing.T) {
	t.Parallel()

	for _, bad := range []int{0, -3} {
		p := NewLockoutPolicy(bad)
		if p.Threshold != DefaultLockoutThreshold {
			t.Fatalf("threshold %d: got %d, want default %d", bad, p.Threshold, DefaultLockoutThreshold)
		}
	}
}

func TestLockoutPolicy_SequenceLocksAtThreshold(t *testing.T) {
	t.Parallel()

	p := NewLockoutPolicy(5)

	attempts, locked := 0, false
	for i := 1; i <= 5; i++ {
		d := p.Apply(attempts, locked, false)
		if d.Allowed {
			t.Fatalf("failure %d must not be allowed", i)
		}
		if d.Attempts != i {
			t.Fatalf("failure %d: attempts = %d", i, d.Attempts)
		}
		wantLocked := i == 5
		if d.Locked != wantLocked {
			t.Fatalf("failure %d: locked = %v, want %v", i, d.Locked, wantLocked)
		}
		attempts, locked = d.Attempts, d.Locked
	}
}

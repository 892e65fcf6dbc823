package accounts

import "time"

// Account is one credential-store record. Emails are stored lower-cased;
// normalization happens at the service boundary. FailedLoginAttempts and
// IsLocked are written only with values computed by the lockout policy.
type Account struct {
	ID                  string
	Email               string
	PasswordHash        string
	FailedLoginAttempts int
	IsLocked            bool
	LastLogin           *time.Time
	Version             int64
	CreatedAt           time.Time
}

// PublicView is the account representation handed to callers.
// It never carries the password hash.
type PublicView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (a *Account) Public() PublicView {
	return PublicView{
		ID:        a.ID,
		Email:     a.Email,
		LastLogin: a.LastLogin,
	}
}

package models

import (
	"net"
	"time"

	"github.com/google/uuid"
)

// SessionToken represents an authenticated user session.
type SessionToken struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash        string     `json:"token_hash" db:"token_hash"`
	TokenPrefix      string     `json:"token_prefix" db:"token_prefix"`
	UserAgent        *string    `json:"user_agent" db:"user_agent"`
	IPAddress        *net.IP    `json:"ip_address" db:"ip_address"`
	ExpiresAt        time.Time  `json:"expires_at" db:"expires_at"`
	LastUsedAt       time.Time  `json:"last_used_at" db:"last_used_at"`
	IsRevoked        bool       `json:"is_revoked" db:"is_revoked"`
	RevokedAt        *time.Time `json:"revoked_at" db:"revoked_at"`
	RevocationReason *string    `json:"revocation_reason" db:"revocation_reason"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SessionInfo is a display-safe projection of SessionToken.
type SessionInfo struct {
	ID          uuid.UUID  `json:"id"`
	TokenPrefix string     `json:"token_prefix"`
	UserAgent   *string    `json:"user_agent"`
	IPAddress   string     `json:"ip_address,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	LastUsedAt  time.Time  `json:"last_used_at"`
	IsRevoked   bool       `json:"is_revoked"`
	RevokedAt   *time.Time `json:"revoked_at"`
	IsCurrent   bool       `json:"is_current"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Revocation reason constants.
const (
	RevocationReasonUserLogout    = "user_logout"
	RevocationReasonSecurityEvent = "security_event"
	RevocationReasonExpired       = "expired"
)

// IsValid reports whether a session token is currently usable.
func (st *SessionToken) IsValid() bool {
	if st.IsRevoked {
		return false
	}
	if time.Now().After(st.ExpiresAt) {
		return false
	}
	return true
}

// ToSessionInfo converts SessionToken to its display-safe projection.
func (st *SessionToken) ToSessionInfo(isCurrent bool) *SessionInfo {
	info := &SessionInfo{
		ID:          st.ID,
		TokenPrefix: st.TokenPrefix,
		UserAgent:   st.UserAgent,
		ExpiresAt:   st.ExpiresAt,
		LastUsedAt:  st.LastUsedAt,
		IsRevoked:   st.IsRevoked,
		RevokedAt:   st.RevokedAt,
		IsCurrent:   isCurrent,
		CreatedAt:   st.CreatedAt,
	}
	if st.IPAddress != nil {
		info.IPAddress = st.IPAddress.String()
	}
	return info
}

package adapters

import (
	"time"

	"finance_backend/internal/feature/auth/domain/entity"
)

// SessionModel is the GORM persistence model for sessions.
// It is kept separate from the domain entity so storage concerns
// (table name, column tags) stay out of the domain layer.
type SessionModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index;not null"`
	UserAgent string `gorm:"size:512"`
	IPAddress string `gorm:"size:64"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
}

// TableName overrides the GORM table name.
func (SessionModel) TableName() string {
	return "sessions"
}

// SessionModelFromEntity converts a domain session into its persistence model.
func SessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}

// ToEntity converts the persistence model back into a domain session.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
	}
}

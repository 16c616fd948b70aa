package model

// User carries only what the catalog and notification paths need. Account
// management lives in a separate system.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"not null" json:"-"`
}

// UserSelector picks a user either by numeric id or by username. Exactly one
// side is set; the zero value selects nobody.
type UserSelector struct {
	ID       uint
	Username string
}

// ByUserID selects a user by primary key.
func ByUserID(id uint) UserSelector {
	return UserSelector{ID: id}
}

// ByUsername selects a user by unique username.
func ByUsername(name string) UserSelector {
	return UserSelector{Username: name}
}

// IsZero reports whether the selector picks nobody.
func (s UserSelector) IsZero() bool {
	return s.ID == 0 && s.Username == ""
}

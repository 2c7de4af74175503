package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/atlastile/cms-go-api/internal/audit"
)

// User roles mirror the admin permission tiers.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User is an authenticated back-office account.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Name      string     `gorm:"size:255" json:"name"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Role      string     `gorm:"size:20;not null;default:editor" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName pins the users table name.
func (User) TableName() string { return "users" }

// pepper mixes the server secret into the raw password before hashing, so
// leaked hashes cannot be cracked with generic tables. Only immutable inputs
// participate: peppering with username or role would invalidate the hash when
// an admin renames or promotes the account.
func (u *User) pepper(raw, secret string) string {
	return fmt.Sprintf("%s.%s", raw, secret)
}

// SetPassword hashes and stores the peppered password.
func (u *User) SetPassword(raw, secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.pepper(raw, secret)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether the raw password matches the stored hash.
func (u *User) CheckPassword(raw, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(u.pepper(raw, secret))) == nil
}

// Principal converts the user into the audit engine's principal shape.
func (u *User) Principal() *audit.Principal {
	return &audit.Principal{
		ID:       int64(u.ID),
		Email:    u.Email,
		Username: u.Username,
		Name:     u.Name,
	}
}

// AuditEntity implements audit.Snapshotter.
func (u *User) AuditEntity() audit.Entity {
	return audit.Entity{
		Type:      "user",
		Qualified: "models.User",
		ID:        auditID(u.ID),
		Label:     fmt.Sprintf("%d: %s", u.ID, u.Email),
	}
}

// AuditFields implements audit.Snapshotter. The password hash is declared
// sensitive so snapshots carry the mask token instead of the hash.
func (u *User) AuditFields() []audit.Field {
	return []audit.Field{
		{Name: "username", Value: u.Username},
		{Name: "name", Value: u.Name},
		{Name: "email", Value: u.Email},
		{Name: "password", Value: u.Password, Sensitive: true},
		{Name: "role", Value: u.Role},
		{Name: "is_active", Value: u.IsActive},
	}
}

// auditID adapts GORM's uint primary keys to the audit engine's nullable
// int64 identifiers; zero means the instance was never saved.
func auditID(id uint) *int64 {
	if id == 0 {
		return nil
	}
	value := int64(id)
	return &value
}

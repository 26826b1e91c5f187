package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxUsernameLen   = 50
	maxNameLen       = 50
	bcryptHashLength = 60
)

// User is the aggregate root for the user domain. The password field
// holds a bcrypt digest; hashing and verification live in the password
// collaborator, never here.
type User struct {
	id                  string
	username            string
	email               string
	firstName           string
	firstNameRuby       string
	lastName            string
	lastNameRuby        string
	passwordHash        string
	role                UserRole
	passwordInitialized bool
	createdAt           time.Time
	updatedAt           time.Time
	deleted             bool
}

// NewUser creates a user with a provisional password hash. The password
// is considered uninitialized until InitializePassword is called.
func NewUser(username, email, firstName, firstNameRuby, lastName, lastNameRuby, passwordHash string, role UserRole) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateNames(firstName, firstNameRuby, lastName, lastNameRuby); err != nil {
		return nil, err
	}
	if err := validatePasswordHash(passwordHash); err != nil {
		return nil, err
	}
	if _, err := RoleFromCode(role.Code()); err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		id:                  uuid.NewString(),
		username:            username,
		email:               email,
		firstName:           firstName,
		firstNameRuby:       firstNameRuby,
		lastName:            lastName,
		lastNameRuby:        lastNameRuby,
		passwordHash:        passwordHash,
		role:                role,
		passwordInitialized: false,
		createdAt:           now,
		updatedAt:           now,
		deleted:             false,
	}, nil
}

// ReconstructUser rehydrates a user from storage.
func ReconstructUser(id, username, email, firstName, firstNameRuby, lastName, lastNameRuby, passwordHash string, role UserRole, passwordInitialized bool, createdAt, updatedAt time.Time, deleted bool) (*User, error) {
	if id == "" {
		return nil, NewInvalidArgument("id is required")
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateNames(firstName, firstNameRuby, lastName, lastNameRuby); err != nil {
		return nil, err
	}
	if err := validatePasswordHash(passwordHash); err != nil {
		return nil, err
	}
	return &User{
		id:                  id,
		username:            username,
		email:               email,
		firstName:           firstName,
		firstNameRuby:       firstNameRuby,
		lastName:            lastName,
		lastNameRuby:        lastNameRuby,
		passwordHash:        passwordHash,
		role:                role,
		passwordInitialized: passwordInitialized,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		deleted:             deleted,
	}, nil
}

func validateUsername(username string) error {
	if username == "" {
		return NewInvalidArgument("username must not be empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return NewInvalidArgument("username must be at most 50 characters long")
	}
	return nil
}

func validateNames(names ...string) error {
	for _, n := range names {
		if utf8.RuneCountInString(n) > maxNameLen {
			return NewInvalidArgument("name must be at most 50 characters long")
		}
	}
	return nil
}

func validatePasswordHash(hash string) error {
	if hash == "" {
		return NewInvalidArgument("password hash must not be empty")
	}
	if len(hash) != bcryptHashLength {
		return NewInvalidArgument("password hash must be a 60-character bcrypt digest")
	}
	return nil
}

func (u *User) ID() string                { return u.id }
func (u *User) Username() string          { return u.username }
func (u *User) Email() string             { return u.email }
func (u *User) FirstName() string         { return u.firstName }
func (u *User) FirstNameRuby() string     { return u.firstNameRuby }
func (u *User) LastName() string          { return u.lastName }
func (u *User) LastNameRuby() string      { return u.lastNameRuby }
func (u *User) PasswordHash() string      { return u.passwordHash }
func (u *User) Role() UserRole            { return u.role }
func (u *User) PasswordInitialized() bool { return u.passwordInitialized }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }
func (u *User) Deleted() bool             { return u.deleted }

func (u *User) IsAdmin() bool   { return u.role.HasAdminPrivilege() }
func (u *User) IsManager() bool { return u.role.HasManagerPrivilege() }

// UpdateProfile replaces the name fields.
func (u *User) UpdateProfile(firstName, firstNameRuby, lastName, lastNameRuby string) error {
	if u.deleted {
		return NewInvalidState("user is deleted")
	}
	if err := validateNames(firstName, firstNameRuby, lastName, lastNameRuby); err != nil {
		return err
	}
	u.firstName = firstName
	u.firstNameRuby = firstNameRuby
	u.lastName = lastName
	u.lastNameRuby = lastNameRuby
	u.touch()
	return nil
}

// InitializePassword sets the first self-chosen password. Allowed once;
// afterwards ChangePassword is the only way to rotate it.
func (u *User) InitializePassword(newHash string) error {
	if u.deleted {
		return NewInvalidState("user is deleted")
	}
	if u.passwordInitialized {
		return NewInvalidState("password is already initialized")
	}
	if err := validatePasswordHash(newHash); err != nil {
		return err
	}
	u.passwordHash = newHash
	u.passwordInitialized = true
	u.touch()
	return nil
}

func (u *User) ChangePassword(newHash string) error {
	if u.deleted {
		return NewInvalidState("user is deleted")
	}
	if err := validatePasswordHash(newHash); err != nil {
		return err
	}
	u.passwordHash = newHash
	u.passwordInitialized = true
	u.touch()
	return nil
}

func (u *User) ChangeRole(role UserRole) error {
	if u.deleted {
		return NewInvalidState("user is deleted")
	}
	if _, err := RoleFromCode(role.Code()); err != nil {
		return err
	}
	u.role = role
	u.touch()
	return nil
}

// Delete flips the logical-delete flag. One-way.
func (u *User) Delete() error {
	if u.deleted {
		return NewInvalidState("user is already deleted")
	}
	u.deleted = true
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = time.Now()
}

package guest

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if _, err := mail.ParseAddress(value); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) Value() string {
	return e.value
}

type Credentials struct {
	email    Email
	password string
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	if password == "" {
		return Credentials{}, ErrEmptyPassword
	}
	return Credentials{email: e, password: password}, nil
}

func (c Credentials) Email() Email     { return c.email }
func (c Credentials) Password() string { return c.password }

type Guest struct {
	id        uuid.UUID
	email     Email
	name      string
	role      Role
	isActive  bool
	createdAt time.Time
}

func NewGuest(email Email, name string, role Role, now time.Time) *Guest {
	return &Guest{
		id:        uuid.New(),
		email:     email,
		name:      name,
		role:      role,
		isActive:  true,
		createdAt: now,
	}
}

func ReconstructGuest(id uuid.UUID, email Email, name string, role Role, isActive bool, createdAt time.Time) *Guest {
	return &Guest{
		id:        id,
		email:     email,
		name:      name,
		role:      role,
		isActive:  isActive,
		createdAt: createdAt,
	}
}

func (g *Guest) ID() uuid.UUID        { return g.id }
func (g *Guest) Email() Email         { return g.email }
func (g *Guest) Name() string         { return g.name }
func (g *Guest) Role() Role           { return g.role }
func (g *Guest) IsActive() bool       { return g.isActive }
func (g *Guest) CreatedAt() time.Time { return g.createdAt }

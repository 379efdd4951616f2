package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Identity is the authenticated session as the remote service issued it.
// SessionID is the remote userId; Token may be empty until a token-based
// operation has one to use.
type Identity struct {
	SessionID string `json:"userId"`
	Token     string `json:"token,omitempty"`
}

func (i Identity) HasToken() bool {
	return i.Token != ""
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ProfileRecord is the remote user profile. It is always replaced as a whole.
type ProfileRecord struct {
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Mobile  FlexString `json:"mobile"`
	Gender  Gender     `json:"gender"`
	DOB     Date       `json:"dob"`
	Address string     `json:"address"`
	City    string     `json:"city"`
	State   string     `json:"state"`
	Country string     `json:"country"`
	Pincode FlexString `json:"pincode"`
	Photo   string     `json:"photo,omitempty"`
}

// ProfileFields lists the names accepted by SetField, in display order.
var ProfileFields = []string{
	"name", "email", "mobile", "gender", "dob",
	"address", "city", "state", "country", "pincode",
}

// SetField assigns one editable field by its wire name.
func (p *ProfileRecord) SetField(name, value string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name":
		p.Name = value
	case "email":
		p.Email = value
	case "mobile":
		p.Mobile = FlexString(value)
	case "gender":
		g := Gender(strings.ToLower(value))
		if !g.Valid() {
			return NewError(KindInvalidField, "set_field", fmt.Sprintf("gender must be one of male, female, other (got %q)", value), nil)
		}
		p.Gender = g
	case "dob":
		d, err := ParseDate(value)
		if err != nil {
			return NewError(KindInvalidField, "set_field", "dob must be YYYY-MM-DD", err)
		}
		p.DOB = d
	case "address":
		p.Address = value
	case "city":
		p.City = value
	case "state":
		p.State = value
	case "country":
		p.Country = value
	case "pincode":
		p.Pincode = FlexString(value)
	default:
		return NewError(KindInvalidField, "set_field", fmt.Sprintf("unknown profile field %q", name), nil)
	}
	return nil
}

// Field returns the display value of one field by its wire name.
func (p ProfileRecord) Field(name string) string {
	switch name {
	case "name":
		return p.Name
	case "email":
		return p.Email
	case "mobile":
		return string(p.Mobile)
	case "gender":
		return string(p.Gender)
	case "dob":
		return p.DOB.String()
	case "address":
		return p.Address
	case "city":
		return p.City
	case "state":
		return p.State
	case "country":
		return p.Country
	case "pincode":
		return string(p.Pincode)
	case "photo":
		return p.Photo
	}
	return ""
}

// --- Remote service side (mock API) ---

// Account is the server-side row behind a ProfileRecord.
type Account struct {
	ID           string
	PasswordHash string
	Profile      ProfileRecord
	UpdatedAt    time.Time
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	UpdateProfile(ctx context.Context, id string, profile ProfileRecord) (*Account, error)
	UpdatePhoto(ctx context.Context, id, photoURL string) (*Account, error)
}

type contextKey string

// AccountIDContextKey carries the token subject on authenticated mock API requests.
const AccountIDContextKey contextKey = "account_id"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

package model

import (
	"fmt"
	"strings"
	"time"
)

// PlayerID uniquely identifies a player in the directory
type PlayerID int64

// Player is a club member registered in the directory
type Player struct {
	ID           PlayerID   `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	BirthDate    Date       `json:"birth_date"`
	SkillLevel   SkillLevel `json:"skill_level"`
	RegisteredAt time.Time  `json:"registered_at"`
	Notes        string     `json:"notes,omitempty"`
	Active       bool       `json:"active"`
}

// FullName returns the first and last name joined by a space
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PlayerForm is the payload used to create a player.
// The directory assigns ID, RegisteredAt and Active itself.
type PlayerForm struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	BirthDate  Date       `json:"birth_date"`
	SkillLevel SkillLevel `json:"skill_level"`
	Notes      string     `json:"notes,omitempty"`
}

// Validate checks the fields every player must carry
func (f PlayerForm) Validate() error {
	switch {
	case strings.TrimSpace(f.FirstName) == "":
		return fmt.Errorf("%w: first name is required", ErrInvalidPlayer)
	case strings.TrimSpace(f.LastName) == "":
		return fmt.Errorf("%w: last name is required", ErrInvalidPlayer)
	case strings.TrimSpace(f.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidPlayer)
	case f.BirthDate.IsZero():
		return fmt.Errorf("%w: birth date is required", ErrInvalidPlayer)
	case !f.SkillLevel.Valid():
		return fmt.Errorf("%w: unknown skill level %q", ErrInvalidPlayer, f.SkillLevel)
	}
	return nil
}

// NewPlayer builds a freshly registered, active player from a form
func NewPlayer(id PlayerID, form PlayerForm, registeredAt time.Time) Player {
	return Player{
		ID:           id,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Phone:        form.Phone,
		BirthDate:    form.BirthDate,
		SkillLevel:   form.SkillLevel,
		RegisteredAt: registeredAt,
		Notes:        form.Notes,
		Active:       true,
	}
}

// PlayerPatch is a partial update. Nil fields are left untouched.
type PlayerPatch struct {
	FirstName  *string     `json:"first_name,omitempty"`
	LastName   *string     `json:"last_name,omitempty"`
	Email      *string     `json:"email,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	BirthDate  *Date       `json:"birth_date,omitempty"`
	SkillLevel *SkillLevel `json:"skill_level,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	Active     *bool       `json:"active,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p PlayerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.BirthDate == nil && p.SkillLevel == nil && p.Notes == nil && p.Active == nil
}

// Validate rejects patches that would leave a required field blank
func (p PlayerPatch) Validate() error {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return fmt.Errorf("%w: first name cannot be blank", ErrInvalidPlayer)
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return fmt.Errorf("%w: last name cannot be blank", ErrInvalidPlayer)
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return fmt.Errorf("%w: email cannot be blank", ErrInvalidPlayer)
	}
	if p.BirthDate != nil && p.BirthDate.IsZero() {
		return fmt.Errorf("%w: birth date cannot be blank", ErrInvalidPlayer)
	}
	if p.SkillLevel != nil && !p.SkillLevel.Valid() {
		return fmt.Errorf("%w: unknown skill level %q", ErrInvalidPlayer, *p.SkillLevel)
	}
	return nil
}

// Apply returns a copy of the player with the patch merged in
func (p PlayerPatch) Apply(player Player) Player {
	if p.FirstName != nil {
		player.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		player.LastName = *p.LastName
	}
	if p.Email != nil {
		player.Email = *p.Email
	}
	if p.Phone != nil {
		player.Phone = *p.Phone
	}
	if p.BirthDate != nil {
		player.BirthDate = *p.BirthDate
	}
	if p.SkillLevel != nil {
		player.SkillLevel = *p.SkillLevel
	}
	if p.Notes != nil {
		player.Notes = *p.Notes
	}
	if p.Active != nil {
		player.Active = *p.Active
	}
	return player
}

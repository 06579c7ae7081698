package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Skill is a capability a staff member can perform.
type Skill string

const (
	SkillBath  Skill = "bath"
	SkillGroom Skill = "groom"
)

// ParseSkill accepts the canonical tags and the legacy portuguese ones.
func ParseSkill(s string) (Skill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bath", "banho":
		return SkillBath, nil
	case "groom", "tosa":
		return SkillGroom, nil
	default:
		return "", fmt.Errorf("unknown skill %q", s)
	}
}

// SkillSet is the ordered set of skills of a staff member.
type SkillSet []Skill

// Has reports whether the set can perform the given skill. Groom implies bath.
func (s SkillSet) Has(skill Skill) bool {
	for _, k := range s {
		if k == skill {
			return true
		}
		if skill == SkillBath && k == SkillGroom {
			return true
		}
	}
	return false
}

// Scan reads a postgres text[] column.
func (s *SkillSet) Scan(src interface{}) error {
	var raw pq.StringArray
	if err := raw.Scan(src); err != nil {
		return fmt.Errorf("scan skills: %w", err)
	}
	set := make(SkillSet, 0, len(raw))
	for _, tag := range raw {
		skill, err := ParseSkill(tag)
		if err != nil {
			return err
		}
		set = append(set, skill)
	}
	*s = set
	return nil
}

// Value writes the set as a postgres text[].
func (s SkillSet) Value() (driver.Value, error) {
	raw := make(pq.StringArray, len(s))
	for i, k := range s {
		raw[i] = string(k)
	}
	return raw.Value()
}

// StaffMember is a professional that can be assigned to bookings.
type StaffMember struct {
	Base
	TenantID string   `db:"tenant_id" json:"tenant_id"`
	Name     string   `db:"name" json:"name"`
	Skills   SkillSet `db:"skills" json:"skills"`
	Active   bool     `db:"active" json:"active"`
}

// CanPerform reports whether the member is qualified for the service.
func (m *StaffMember) CanPerform(service ServiceType) bool {
	switch service {
	case ServiceBath:
		return m.Skills.Has(SkillBath)
	case ServiceGroom:
		return m.Skills.Has(SkillGroom)
	default:
		return false
	}
}

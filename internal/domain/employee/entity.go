package employee

import (
	"time"
)

// Role is the authorization role supplied by the identity collaborator.
type Role string

const (
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// EmploymentType bands employees for entitlement rule matching.
type EmploymentType string

const (
	EmploymentPermanent EmploymentType = "Permanent"
	EmploymentProbation EmploymentType = "Probation"
	EmploymentIntern    EmploymentType = "Intern"
)

type Employee struct {
	ID             string
	UserID         string
	Name           string
	Email          string
	Role           Role
	EmploymentType EmploymentType
	JoinDate       *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// YearsOfService returns full years since the join date, as of now. Zero when
// the join date is unknown.
func (e Employee) YearsOfService(now time.Time) int {
	if e.JoinDate == nil {
		return 0
	}
	years := now.Year() - e.JoinDate.Year()
	if years < 0 {
		return 0
	}
	return years
}

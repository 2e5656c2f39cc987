package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrManagerRoleRequired   = errors.New("manager role required for this action")
	ErrNotResourceOwner      = errors.New("not authorized to act on this resource")
	ErrEmployeeInactive      = errors.New("employee is not active")
	ErrMissingEmploymentType = errors.New("employee has no employment type")
)

// Package scope defines the typed access boundary derived from an
// authenticated principal. Every service operation that touches
// school-scoped data takes a Scope argument and applies it as an explicit
// school_id filter; there is no ambient tenant context.
package scope

import "gorm.io/gorm"

// Scope is either unrestricted (super_admin) or bound to one school
// (school_admin). The zero value is bound to school 0, which matches no
// rows; callers must construct scopes through Unrestricted or BoundToSchool.
type Scope struct {
	schoolID     uint
	unrestricted bool
}

// Unrestricted returns the super-admin scope.
func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

// BoundToSchool returns a scope limited to one school.
func BoundToSchool(schoolID uint) Scope {
	return Scope{schoolID: schoolID}
}

// IsUnrestricted reports whether the scope covers all schools.
func (s Scope) IsUnrestricted() bool {
	return s.unrestricted
}

// SchoolID returns the bound school id and whether the scope is bound.
func (s Scope) SchoolID() (uint, bool) {
	if s.unrestricted {
		return 0, false
	}
	return s.schoolID, true
}

// MustSchoolID returns the bound school id; 0 when unrestricted. Use only
// after the caller has established the scope is bound.
func (s Scope) MustSchoolID() uint {
	return s.schoolID
}

// Where applies the scope to a query on a table carrying a school_id column.
// Unrestricted scopes pass the query through unchanged.
func (s Scope) Where(db *gorm.DB) *gorm.DB {
	if s.unrestricted {
		return db
	}
	return db.Where("school_id = ?", s.schoolID)
}

// WhereColumn applies the scope against a qualified column, for joined
// queries (e.g. "students.school_id").
func (s Scope) WhereColumn(db *gorm.DB, column string) *gorm.DB {
	if s.unrestricted {
		return db
	}
	return db.Where(column+" = ?", s.schoolID)
}

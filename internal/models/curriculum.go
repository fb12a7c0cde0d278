package models

import "gorm.io/gorm"

type SectionKind string

const (
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
	SectionLanguages  SectionKind = "languages"
	SectionProjects   SectionKind = "projects"
	SectionFreeText   SectionKind = "freetext"
)

// Curriculum is a user's CV. Sections are kept in Position order; the editor
// reorders them by rewriting positions.
type Curriculum struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex"`
	Title    string `gorm:"size:255"`
	Summary  string
	Sections []CurriculumSection `gorm:"foreignKey:CurriculumID"`
}

// CurriculumSection is one draggable block of a CV.
type CurriculumSection struct {
	gorm.Model
	CurriculumID uint        `gorm:"not null;index"`
	Kind         SectionKind `gorm:"type:varchar(30);not null"`
	Title        string      `gorm:"size:255"`
	Body         string
	Position     int `gorm:"not null;default:0"`
}

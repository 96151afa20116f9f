package models

// SemesterType определяет половину учебного года
type SemesterType string

const (
	SemesterAutumn SemesterType = "autumn"
	SemesterSpring SemesterType = "spring"
)

// Curriculum представляет учебный план направления подготовки.
type Curriculum struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Name             string `json:"name" gorm:"size:100;not null"`
	AcademicYear     string `json:"academicYear" gorm:"size:9;not null"` // "2023/2024"
	DurationYears    int    `json:"durationYears" gorm:"not null"`
	SpecializationID uint   `json:"specializationId" gorm:"not null"`
	EducationFormID  uint   `json:"educationFormId" gorm:"not null"`

	Specialization Specialization `json:"specialization" gorm:"foreignKey:SpecializationID"`
	EducationForm  EducationForm  `json:"educationForm" gorm:"foreignKey:EducationFormID"`
}

// Semester представляет семестр учебного года
type Semester struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	AcademicYear string       `json:"academicYear" gorm:"size:9;not null"`
	Type         SemesterType `json:"type" gorm:"size:10;not null"`
}

// CurriculumSubject привязывает дисциплину к семестру учебного плана.
// Тройка (план, дисциплина, семестр) уникальна: одна дисциплина не может
// встречаться в семестре плана дважды. Занятия ссылаются на привязку, а не
// на дисциплину напрямую — через нее занятие узнает свой план и семестр.
type CurriculumSubject struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	CurriculumID uint `json:"curriculumId" gorm:"not null;uniqueIndex:idx_curriculum_subject_semester"`
	SubjectID    uint `json:"subjectId" gorm:"not null;uniqueIndex:idx_curriculum_subject_semester"`
	SemesterID   uint `json:"semesterId" gorm:"not null;uniqueIndex:idx_curriculum_subject_semester"`
	Hours        int  `json:"hours" gorm:"not null"`

	Curriculum Curriculum `json:"curriculum" gorm:"foreignKey:CurriculumID"`
	Subject    Subject    `json:"subject" gorm:"foreignKey:SubjectID"`
	Semester   Semester   `json:"semester" gorm:"foreignKey:SemesterID"`
}

package models

// Справочники: плоские сущности с числовым ключом и именем, на которые
// ссылается остальная модель. Меняются редко, админкой.

// Building представляет учебный корпус
type Building struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// Classroom представляет аудиторию в корпусе
type Classroom struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"size:20;not null"`
	BuildingID uint   `json:"buildingId" gorm:"not null"`

	Building Building `json:"building" gorm:"foreignKey:BuildingID"`
}

// Position представляет должность сотрудника
type Position struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// Role определяет уровень доступа сотрудника
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:20;not null;uniqueIndex"`
}

// Имена ролей. Студенты ролей не имеют: их доступ определяется видом
// учетной записи.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Subject представляет дисциплину
type Subject struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`
}

// ClassType представляет вид занятия: лекция, практика, лабораторная
type ClassType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// EducationForm представляет форму обучения: очная, заочная
type EducationForm struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

// Department представляет кафедру/факультет
type Department struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`
}

// Specialization представляет направление подготовки
type Specialization struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`
	Code string `json:"code" gorm:"size:20;not null"`
}

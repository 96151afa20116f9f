package services

import (
	"time"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

// Слот занятия для предзаполнения журнала: пара длится 90 минут, зачет
// посещения требует присутствия не меньше этого времени внутри слота.
const (
	ClassSlotDuration    = 90 * time.Minute
	minAttendanceMinutes = 90
)

// DetermineStatus восстанавливает предполагаемую отметку студента по записям
// проходных: входы спариваются с выходами по порядку, интервалы обрезаются
// границами слота занятия, минуты суммируются. Выход без пары считается
// продлившимся до конца слота.
func DetermineStatus(records []models.ControlPointRecord, classStart, classEnd time.Time) models.AttendanceStatus {
	if len(records) == 0 {
		return models.StatusAbsent
	}

	var entries, exits []time.Time
	for _, rec := range records {
		switch rec.Direction {
		case models.DirectionIn:
			entries = append(entries, rec.Datetime)
		case models.DirectionOut:
			exits = append(exits, rec.Datetime)
		}
	}
	if len(entries) == 0 {
		return models.StatusAbsent
	}

	var total time.Duration
	for i, entry := range entries {
		exit := classEnd
		if i < len(exits) {
			exit = exits[i]
		}

		if entry.Before(classStart) {
			entry = classStart
		}
		if exit.After(classEnd) {
			exit = classEnd
		}
		if entry.Before(exit) {
			total += exit.Sub(entry)
		}
	}

	if total >= minAttendanceMinutes*time.Minute {
		return models.StatusPresent
	}
	return models.StatusAbsent
}

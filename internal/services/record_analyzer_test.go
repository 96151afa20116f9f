package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cr1stal-7/Attendance-control-system-sub000/internal/models"
)

func passRecord(at time.Time, dir models.Direction) models.ControlPointRecord {
	return models.ControlPointRecord{Datetime: at, Direction: dir, StudentID: 1, ControlPointID: 1}
}

func TestDetermineStatus(t *testing.T) {
	classStart := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	classEnd := classStart.Add(ClassSlotDuration)

	t.Run("нет записей — отсутствие", func(t *testing.T) {
		assert.Equal(t, models.StatusAbsent, DetermineStatus(nil, classStart, classEnd))
	})

	t.Run("вход до начала без выхода — присутствие", func(t *testing.T) {
		records := []models.ControlPointRecord{
			passRecord(classStart.Add(-30*time.Minute), models.DirectionIn),
		}
		assert.Equal(t, models.StatusPresent, DetermineStatus(records, classStart, classEnd))
	})

	t.Run("ушел в середине занятия — отсутствие", func(t *testing.T) {
		records := []models.ControlPointRecord{
			passRecord(classStart, models.DirectionIn),
			passRecord(classStart.Add(40*time.Minute), models.DirectionOut),
		}
		assert.Equal(t, models.StatusAbsent, DetermineStatus(records, classStart, classEnd))
	})

	t.Run("вышел и вернулся, суммарно достаточно", func(t *testing.T) {
		records := []models.ControlPointRecord{
			passRecord(classStart.Add(-10*time.Minute), models.DirectionIn),
			passRecord(classStart.Add(50*time.Minute), models.DirectionOut),
			passRecord(classStart.Add(50*time.Minute), models.DirectionIn),
		}
		// 50 минут + 40 минут до конца слота = 90
		assert.Equal(t, models.StatusPresent, DetermineStatus(records, classStart, classEnd))
	})

	t.Run("только выходы — отсутствие", func(t *testing.T) {
		records := []models.ControlPointRecord{
			passRecord(classStart.Add(5*time.Minute), models.DirectionOut),
		}
		assert.Equal(t, models.StatusAbsent, DetermineStatus(records, classStart, classEnd))
	})

	t.Run("вход после конца занятия — отсутствие", func(t *testing.T) {
		records := []models.ControlPointRecord{
			passRecord(classEnd.Add(5*time.Minute), models.DirectionIn),
		}
		assert.Equal(t, models.StatusAbsent, DetermineStatus(records, classStart, classEnd))
	})
}

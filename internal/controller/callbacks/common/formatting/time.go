package formatting

import "github.com/TeamSamavisa/solara-admin-bot/internal/model"

// WeekdayName возвращает название дня недели на русском
// по английскому ключу каталога
func WeekdayName(weekday string) string {
	names := map[string]string{
		model.WeekdayMonday:    "Понедельник",
		model.WeekdayTuesday:   "Вторник",
		model.WeekdayWednesday: "Среда",
		model.WeekdayThursday:  "Четверг",
		model.WeekdayFriday:    "Пятница",
		model.WeekdaySaturday:  "Суббота",
	}
	if name, ok := names[weekday]; ok {
		return name
	}
	return weekday
}

// WeekdayShort возвращает краткое название дня недели
func WeekdayShort(weekday string) string {
	names := map[string]string{
		model.WeekdayMonday:    "Пн",
		model.WeekdayTuesday:   "Вт",
		model.WeekdayWednesday: "Ср",
		model.WeekdayThursday:  "Чт",
		model.WeekdayFriday:    "Пт",
		model.WeekdaySaturday:  "Сб",
	}
	if name, ok := names[weekday]; ok {
		return name
	}
	return "?"
}

// SlotLabel подпись кнопки слота: "08:00-10:00"
func SlotLabel(s *model.Schedule) string {
	return model.ClipTime(s.StartTime) + "-" + model.ClipTime(s.EndTime)
}

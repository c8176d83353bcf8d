package model

// Weekday ключи дней недели в том виде, в котором их отдаёт бэкенд
const (
	WeekdayMonday    = "monday"
	WeekdayTuesday   = "tuesday"
	WeekdayWednesday = "wednesday"
	WeekdayThursday  = "thursday"
	WeekdayFriday    = "friday"
	WeekdaySaturday  = "saturday"
	WeekdaySunday    = "sunday"
)

// Schedule учебный слот расписания: день недели + интервал времени.
// Слот неизменяем со стороны клиента, правки идут через бэкенд
type Schedule struct {
	ID        int64  `json:"id"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"` // "HH:MM:SS"
	EndTime   string `json:"end_time"`
	ShiftID   *int64 `json:"shift_id,omitempty"`
}

// SlotKey каноничный ключ строки сетки: "HH:MM - HH:MM".
// Два слота с одинаковым временем попадают в одну строку,
// даже если это разные дни и разные id — сравнение по значению
func (s *Schedule) SlotKey() string {
	return SlotKey(s.StartTime, s.EndTime)
}

// SlotKey строит ключ временного слота из пары "HH:MM:SS", отбрасывая секунды
func SlotKey(start, end string) string {
	return ClipTime(start) + " - " + ClipTime(end)
}

// ClipTime обрезает "HH:MM:SS" до "HH:MM"
func ClipTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

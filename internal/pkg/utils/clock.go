package utils

import "time"

const bangkokZone = "Asia/Bangkok"

// Clock - источник текущего времени, подменяется в тестах
type Clock func() time.Time

// LoadLocation загружает часовой пояс; если tzdata недоступна, для Бангкока
// используется фиксированное смещение UTC+7
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = bangkokZone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if name == bangkokZone {
		return time.FixedZone("ICT", 7*60*60)
	}
	return time.UTC
}

// NewClock возвращает часы в заданном часовом поясе
func NewClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// FixedClock - часы, всегда возвращающие t
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Дни недели в каноническом порядке (воскресенье первое)
const (
	Sunday    = "Sunday"
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
)

// Символьные группы дней, раскрываются при записи и не сохраняются
const (
	DayGroupEveryday              = "Everyday"
	DayGroupExceptHolidays        = "Except Holidays"
	dayGroupExceptHolidaysCompact = "ExceptHolidays"
)

var CanonicalWeek = []string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var workWeek = []string{Monday, Tuesday, Wednesday, Thursday, Friday}

var (
	ErrUnknownDay       = errors.New("invalid day_of_week")
	ErrInvalidClock     = errors.New("invalid time format")
	ErrOpeningNotBefore = errors.New("opening_time must be earlier than closing_time")
	ErrHoursOverlap     = errors.New("operating hours overlap")
)

// OperatingHours - строка operating_hours
type OperatingHours struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	PlaceID     int64  `json:"place_id,omitempty" db:"place_id"`
	DayOfWeek   string `json:"day_of_week" db:"day_of_week"`
	OpeningTime string `json:"opening_time" db:"opening_time"`
	ClosingTime string `json:"closing_time" db:"closing_time"`
}

// HoursEntry - входная запись часов работы, day_of_week может быть группой
type HoursEntry struct {
	DayOfWeek   string `json:"day_of_week" validate:"required"`
	OpeningTime string `json:"opening_time" validate:"required,hhmm"`
	ClosingTime string `json:"closing_time" validate:"required,hhmm"`
}

// ClockTime - время суток в секундах от полуночи
type ClockTime int

// ParseClock разбирает HH:MM или HH:MM:SS
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	limits := []int{23, 59, 59}
	total := 0
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		switch i {
		case 0:
			total += n * 3600
		case 1:
			total += n * 60
		default:
			total += n
		}
	}
	return ClockTime(total), nil
}

// ClockOf - время суток из time.Time
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// Add сдвигает время по кругу суток
func (c ClockTime) Add(d time.Duration) ClockTime {
	const day = 24 * 3600
	v := (int(c) + int(d/time.Second)) % day
	if v < 0 {
		v += day
	}
	return ClockTime(v)
}

// String - формат HH:MM:SS для хранения в колонках TIME
func (c ClockTime) String() string {
	v := int(c)
	return fmt.Sprintf("%02d:%02d:%02d", v/3600, (v%3600)/60, v%60)
}

// Short - формат HH:MM для отображения
func (c ClockTime) Short() string {
	v := int(c)
	return fmt.Sprintf("%02d:%02d", v/3600, (v%3600)/60)
}

// DailyHours - нормализованное окно работы для конкретного дня
type DailyHours struct {
	DayOfWeek string
	Opening   ClockTime
	Closing   ClockTime
}

// Overlaps - окна [open, close) одного дня пересекаются
func (h DailyHours) Overlaps(o DailyHours) bool {
	return h.DayOfWeek == o.DayOfWeek && h.Opening < o.Closing && o.Opening < h.Closing
}

// IsWeekday - конкретный день недели
func IsWeekday(day string) bool {
	for _, d := range CanonicalWeek {
		if d == day {
			return true
		}
	}
	return false
}

// WeekdayOf - название дня недели в формате day_of_week
func WeekdayOf(t time.Time) string {
	return CanonicalWeek[int(t.Weekday())]
}

// ExpandDayGroup раскрывает группу дней в конкретные дни
func ExpandDayGroup(day string) ([]string, error) {
	day = strings.TrimSpace(day)
	switch day {
	case DayGroupEveryday:
		return append([]string(nil), CanonicalWeek...), nil
	case DayGroupExceptHolidays, dayGroupExceptHolidaysCompact:
		return append([]string(nil), workWeek...), nil
	}
	if IsWeekday(day) {
		return []string{day}, nil
	}
	return nil, fmt.Errorf("%w: %q. Must be one of: %s, %s, %s",
		ErrUnknownDay, day, strings.Join(CanonicalWeek, ", "), DayGroupEveryday, DayGroupExceptHolidays)
}

// ValidateHours раскрывает группы дней и проверяет формат, порядок и пересечения.
// Возвращает по одной записи на (день, окно) в порядке входа.
func ValidateHours(entries []HoursEntry) ([]DailyHours, error) {
	result := make([]DailyHours, 0, len(entries))
	for _, e := range entries {
		days, err := ExpandDayGroup(e.DayOfWeek)
		if err != nil {
			return nil, err
		}
		opening, err := ParseClock(e.OpeningTime)
		if err != nil {
			return nil, err
		}
		closing, err := ParseClock(e.ClosingTime)
		if err != nil {
			return nil, err
		}
		if opening >= closing {
			return nil, fmt.Errorf("%w (%s: %s-%s)", ErrOpeningNotBefore, e.DayOfWeek, e.OpeningTime, e.ClosingTime)
		}
		for _, d := range days {
			h := DailyHours{DayOfWeek: d, Opening: opening, Closing: closing}
			if err := CheckOverlap(h, result); err != nil {
				return nil, err
			}
			result = append(result, h)
		}
	}
	return result, nil
}

// CheckOverlap проверяет новое окно против уже существующих
func CheckOverlap(h DailyHours, existing []DailyHours) error {
	for _, o := range existing {
		if h.Overlaps(o) {
			return fmt.Errorf("%w: %s %s-%s and %s-%s", ErrHoursOverlap,
				h.DayOfWeek, o.Opening.Short(), o.Closing.Short(), h.Opening.Short(), h.Closing.Short())
		}
	}
	return nil
}

// ToDailyHours - строка operating_hours в нормализованный вид
func (o OperatingHours) ToDailyHours() (DailyHours, error) {
	opening, err := ParseClock(o.OpeningTime)
	if err != nil {
		return DailyHours{}, err
	}
	closing, err := ParseClock(o.ClosingTime)
	if err != nil {
		return DailyHours{}, err
	}
	return DailyHours{DayOfWeek: o.DayOfWeek, Opening: opening, Closing: closing}, nil
}

// ClockWindow - окно [from, to] от t длиной d; wraps == true если окно переходит через полночь
func ClockWindow(t time.Time, d time.Duration) (from, to ClockTime, wraps bool) {
	from = ClockOf(t)
	to = from.Add(d)
	return from, to, to < from
}

package domain

import "time"

// Названия сезонов (таблица seasons)
const (
	SeasonSummer    = "ฤดูร้อน"
	SeasonRainy     = "ฤดูฝน"
	SeasonWinter    = "ฤดูหนาว"
	SeasonYearRound = "ตลอดทั้งปี"
)

type Season struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// SeasonForMonth - сезон для месяца: март-май жаркий, июнь-август дождливый,
// сентябрь-ноябрь холодный, остальное круглый год
func SeasonForMonth(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return SeasonSummer
	case m >= time.June && m <= time.August:
		return SeasonRainy
	case m >= time.September && m <= time.November:
		return SeasonWinter
	default:
		return SeasonYearRound
	}
}

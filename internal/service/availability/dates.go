package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
)

var weekdayLabels = [...]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

// BookableDates возвращает даты, доступные для бронирования: сегодня и следующие windowDays-1 дней
func BookableDates(now time.Time, windowDays int) []domain.BookableDate {
	today := startOfDay(now)

	dates := make([]domain.BookableDate, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		d := today.AddDate(0, 0, i)
		label := fmt.Sprintf("%02d/%02d (%s)", int(d.Month()), d.Day(), weekdayLabels[d.Weekday()])
		if i == 0 {
			label = domain.TodayLabelPrefix + label
		}
		dates = append(dates, domain.BookableDate{
			Value: d.Format(domain.DateFormat),
			Label: label,
			Today: i == 0,
		})
	}
	return dates
}

// IsBookableDate проверяет, что дата попадает в окно бронирования
func IsBookableDate(date string, now time.Time, windowDays int) bool {
	for _, d := range BookableDates(now, windowDays) {
		if d.Value == date {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

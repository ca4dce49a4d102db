package timecalc

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	DateLayout    = "2006-01-02"
	minutesPerDay = 24 * 60
)

var (
	ErrInvalidTimeFormat   = errors.New("некорректный формат времени, ожидается ЧЧ:ММ")
	ErrInvalidDate         = errors.New("некорректный формат даты, ожидается ГГГГ-ММ-ДД")
	ErrNonPositiveDuration = errors.New("время окончания должно быть позже времени начала")
)

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// TimeOfDay - время суток с точностью до минуты
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	match := timeOfDayRe.FindStringSubmatch(value)
	if match == nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// HoursBetween считает длительность в часах; отрицательная разница - переход через полночь
func HoursBetween(start, end TimeOfDay) float64 {
	diff := end.Minutes() - start.Minutes()
	if diff < 0 {
		diff += minutesPerDay
	}
	return Round2(float64(diff) / 60)
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Interval - полуоткрытый интервал [Start, End) в минутах от начала дня.
// Для ночных смен End может превышать сутки
type Interval struct {
	Start int
	End   int
}

// Span строит интервал; без allowOvernight конец обязан быть строго позже начала
func Span(start, end TimeOfDay, allowOvernight bool) (Interval, error) {
	interval := Interval{Start: start.Minutes(), End: end.Minutes()}
	if interval.End < interval.Start && allowOvernight {
		interval.End += minutesPerDay
	}
	if interval.End <= interval.Start {
		return Interval{}, ErrNonPositiveDuration
	}
	return interval, nil
}

// SpanOf разбирает уже сохраненные значения; ошибочные данные не должны ломать чтение
func SpanOf(start, end string) (Interval, bool) {
	startTod, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, false
	}
	endTod, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, false
	}
	interval := Interval{Start: startTod.Minutes(), End: endTod.Minutes()}
	if interval.End <= interval.Start {
		interval.End += minutesPerDay
	}
	return interval, true
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// ShiftDays переносит интервал в координаты дня, отстоящего на days суток
func (i Interval) ShiftDays(days int) Interval {
	return Interval{Start: i.Start + days*minutesPerDay, End: i.End + days*minutesPerDay}
}

func (i Interval) Hours() float64 {
	return Round2(float64(i.End-i.Start) / 60)
}

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// Today - текущая дата в часовом поясе организации, полночь UTC
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

package templates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"weighbridge-backend/internal/timeutil"
)

// NBSP keeps the line height of a hidden field
const NBSP = "\u00a0"

const (
	periodAM = "ص"
	periodPM = "م"
	unitKg   = "كجم"
	currency = "جنيهاً"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var arabicDigitReplacer = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
	",", "٬", ".", "٫",
)

var westernPrinter = message.NewPrinter(language.English)

// ArabicDigits rewrites western digits and separators as Eastern Arabic ones
func ArabicDigits(s string) string {
	return arabicDigitReplacer.Replace(s)
}

// GroupedNumber formats v with thousands separators and at most three decimals: 4,860
func GroupedNumber(v float64) string {
	return westernPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// PlainNumber formats v without grouping: 4860
func PlainNumber(v float64) string {
	return westernPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3), number.NoSeparator()))
}

// ArabicGrouped is GroupedNumber in Eastern Arabic digits: ٤٬٨٦٠
func ArabicGrouped(v float64) string {
	return ArabicDigits(GroupedNumber(v))
}

// ArabicPlain is PlainNumber in Eastern Arabic digits: ٤٨٦٠
func ArabicPlain(v float64) string {
	return ArabicDigits(PlainNumber(v))
}

// ShortestNumber prints v the way a bare number interpolates into text: 35, 35.5
func ShortestNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Period returns the Arabic AM/PM marker
func Period(t time.Time) string {
	if t.Hour() < 12 {
		return periodAM
	}
	return periodPM
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

// Clock12 is hh:mm:ss with the period marker, Arabic digits: ١٠:٢٩:٠٠ ص
func Clock12(t time.Time) string {
	return ArabicDigits(fmt.Sprintf("%02d:%02d:%02d", hour12(t), t.Minute(), t.Second())) + " " + Period(t)
}

// ShortClock12 is h:mm with the period marker, Arabic digits: ٩:١٤ م
func ShortClock12(t time.Time) string {
	return ArabicDigits(fmt.Sprintf("%d:%02d", hour12(t), t.Minute())) + " " + Period(t)
}

// Clock24 is H:mm on a 24 hour clock, Arabic digits: ٢١:١٤
func Clock24(t time.Time) string {
	return ArabicDigits(fmt.Sprintf("%d:%02d", t.Hour(), t.Minute()))
}

// DayMonthYear is DD/MM/YYYY in western digits
func DayMonthYear(t time.Time) string {
	return t.Format("02/01/2006")
}

// YearMonthDay is YYYY/MM/DD in western digits
func YearMonthDay(t time.Time) string {
	return t.Format("2006/01/02")
}

// LongDate is D MonthName YYYY with the Egyptian month name: ٥ أكتوبر ٢٠٢٥
func LongDate(t time.Time) string {
	return ArabicDigits(strconv.Itoa(t.Day())) + " " + arabicMonths[t.Month()-1] + " " + ArabicDigits(strconv.Itoa(t.Year()))
}

// dateFormat turns a stored ticket date into display text. Empty or unparseable
// dates render as the empty string.
func dateFormat(value string, format func(time.Time) string) string {
	t, ok := timeutil.ParseLocal(value)
	if !ok {
		return ""
	}
	return format(t)
}

// Ready-made date projections used by the layouts

// RLM is the right-to-left mark the Egyptian Arabic locale puts after the day and month
const RLM = "\u200f"

func arabicDayMonthYearClock(t time.Time) string {
	return arabicDayMonthYear(t) + "، " + Clock12(t)
}

func arabicYearMonthDayClock(t time.Time) string {
	return ArabicDigits(YearMonthDay(t)) + " " + Clock12(t)
}

// arabicDayMonthYear is DD/MM/YYYY in Arabic digits with RLM after day and month
func arabicDayMonthYear(t time.Time) string {
	return ArabicDigits(fmt.Sprintf("%02d%s/%02d%s/%d", t.Day(), RLM, int(t.Month()), RLM, t.Year()))
}

func shortClockDashDate(t time.Time) string {
	return ShortClock12(t) + "-" + YearMonthDay(t)
}

func dashDate(t time.Time) string {
	return "- " + YearMonthDay(t)
}

// ListDate is the entry date shown in ticket lists: long Arabic date, or N/A when missing
func ListDate(value string) string {
	if value == "" {
		return "N/A"
	}
	return dateFormat(value, LongDate)
}

// Package validation содержит правила проверки формы бронирования.
// Все правила вычисляются без короткого замыкания, чтобы показать все ошибки сразу.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

var (
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Input данные, которые проверяются при отправке формы
type Input struct {
	Form         domain.BookingForm
	Date         string
	SelectedTime types.TimeString
}

// Validate вычисляет все правила и возвращает результат по каждому
func Validate(in Input) domain.ValidationResult {
	_, peopleOK := ParsePartySize(in.Form.People)

	return domain.ValidationResult{
		domain.RuleName:    strings.TrimSpace(in.Form.Name) != "",
		domain.RulePhone:   IsValidPhone(in.Form.Phone),
		domain.RuleEmail:   IsValidEmail(strings.TrimSpace(in.Form.Email)),
		domain.RulePeople:  peopleOK,
		domain.RuleDate:    isValidDate(in.Date),
		domain.RulePurpose: IsPurposeSelected(in.Form.Purposes),
		domain.RuleTime:    !in.SelectedTime.IsZero(),
		domain.RuleNote:    utf8.RuneCountInString(strings.TrimSpace(in.Form.Note)) <= domain.MaxNoteLength,
	}
}

// IsValidPhone допускает ведущий "+" и 7–15 цифр после удаления пробельных символов
// Дефисы и скобки не удаляются и делают номер некорректным
func IsValidPhone(phone string) bool {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	return phonePattern.MatchString(clean)
}

// IsValidEmail проверяет форму local@domain.tld
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsPurposeSelected требует хотя бы одну цель визита, и все значения должны быть из перечисления
func IsPurposeSelected(purposes []string) bool {
	if len(purposes) == 0 {
		return false
	}
	for _, p := range purposes {
		if !domain.Purpose(strings.TrimSpace(p)).IsValid() {
			return false
		}
	}
	return true
}

// ParsePartySize разбирает количество гостей (целое положительное число)
func ParsePartySize(raw string) (domain.PartySize, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return domain.PartySize(n), true
}

func isValidDate(date string) bool {
	if date == "" {
		return false
	}
	_, err := time.Parse(domain.DateFormat, date)
	return err == nil
}

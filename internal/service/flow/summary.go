package flow

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
)

// Значения подставляются через html/template, поэтому & < > " ' экранируются
var summaryTemplate = template.Must(template.New("summary").Parse(`<dl class="row mb-0">
  <dt class="col-4">Имя</dt><dd class="col-8">{{.Name}}</dd>
  <dt class="col-4">Телефон</dt><dd class="col-8">{{.Phone}}</dd>
  <dt class="col-4">Email</dt><dd class="col-8">{{.Email}}</dd>
  <dt class="col-4">Гостей</dt><dd class="col-8">{{.People}}</dd>
  <dt class="col-4">Дата / время</dt><dd class="col-8">{{.Date}} {{.Time}}</dd>
  <dt class="col-4">Цель визита</dt><dd class="col-8">{{.Purpose}}</dd>
  <dt class="col-4">Комментарий</dt><dd class="col-8">{{.Note}}</dd>
</dl>`))

type summaryData struct {
	Name    string
	Phone   string
	Email   string
	People  int
	Date    string
	Time    string
	Purpose string
	Note    string
}

// renderSummary строит сводку черновика для окна подтверждения
func renderSummary(res *domain.Reservation) (string, error) {
	purposes := make([]string, 0, len(res.Purpose))
	for _, p := range res.Purpose {
		purposes = append(purposes, string(p))
	}

	note := res.Note
	if note == "" {
		note = domain.EmptyNotePlaceholder
	}

	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, summaryData{
		Name:    res.Name,
		Phone:   res.Phone,
		Email:   res.Email,
		People:  int(res.People),
		Date:    res.Date,
		Time:    res.Time.String(),
		Purpose: strings.Join(purposes, ", "),
		Note:    note,
	})
	if err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

func successMessage(res *domain.Reservation) string {
	return fmt.Sprintf("✅ %s, бронирование подтверждено! %s %s (%d чел.)", res.Name, res.Date, res.Time, res.People)
}

const (
	slotNoLongerAvailableMessage = "К сожалению, это время заняли, пока вы проверяли данные. Выберите другое время или дату."
	commitFailedMessage          = "Не удалось сохранить бронирование. Попробуйте подтвердить еще раз."
	dateExpiredMessage           = "Выбранная дата больше недоступна для бронирования. Выберите новую дату."
)

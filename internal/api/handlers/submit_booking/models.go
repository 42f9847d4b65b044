package submit_booking

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-TableReservation/internal/domain"
)

// PeopleValue количество гостей: принимает и число, и строку из select
type PeopleValue string

func (p *PeopleValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PeopleValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("people must be a number or a string: %w", err)
	}
	*p = PeopleValue(n.String())
	return nil
}

// SubmitBookingRequest значения полей формы
type SubmitBookingRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Email   string      `json:"email"`
	People  PeopleValue `json:"people"`
	Purpose []string    `json:"purpose"`
	Note    string      `json:"note"`
}

// ToDomain конвертирует запрос в форму домена
func (r *SubmitBookingRequest) ToDomain() domain.BookingForm {
	return domain.BookingForm{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		People:   string(r.People),
		Purposes: r.Purpose,
		Note:     r.Note,
	}
}

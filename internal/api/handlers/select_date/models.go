package select_date

// SelectDateRequest тело запроса выбора даты
type SelectDateRequest struct {
	Date string `json:"date"`
}

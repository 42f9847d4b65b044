package select_slot

// SelectSlotRequest тело запроса выбора времени
type SelectSlotRequest struct {
	Time string `json:"time"` // HH:MM
}

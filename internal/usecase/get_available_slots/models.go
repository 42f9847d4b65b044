package get_available_slots

import "github.com/m04kA/SMC-TableReservation/pkg/types"

// Request модель запроса на получение слотов
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком слотов на дату
type Response struct {
	Date  string // Дата, на которую запрашивались слоты
	Slots []Slot // Все слоты каталога, включая заполненные
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	Label          string           // Подпись кнопки, у заполненных слотов с пометкой
	Booked         int              // Количество бронирований
	AvailableSpots int              // Количество свободных мест
	TotalSpots     int              // Вместимость слота
	IsFull         bool             // Слот недоступен для выбора
}

// Find возвращает слот по времени начала
func (r *Response) Find(startTime types.TimeString) (Slot, bool) {
	for _, s := range r.Slots {
		if s.StartTime == startTime {
			return s, true
		}
	}
	return Slot{}, false
}

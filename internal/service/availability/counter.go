package availability

import (
	"github.com/m04kA/SMC-TableReservation/internal/domain"
	"github.com/m04kA/SMC-TableReservation/pkg/types"
)

// CountFor считает бронирования с точным совпадением даты и времени
func CountFor(date string, slot types.TimeString, reservations []*domain.Reservation) int {
	count := 0
	for _, res := range reservations {
		if res.Date == date && res.Time == slot {
			count++
		}
	}
	return count
}

// IsFull сообщает, исчерпана ли вместимость слота
func IsFull(count, capacity int) bool {
	return count >= capacity
}

// Index хранит количество бронирований по паре (дата, время)
// Строится за один проход по списку и обновляется инкрементально после каждой записи
type Index struct {
	counts map[domain.SlotKey]int
}

// NewIndex строит индекс по списку бронирований
func NewIndex(reservations []*domain.Reservation) *Index {
	idx := &Index{counts: make(map[domain.SlotKey]int, len(reservations))}
	for _, res := range reservations {
		idx.Add(res)
	}
	return idx
}

// Count возвращает количество бронирований на (дата, время)
func (i *Index) Count(date string, slot types.TimeString) int {
	return i.counts[domain.SlotKey{Date: date, Time: slot}]
}

// Add учитывает новое бронирование
func (i *Index) Add(res *domain.Reservation) {
	i.counts[res.SlotKey()]++
}

// States возвращает состояние каждого слота каталога на дату
func (i *Index) States(date string, catalog []types.TimeString, capacity int) []domain.SlotState {
	states := make([]domain.SlotState, len(catalog))
	for n, slot := range catalog {
		states[n] = domain.SlotState{
			StartTime: slot,
			Booked:    i.Count(date, slot),
			Capacity:  capacity,
		}
	}
	return states
}

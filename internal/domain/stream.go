package domain

// Stream names
const (
	StreamPlaceEvents = "stream:place:events"
)

// Типы событий по объектам
const (
	PlaceEventCreated = "place.created"
	PlaceEventUpdated = "place.updated"
	PlaceEventDeleted = "place.deleted"
)

// PlaceEvent - событие об изменении объекта, публикуется после коммита
type PlaceEvent struct {
	Type         string   `json:"type"`
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	CategoryName string   `json:"category_name,omitempty"`
	Images       []string `json:"images,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// IsBroadcastable - о каких событиях сообщаем клиентам чата
func (e *PlaceEvent) IsBroadcastable() bool {
	return e.Type == PlaceEventCreated
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

package model

// Типы санузла и кухни, которые принимает бэкенд
var (
	BathroomTypes = []string{"Compartido", "Privado"}
	KitchenTypes  = []string{"Compartida", "Privada", "En la habitación", "Sin acceso"}
)

// Room комната, которую сдаёт владелец
type Room struct {
	RoomID        ID       `json:"roomId,omitempty"`
	ID            ID       `json:"id,omitempty"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Available     bool     `json:"available"`
	SquareFootage float64  `json:"squareFootage"`
	BathroomType  string   `json:"bathroomType"`
	KitchenType   string   `json:"kitchenType"`
	IsFurnished   bool     `json:"isFurnished"`
	Amenities     []string `json:"amenities"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	HasActivePost bool     `json:"hasActivePost,omitempty"`
	OwnerName     string   `json:"ownerName,omitempty"`
}

// Key возвращает идентификатор комнаты
func (r *Room) Key() ID {
	return FirstID(r.RoomID, r.ID)
}

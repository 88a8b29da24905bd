package model

// PostStatus статус объявления
type PostStatus string

const (
	PostStatusAvailable PostStatus = "DISPONIBLE"
	PostStatusRented    PostStatus = "ALQUILADO"
	PostStatusPaused    PostStatus = "PAUSADO"
)

// PostStatuses все статусы объявления в порядке показа
var PostStatuses = []PostStatus{PostStatusAvailable, PostStatusRented, PostStatusPaused}

// OwnerInfo краткая информация о владельце в объявлении
type OwnerInfo struct {
	Name        string `json:"name"`
	MemberSince string `json:"memberSince,omitempty"`
}

// Post объявление о сдаче комнаты
type Post struct {
	PostID           ID         `json:"postId,omitempty"`
	ID               ID         `json:"id,omitempty"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Price            float64    `json:"price"`
	Status           PostStatus `json:"status"`
	RoomID           ID         `json:"roomId,omitempty"`
	MinimumLeaseTerm string     `json:"minimumLeaseTerm,omitempty"`
	MaximumLeaseTerm string     `json:"maximumLeaseTerm,omitempty"`
	SecurityDeposit  float64    `json:"securityDeposit"`
	ImageURLs        []string   `json:"imageUrls,omitempty"`
	RoomDetails      *Room      `json:"roomDetails,omitempty"`
	OwnerInfo        *OwnerInfo `json:"ownerInfo,omitempty"`
}

// Key возвращает идентификатор объявления
func (p *Post) Key() ID {
	return FirstID(p.PostID, p.ID)
}

// Address адрес комнаты из объявления, если бэкенд его прислал
func (p *Post) Address() string {
	if p.RoomDetails != nil {
		return p.RoomDetails.Address
	}
	return ""
}

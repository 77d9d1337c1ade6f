package domain

// Order is the part of the shop order the delivery integration reads.
// Money is in minor units (kopecks).
type Order struct {
	ID    string      `json:"id"`
	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

type User struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func (o *Order) ItemsCount() int {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return count
}

// Place is the physical parcel handed to the courier. Weight in grams,
// dimensions in centimetres.
type Place struct {
	WeightGross int64 `json:"weight_gross"`
	DX          int64 `json:"dx"`
	DY          int64 `json:"dy"`
	DZ          int64 `json:"dz"`
}

type OfferItem struct {
	Quantity  int
	Name      string
	SKU       string
	UnitPrice int64
}

type Recipient struct {
	FirstName  string
	LastName   string
	Patronymic string
	Phone      string
	Email      string
}

// OfferRequest is everything needed to ask the platform for delivery offers.
type OfferRequest struct {
	OrderID            string
	Items              []OfferItem
	SourcePlatformID   string
	DestinationAddress string
	DestinationRoom    string
	Recipient          Recipient
	Place              Place
}

// NewOfferRequest maps a shop order and its recipient into an OfferRequest.
//
// OfferItem.UnitPrice carries the order line total, not the per-unit price:
// the platform bills the line as a whole.
func NewOfferRequest(order Order, user User, sourcePlatformID, address, room string) OfferRequest {
	items := make([]OfferItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OfferItem{
			Quantity:  it.Quantity,
			Name:      it.Name,
			SKU:       it.ID,
			UnitPrice: it.Total,
		})
	}

	return OfferRequest{
		OrderID:            order.ID,
		Items:              items,
		SourcePlatformID:   sourcePlatformID,
		DestinationAddress: address,
		DestinationRoom:    room,
		Recipient: Recipient{
			FirstName:  user.Name,
			LastName:   user.Surname,
			Patronymic: user.Patronymic,
			Phone:      user.Phone,
			Email:      user.Email,
		},
	}
}

// MapOfferRequests builds one OfferRequest per order for the same recipient.
func MapOfferRequests(orders []Order, user User, sourcePlatformID, address, room string) []OfferRequest {
	out := make([]OfferRequest, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOfferRequest(o, user, sourcePlatformID, address, room))
	}
	return out
}

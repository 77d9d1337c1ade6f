package yandex

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

const offersCreatePath = "b2b/platform/offers/create"

type OfferPayload struct {
	Info                  OfferInfo        `json:"info"`
	Source                OfferSource      `json:"source"`
	Destination           OfferDestination `json:"destination"`
	Items                 []OfferItem      `json:"items"`
	Places                []OfferPlace     `json:"places"`
	BillingInfo           BillingInfo      `json:"billing_info"`
	RecipientInfo         RecipientInfo    `json:"recipient_info"`
	LastMilePolicy        domain.Tariff    `json:"last_mile_policy"`
	ParticularItemsRefuse bool             `json:"particular_items_refuse"`
}

type OfferInfo struct {
	OperatorRequestID string `json:"operator_request_id"`
}

type OfferSource struct {
	PlatformStation PlatformStation `json:"platform_station"`
}

type PlatformStation struct {
	PlatformID string `json:"platform_id"`
}

type OfferDestination struct {
	Type           string         `json:"type"`
	CustomLocation CustomLocation `json:"custom_location"`
}

type CustomLocation struct {
	Details LocationDetails `json:"details"`
}

type LocationDetails struct {
	FullAddress string `json:"full_address"`
	Room        string `json:"room"`
}

type OfferItem struct {
	Count          int            `json:"count"`
	Name           string         `json:"name"`
	Article        string         `json:"article"`
	BillingDetails BillingDetails `json:"billing_details"`
	PlaceBarcode   string         `json:"place_barcode"`
}

type BillingDetails struct {
	UnitPrice         int64 `json:"unit_price"`
	AssessedUnitPrice int64 `json:"assessed_unit_price"`
}

type OfferPlace struct {
	PhysicalDims domain.Place `json:"physical_dims"`
	Barcode      string       `json:"barcode"`
}

type BillingInfo struct {
	PaymentMethod string `json:"payment_method"`
}

type RecipientInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// spelled as the platform API expects
	Patronymic string `json:"partronymic"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// BuildOfferPayload lays an OfferRequest out in the platform's offers/create
// shape. The order ID doubles as request ID and as the barcode of the single place.
func BuildOfferPayload(req domain.OfferRequest) OfferPayload {
	items := make([]OfferItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, OfferItem{
			Count:   it.Quantity,
			Name:    it.Name,
			Article: it.SKU,
			BillingDetails: BillingDetails{
				UnitPrice:         it.UnitPrice,
				AssessedUnitPrice: it.UnitPrice,
			},
			PlaceBarcode: req.OrderID,
		})
	}

	return OfferPayload{
		Info:   OfferInfo{OperatorRequestID: req.OrderID},
		Source: OfferSource{PlatformStation: PlatformStation{PlatformID: req.SourcePlatformID}},
		Destination: OfferDestination{
			Type: "custom_location",
			CustomLocation: CustomLocation{Details: LocationDetails{
				FullAddress: req.DestinationAddress,
				Room:        req.DestinationRoom,
			}},
		},
		Items: items,
		Places: []OfferPlace{{
			PhysicalDims: req.Place,
			Barcode:      req.OrderID,
		}},
		BillingInfo: BillingInfo{PaymentMethod: "already_paid"},
		RecipientInfo: RecipientInfo{
			FirstName:  req.Recipient.FirstName,
			LastName:   req.Recipient.LastName,
			Patronymic: req.Recipient.Patronymic,
			Phone:      req.Recipient.Phone,
			Email:      req.Recipient.Email,
		},
		LastMilePolicy:        domain.TariffTimeInterval,
		ParticularItemsRefuse: false,
	}
}

type OfferClient struct {
	transport *Transport
	baseURL   string
}

func NewOfferClient(transport *Transport, baseURL string) *OfferClient {
	return &OfferClient{transport: transport, baseURL: baseURL}
}

// CreateOffer posts the offer and returns the provider's decoded answer.
func (c *OfferClient) CreateOffer(ctx context.Context, req domain.OfferRequest) (map[string]any, error) {
	if req.OrderID == "" || len(req.Items) == 0 {
		return nil, ErrPreconditionFailed
	}

	body, err := json.Marshal(BuildOfferPayload(req))
	if err != nil {
		return nil, errors.Wrap(err, "marshal offer")
	}

	resp, err := c.transport.Post(ctx, EndpointOffersCreate, c.baseURL+offersCreatePath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create offer")
	}
	if len(resp) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

// Package rest exposes the delivery service as a small JSON API.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

type DeliveryService interface {
	Enabled() bool
	ResolveAddress(ctx context.Context, address string) (domain.Coordinate, bool)
	CheckPrice(ctx context.Context, quantity int, sender, recipient domain.Coordinate) (domain.PriceQuote, bool)
	CalculatePrice(ctx context.Context, totalWeight int64, sourceStationID, destinationAddress string, tariff domain.Tariff) float64
	CreateOrderOffer(ctx context.Context, order domain.Order, user domain.User, address, room string) map[string]any
	RecordNotification(phone, message string, at time.Time) bool
	Log() []string
	Errors() map[domain.ErrorCode]string
}

type Handler struct {
	service DeliveryService
}

func NewHandler(service DeliveryService) *Handler {
	return &Handler{service: service}
}

type geocodeResponse struct {
	Address     string            `json:"address"`
	Coordinates domain.Coordinate `json:"coordinates"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
}

type checkPriceRequest struct {
	Quantity int               `json:"quantity"`
	From     domain.Coordinate `json:"from"`
	To       domain.Coordinate `json:"to"`
}

type checkPriceResponse struct {
	Price          float64 `json:"price"`
	Currency       string  `json:"currency,omitempty"`
	DistanceMeters float64 `json:"distance_meters,omitempty"`
	ETA            int64   `json:"eta,omitempty"`
}

type calculatePriceRequest struct {
	TotalWeight        int64         `json:"total_weight"`
	SourceStationID    string        `json:"source_station_id"`
	DestinationAddress string        `json:"destination_address"`
	Tariff             domain.Tariff `json:"tariff"`
}

type offerRequest struct {
	Order   domain.Order `json:"order"`
	User    domain.User  `json:"user"`
	Address string       `json:"address"`
	Room    string       `json:"room"`
}

type notificationRequest struct {
	Phone   string    `json:"phone"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type errorResponse struct {
	Error string   `json:"error"`
	Codes []string `json:"codes,omitempty"`
}

func (h *Handler) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "ok",
			"delivery_enabled": h.service.Enabled(),
		})
	}
}

func (h *Handler) Geocode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		if address == "" {
			writeError(w, http.StatusBadRequest, "address query parameter is required", nil)
			return
		}

		ctx, trace := domain.WithErrorTrace(r.Context())
		point, ok := h.service.ResolveAddress(ctx, address)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "address not resolved", trace.Codes())
			return
		}

		writeJSON(w, http.StatusOK, geocodeResponse{
			Address:     address,
			Coordinates: point,
			Latitude:    point.Latitude,
			Longitude:   point.Longitude,
		})
	}
}

func (h *Handler) CheckPrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkPriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		ctx, trace := domain.WithErrorTrace(r.Context())
		quote, ok := h.service.CheckPrice(ctx, req.Quantity, req.From, req.To)
		if !ok {
			writeError(w, http.StatusBadRequest, "quantity must be positive and both points set", nil)
			return
		}
		if quote.IsEmpty() {
			writeError(w, http.StatusBadGateway, "no price returned", trace.Codes())
			return
		}

		writeJSON(w, http.StatusOK, checkPriceResponse{
			Price:          quote.Price,
			Currency:       quote.Currency,
			DistanceMeters: quote.DistanceMeters,
			ETA:            quote.ETA,
		})
	}
}

func (h *Handler) CalculatePrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calculatePriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if req.Tariff == "" {
			req.Tariff = domain.TariffTimeInterval
		}

		ctx, trace := domain.WithErrorTrace(r.Context())
		price := h.service.CalculatePrice(ctx, req.TotalWeight, req.SourceStationID, req.DestinationAddress, req.Tariff)
		if price == 0 {
			writeError(w, http.StatusUnprocessableEntity, "no price returned", trace.Codes())
			return
		}

		writeJSON(w, http.StatusOK, map[string]float64{"price": price})
	}
}

func (h *Handler) CreateOffer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req offerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if req.Order.ID == "" || len(req.Order.Items) == 0 {
			writeError(w, http.StatusBadRequest, "order id and at least one item are required", nil)
			return
		}

		ctx, trace := domain.WithErrorTrace(r.Context())
		resp := h.service.CreateOrderOffer(ctx, req.Order, req.User, req.Address, req.Room)
		if resp == nil {
			writeError(w, http.StatusBadGateway, "offer not created", trace.Codes())
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) RecordNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req notificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if req.Phone == "" || req.Message == "" {
			writeError(w, http.StatusBadRequest, "phone and message are required", nil)
			return
		}

		recorded := h.service.RecordNotification(req.Phone, req.Message, req.At)
		writeJSON(w, http.StatusOK, map[string]bool{"recorded": recorded})
	}
}

func (h *Handler) Log() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"log":    h.service.Log(),
			"errors": h.service.Errors(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, codes map[domain.ErrorCode]string) {
	resp := errorResponse{Error: message}
	for code := range codes {
		resp.Codes = append(resp.Codes, string(code))
	}
	sort.Strings(resp.Codes)
	writeJSON(w, status, resp)
}

// Package handler содержит HTTP-обработчики API сервиса поиска премиальных билетов.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/award-search/internal/airport"
	"github.com/mmeshcher/award-search/internal/history"
	"github.com/mmeshcher/award-search/internal/middleware"
	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/service"
	"github.com/mmeshcher/award-search/internal/suggest"
	"github.com/mmeshcher/award-search/internal/validation"
)

const kmToMiles = 0.621371

// Service определяет контракт поиска рейсов, используемый HTTP-обработчиками.
type Service interface {
	Search(ctx context.Context, clientID string, params service.SearchParams) (*service.SearchResult, error)
	Repeat(ctx context.Context, clientID, id string) (*service.SearchResult, error)
	LastResults(clientID string) []service.SearchResult
	RecentSearches(ctx context.Context, clientID string) ([]model.SearchHistoryEntry, error)
	SearchByID(ctx context.Context, clientID, id string) (*model.SearchHistoryEntry, error)
	ClearSearches(ctx context.Context, clientID string) error
}

// Airports определяет контракт справочника и подсказок аэропортов.
type Airports interface {
	Suggest(ctx context.Context, clientID, query string, searchType model.SearchType) ([]airport.Suggestion, error)
	Recent(ctx context.Context, clientID string, searchType model.SearchType) ([]airport.Suggestion, error)
	RecordSelection(ctx context.Context, clientID string, searchType model.SearchType, rec model.AirportRecord) (model.AirportSelection, error)
	ClearRecent(ctx context.Context, clientID string) error
	Lookup(code string) (model.AirportRecord, bool)
	Distance(from, to string) (float64, bool)
}

// Handler реализует HTTP-обработчики API.
type Handler struct {
	service     Service
	airports    Airports
	logger      *zap.Logger
	clients     *middleware.ClientMiddleware
	corsOrigins []string
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, a Airports, logger *zap.Logger, clients *middleware.ClientMiddleware, corsOrigins []string) *Handler {
	return &Handler{
		service:     s,
		airports:    a,
		logger:      logger,
		clients:     clients,
		corsOrigins: corsOrigins,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, field string) {
	writeJSON(w, status, errorResponse{Error: message, Field: field})
}

func clientID(r *http.Request) string {
	id, _ := middleware.GetClientIDFromContext(r.Context())
	return id
}

func parseSearchType(value string, fallback model.SearchType) (model.SearchType, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback, fallback != ""
	}
	t := model.SearchType(value)
	return t, t.Valid()
}

// Health сообщает, что сервис запущен.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type suggestionsResponse struct {
	Airports []airport.Suggestion `json:"airports"`
	Stale    bool                 `json:"stale,omitempty"`
}

// SearchAirports возвращает подсказки аэропортов для поля origin или destination.
func (h *Handler) SearchAirports(w http.ResponseWriter, r *http.Request) {
	searchType, ok := parseSearchType(r.URL.Query().Get("type"), model.SearchTypeOrigin)
	if !ok {
		writeError(w, http.StatusBadRequest, "type must be origin or destination", "type")
		return
	}

	res, err := h.airports.Suggest(r.Context(), clientID(r), r.URL.Query().Get("q"), searchType)
	if err != nil {
		switch {
		case errors.Is(err, suggest.ErrSuperseded):
			writeJSON(w, http.StatusOK, suggestionsResponse{Airports: []airport.Suggestion{}, Stale: true})
		case errors.Is(err, context.Canceled):
		default:
			h.logger.Error("suggest airports error", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Airports: res})
}

// GetAirport возвращает аэропорт по коду IATA или ICAO.
func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	code := validation.NormalizeCode(chi.URLParam(r, "code"))
	if !validation.IsValidIATACode(code) && !validation.IsValidICAOCode(code) {
		writeError(w, http.StatusBadRequest, "code must be a 3-letter IATA or 4-letter ICAO code", "code")
		return
	}

	a, ok := h.airports.Lookup(code)
	if !ok {
		writeError(w, http.StatusNotFound, "airport not found", "code")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

type distanceResponse struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Km    float64 `json:"km"`
	Miles float64 `json:"miles"`
}

// Distance возвращает расстояние между двумя аэропортами.
func (h *Handler) Distance(w http.ResponseWriter, r *http.Request) {
	from := validation.NormalizeCode(r.URL.Query().Get("from"))
	to := validation.NormalizeCode(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required", "from")
		return
	}

	km, ok := h.airports.Distance(from, to)
	if !ok {
		writeError(w, http.StatusNotFound, "airport not found or has no coordinates", "")
		return
	}

	writeJSON(w, http.StatusOK, distanceResponse{
		From:  from,
		To:    to,
		Km:    math.Round(km),
		Miles: math.Round(km * kmToMiles),
	})
}

// RecentAirports возвращает недавно выбранные аэропорты указанного типа.
func (h *Handler) RecentAirports(w http.ResponseWriter, r *http.Request) {
	searchType, ok := parseSearchType(r.URL.Query().Get("type"), "")
	if !ok {
		writeError(w, http.StatusBadRequest, "type must be origin or destination", "type")
		return
	}

	res, err := h.airports.Recent(r.Context(), clientID(r), searchType)
	if err != nil {
		h.logger.Error("recent airports error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{Airports: res})
}

type selectionRequest struct {
	Code    string `json:"code"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// RecordAirport запоминает аэропорт, выбранный клиентом.
func (h *Handler) RecordAirport(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	searchType, ok := parseSearchType(req.Type, "")
	if !ok {
		writeError(w, http.StatusBadRequest, "type must be origin or destination", "type")
		return
	}

	sel, err := h.airports.RecordSelection(r.Context(), clientID(r), searchType, model.AirportRecord{
		IATA:    req.Code,
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		if errors.Is(err, airport.ErrUnknownAirport) {
			writeError(w, http.StatusUnprocessableEntity, "unknown airport", "code")
			return
		}
		h.logger.Error("record airport error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, sel)
}

// ClearRecentAirports удаляет недавно выбранные аэропорты клиента.
func (h *Handler) ClearRecentAirports(w http.ResponseWriter, r *http.Request) {
	if err := h.airports.ClearRecent(r.Context(), clientID(r)); err != nil {
		h.logger.Error("clear airports error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchAwards ищет премиальные билеты по параметрам запроса.
func (h *Handler) SearchAwards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	passengers := 1
	if v := strings.TrimSpace(q.Get("passengers")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "passengers must be a number", "passengers")
			return
		}
		passengers = n
	}

	res, err := h.service.Search(r.Context(), clientID(r), service.SearchParams{
		Origin:        q.Get("origin"),
		Destination:   q.Get("destination"),
		DepartureDate: q.Get("date"),
		ReturnDate:    q.Get("return_date"),
		CabinClass:    q.Get("cabin_class"),
		Passengers:    passengers,
		Airline:       q.Get("airline"),
	})
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) writeSearchError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message, ve.Field)
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}

	var pe *service.ProviderError
	if errors.As(err, &pe) && pe.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(pe.RetryAfter.Seconds())))
	}

	h.logger.Warn("award search failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, service.UserMessage(err), "")
}

// GetSearchHistory возвращает историю поиска клиента.
func (h *Handler) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.RecentSearches(r.Context(), clientID(r))
	if err != nil {
		h.logger.Error("get search history error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(list) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetSearch возвращает запись истории поиска по идентификатору.
func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.SearchByID(r.Context(), clientID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get search error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// RepeatSearch повторяет поиск из истории клиента.
func (h *Handler) RepeatSearch(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Repeat(r.Context(), clientID(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ClearSearchHistory очищает историю поиска клиента.
func (h *Handler) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearSearches(r.Context(), clientID(r)); err != nil {
		h.logger.Error("clear search history error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLastResults возвращает последние результаты поиска клиента.
func (h *Handler) GetLastResults(w http.ResponseWriter, r *http.Request) {
	list := h.service.LastResults(clientID(r))
	if len(list) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/trello-manager/internal/api/shared"
	"github.com/phrazzld/trello-manager/internal/platform/logger"
	"github.com/phrazzld/trello-manager/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// Routes mounts the card routes on r.
func (h *CardHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateCard)
	r.Get("/{type}", h.ListCards)
	r.Get("/{type}/{id}", h.GetCard)
	r.Delete("/{type}/{id}", h.DeleteCard)
}

// CreateCard handles POST /cards/trello-manager requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCardRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("invalid request body", slog.String("error", err.Error()))
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	input, err := req.ToInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	log.Debug("card created",
		slog.String("card_type", string(card.Type)),
		slog.Int64("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// ListCards handles GET /cards/trello-manager/{type} requests.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cardType, err := getPathCardType(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), cardType)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// GetCard handles GET /cards/trello-manager/{type}/{id} requests.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardType, id, ok := getPathTypeAndID(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), cardType, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /cards/trello-manager/{type}/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardType, id, ok := getPathTypeAndID(w, r)
	if !ok {
		return
	}

	res, err := h.cardService.DeleteCard(r.Context(), cardType, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}

	log.Debug("card deleted",
		slog.String("card_type", string(cardType)),
		slog.Int64("card_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, deleteToResponse(res))
}

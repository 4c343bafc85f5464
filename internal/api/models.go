package api

import (
	"time"

	"github.com/phrazzld/trello-manager/internal/domain"
	"github.com/phrazzld/trello-manager/internal/service"
)

// CreateCardRequest defines the payload for POST /cards/trello-manager.
// Per-type required fields are checked by the card service; the tags here
// only bound the request shape.
type CreateCardRequest struct {
	Type        string `json:"type"        validate:"required,max=32"`
	Title       string `json:"title"       validate:"max=255"`
	Description string `json:"description" validate:"max=4096"`
	Category    string `json:"category"    validate:"max=32"`
}

// ToInput converts the request to a domain.CardInput.
func (req CreateCardRequest) ToInput() (domain.CardInput, error) {
	cardType, err := domain.ParseCardType(req.Type)
	if err != nil {
		return domain.CardInput{}, err
	}

	in := domain.CardInput{
		Type:        cardType,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Category != "" {
		in.Category = domain.NormalizeCategory(req.Category)
	}
	return in, nil
}

// CardResponse represents the response data for a card
type CardResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	Affected int64 `json:"affected"`
}

func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:          card.ID,
		Type:        string(card.Type),
		Title:       card.Title,
		Description: card.Description,
		Category:    string(card.Category),
		CreatedAt:   card.CreatedAt,
	}
}

func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToResponse(c))
	}
	return out
}

func deleteToResponse(res *service.DeleteResult) DeleteResponse {
	return DeleteResponse{Affected: res.Affected}
}

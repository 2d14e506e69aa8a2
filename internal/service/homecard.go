package service

import (
	"context"
	"fmt"
	"strings"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/model"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/sirupsen/logrus"
)

// NewHomeCardService creates a new HomeCardService.
func NewHomeCardService(store store.Store) *HomeCardService {
	return &HomeCardService{store: store}
}

// HomeCardService manages the ticker entries of the home page cards. A fresh
// database is seeded with model.DefaultHomeCards.
type HomeCardService struct {
	store store.Store
}

func validateHomeCard(in *v1.HomeCardInput) error {
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown card %q", ErrInvalidArgument, in.Category)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	return nil
}

// CreateHomeCard appends a card after every existing one.
func (s *HomeCardService) CreateHomeCard(ctx context.Context, in *v1.HomeCardInput) (*v1.HomeCard, error) {
	if err := validateHomeCard(in); err != nil {
		return nil, err
	}

	card := &model.HomeCard{
		Category: string(in.Category),
		Title:    strings.TrimSpace(in.Title),
		LastDate: strings.TrimSpace(in.LastDate),
	}
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		top, err := tx.MaxHomeCardPosition(ctx)
		if err != nil {
			return err
		}
		card.Position = top + 1
		return tx.CreateHomeCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	return toHomeCard(card), nil
}

func (s *HomeCardService) ListHomeCards(ctx context.Context, category *v1.CardCategory) (*v1.ListHomeCardsResponse, error) {
	var filter *string
	if category != nil {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: unknown card %q", ErrInvalidArgument, *category)
		}
		c := string(*category)
		filter = &c
	}

	cards, err := s.store.ListHomeCards(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &v1.ListHomeCardsResponse{Cards: make([]*v1.HomeCard, 0, len(cards))}
	for _, card := range cards {
		res.Cards = append(res.Cards, toHomeCard(card))
	}
	return res, nil
}

// UpdateHomeCard rewrites a card in place; its position is kept.
func (s *HomeCardService) UpdateHomeCard(ctx context.Context, id uint64, in *v1.HomeCardInput) (*v1.HomeCard, error) {
	if err := validateHomeCard(in); err != nil {
		return nil, err
	}

	card, err := s.store.GetHomeCard(ctx, uint(id))
	if err != nil {
		return nil, err
	}

	card.Category = string(in.Category)
	card.Title = strings.TrimSpace(in.Title)
	card.LastDate = strings.TrimSpace(in.LastDate)
	if err := s.store.UpdateHomeCard(ctx, card); err != nil {
		return nil, err
	}

	return toHomeCard(card), nil
}

func (s *HomeCardService) DeleteHomeCard(ctx context.Context, id uint64) error {
	return s.store.DeleteHomeCard(ctx, uint(id))
}

// ResetHomeCards replaces every card with model.DefaultHomeCards.
func (s *HomeCardService) ResetHomeCards(ctx context.Context) (*v1.ListHomeCardsResponse, error) {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		cards, err := tx.ListHomeCards(ctx, nil)
		if err != nil {
			return err
		}
		for _, card := range cards {
			if err := tx.DeleteHomeCard(ctx, card.ID); err != nil {
				return err
			}
		}
		for _, card := range model.DefaultHomeCards() {
			if err := tx.CreateHomeCard(ctx, card); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.Info("home cards reset to defaults")

	return s.ListHomeCards(ctx, nil)
}

func toHomeCard(card *model.HomeCard) *v1.HomeCard {
	return &v1.HomeCard{
		ID:       uint64(card.ID),
		Category: v1.CardCategory(card.Category),
		Title:    card.Title,
		LastDate: card.LastDate,
		Position: card.Position,
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopsphere/internal/client/client"
	"github.com/dmitrijs2005/shopsphere/internal/client/models"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

type OrderService interface {
	History(ctx context.Context) (*models.OrderHistory, error)
}

type orderService struct {
	client client.Client
	log    logging.Logger
}

func NewOrderService(c client.Client, log logging.Logger) OrderService {
	return &orderService{client: c, log: log}
}

func (s *orderService) History(ctx context.Context) (*models.OrderHistory, error) {
	h, err := s.client.Orders(ctx)
	if err != nil {
		s.log.Warn(ctx, "orders fetch failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrOrdersUnavailable, err)
	}
	if h.Lines == nil {
		h.Lines = []models.OrderLine{}
	}
	return h, nil
}

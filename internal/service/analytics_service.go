package service

import (
	"context"
	"fmt"

	"morishcart/internal/model"
	"morishcart/internal/repository"

	"github.com/rs/zerolog"
)

const (
	topProductsLimit = 5
	topCouponsLimit  = 3
)

// analyticsService implements AnalyticsService.
type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	logger        zerolog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		logger:        logger.With().Str("service", "analytics").Logger(),
	}
}

// Summary aggregates the dashboard metrics over confirmed orders.
func (s *analyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	totalOrders, err := s.analyticsRepo.TotalOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	revenue, err := s.analyticsRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	topProducts, err := s.analyticsRepo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	topCoupons, err := s.analyticsRepo.TopCoupons(ctx, topCouponsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	conversion, err := s.analyticsRepo.ConversionRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	return &model.AnalyticsSummary{
		TotalOrders:    totalOrders,
		TotalRevenue:   revenue,
		TopProducts:    topProducts,
		TopCoupons:     topCoupons,
		ConversionRate: conversion,
	}, nil
}

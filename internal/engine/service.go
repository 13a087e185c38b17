package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// ListingLookup fetches a window of a seller's listings. *ebay.Paginator
// implements it.
type ListingLookup interface {
	Lookup(ctx context.Context, seller string, limit, offset int) (*ebay.SearchResponse, error)
}

// ImportStarter starts import jobs; Intake implements it.
type ImportStarter interface {
	BeginImport(ctx context.Context, shop, seller string, options domain.ImportOptions) (*IntakeResult, error)
}

// LookupResult is a quota-charged page of a seller's listings.
type LookupResult struct {
	Listings *ebay.SearchResponse
	Quota    quota.Decision
}

// Service is the request-facing entry point: every billable operation goes
// through admission first, and a charge is refunded when the work it paid
// for never happened.
type Service struct {
	admission *AdmissionController
	lookup    ListingLookup
	intake    ImportStarter
	costs     quota.Costs
	log       *slog.Logger
}

// NewService creates a Service.
func NewService(
	admission *AdmissionController,
	lookup ListingLookup,
	intake ImportStarter,
	costs quota.Costs,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		admission: admission,
		lookup:    lookup,
		intake:    intake,
		costs:     costs,
		log:       log,
	}
}

// Lookup charges one lookup and returns the requested window of listings.
func (s *Service) Lookup(ctx context.Context, shop string, limit, offset int) (*LookupResult, error) {
	adm, err := s.admission.Admit(ctx, shop, s.costs.Lookup)
	if err != nil {
		return nil, err
	}

	resp, err := s.lookup.Lookup(ctx, adm.SellerUsername, limit, offset)
	if err != nil {
		s.admission.Refund(ctx, shop, adm)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	return &LookupResult{Listings: resp, Quota: adm.Decision}, nil
}

// StartImport charges one import job and hands the request to intake. The
// charge is refunded when the seller has no listings or the job could not
// be created or queued.
func (s *Service) StartImport(ctx context.Context, shop string, options domain.ImportOptions) (*IntakeResult, error) {
	adm, err := s.admission.Admit(ctx, shop, s.costs.ImportJob)
	if err != nil {
		return nil, err
	}

	res, err := s.intake.BeginImport(ctx, shop, adm.SellerUsername, options)
	if err != nil {
		s.admission.Refund(ctx, shop, adm)
		return nil, err
	}
	if res.TotalItems == 0 {
		s.admission.Refund(ctx, shop, adm)
	}
	return res, nil
}

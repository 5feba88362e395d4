package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

// MembershipService manages the many-to-many collector↔company association.
type MembershipService struct {
	members    MembershipStore
	collectors CollectorStore
	companies  CompanyStore
	log        zerolog.Logger
}

func NewMembershipService(
	members MembershipStore,
	collectors CollectorStore,
	companies CompanyStore,
	log zerolog.Logger,
) *MembershipService {
	return &MembershipService{
		members:    members,
		collectors: collectors,
		companies:  companies,
		log:        log,
	}
}

// Link associates a collector with a company. The pair must not already be
// linked.
func (s *MembershipService) Link(ctx context.Context, collectorID, companyID uint) error {
	if err := s.checkPair(ctx, collectorID, companyID); err != nil {
		return err
	}

	if err := s.members.Link(ctx, collectorID, companyID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: catador %d already linked to empresa %d", ErrConflict, collectorID, companyID)
		}
		return err
	}

	s.log.Info().Uint("catador_id", collectorID).Uint("empresa_id", companyID).Msg("membership linked")
	return nil
}

// Unlink removes the association. An unlinked pair yields ErrLinkNotFound,
// distinct from a missing collector or company.
func (s *MembershipService) Unlink(ctx context.Context, collectorID, companyID uint) error {
	if err := s.checkPair(ctx, collectorID, companyID); err != nil {
		return err
	}

	if err := s.members.Unlink(ctx, collectorID, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: catador %d and empresa %d", ErrLinkNotFound, collectorID, companyID)
		}
		return err
	}

	s.log.Info().Uint("catador_id", collectorID).Uint("empresa_id", companyID).Msg("membership unlinked")
	return nil
}

func (s *MembershipService) CompaniesForCollector(ctx context.Context, collectorID uint) ([]model.Company, error) {
	if _, err := s.collectors.Get(ctx, collectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("catador", collectorID)
		}
		return nil, err
	}
	return s.members.CompaniesForCollector(ctx, collectorID)
}

func (s *MembershipService) CollectorsForCompany(ctx context.Context, companyID uint) ([]model.Collector, error) {
	if _, err := s.companies.Get(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("empresa", companyID)
		}
		return nil, err
	}
	return s.members.CollectorsForCompany(ctx, companyID)
}

func (s *MembershipService) checkPair(ctx context.Context, collectorID, companyID uint) error {
	if _, err := s.collectors.Get(ctx, collectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("catador", collectorID)
		}
		return err
	}
	if _, err := s.companies.Get(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("empresa", companyID)
		}
		return err
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

// RegistryService manages the companies, collection points and collectors
// that fulfill service orders.
type RegistryService struct {
	companies  CompanyStore
	points     PointStore
	collectors CollectorStore
	geocoder   Geocoder
	log        zerolog.Logger
}

func NewRegistryService(
	companies CompanyStore,
	points PointStore,
	collectors CollectorStore,
	geocoder Geocoder,
	log zerolog.Logger,
) *RegistryService {
	return &RegistryService{
		companies:  companies,
		points:     points,
		collectors: collectors,
		geocoder:   geocoder,
		log:        log,
	}
}

type CreateCompanyInput struct {
	Name    string
	CNPJ    string
	Address string
	Phone   string
	Email   string
	Status  model.CompanyStatus
}

func (s *RegistryService) CreateCompany(ctx context.Context, input CreateCompanyInput) (*model.Company, error) {
	exists, err := s.companies.CNPJExists(ctx, input.CNPJ)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: cnpj %s", ErrConflict, input.CNPJ)
	}

	status := input.Status
	if status == "" {
		status = model.CompanyStatusActive
	}

	company := &model.Company{
		Name:    input.Name,
		CNPJ:    input.CNPJ,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		Status:  status,
	}
	if coords := s.geocoder.Resolve(ctx, input.Address); coords != nil {
		company.Latitude = &coords.Latitude
		company.Longitude = &coords.Longitude
	}

	if err := s.companies.Create(ctx, company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: cnpj %s", ErrConflict, input.CNPJ)
		}
		return nil, err
	}
	return company, nil
}

func (s *RegistryService) GetCompany(ctx context.Context, id uint) (*model.Company, error) {
	company, err := s.companies.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("empresa", id)
		}
		return nil, err
	}
	return company, nil
}

func (s *RegistryService) ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]model.Company, int64, error) {
	return s.companies.List(ctx, filter)
}

type UpdateCompanyInput struct {
	Name    *string
	Address *string
	Phone   *string
	Email   *string
	Status  *model.CompanyStatus
}

func (s *RegistryService) UpdateCompany(ctx context.Context, id uint, input UpdateCompanyInput) (*model.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.Status != nil {
		company.Status = *input.Status
	}
	if input.Address != nil {
		company.Address = *input.Address
		if coords := s.geocoder.Resolve(ctx, *input.Address); coords != nil {
			company.Latitude = &coords.Latitude
			company.Longitude = &coords.Longitude
		}
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("update company %d: %w", id, err)
	}
	return company, nil
}

// DeleteCompany removes the company. Its collection points and membership
// rows cascade away; order slots referencing it are cleared by the schema.
func (s *RegistryService) DeleteCompany(ctx context.Context, id uint) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("empresa", id)
		}
		return err
	}
	return nil
}

type CreatePointInput struct {
	CompanyID    uint
	Name         string
	Address      string
	OpeningHours string
	Phone        string
	Status       model.PointStatus
}

func (s *RegistryService) CreatePoint(ctx context.Context, input CreatePointInput) (*model.CollectionPoint, error) {
	if _, err := s.GetCompany(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.PointStatusOpen
	}

	point := &model.CollectionPoint{
		CompanyID:    input.CompanyID,
		Name:         input.Name,
		Address:      input.Address,
		OpeningHours: input.OpeningHours,
		Phone:        input.Phone,
		Status:       status,
	}
	if coords := s.geocoder.Resolve(ctx, input.Address); coords != nil {
		point.Latitude = &coords.Latitude
		point.Longitude = &coords.Longitude
	}

	if err := s.points.Create(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *RegistryService) GetPoint(ctx context.Context, id uint) (*model.CollectionPoint, error) {
	point, err := s.points.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("ponto de coleta", id)
		}
		return nil, err
	}
	return point, nil
}

func (s *RegistryService) ListPoints(ctx context.Context, filter model.PointFilter) ([]model.CollectionPoint, int64, error) {
	return s.points.List(ctx, filter)
}

// ListPointsByCompany verifies the company exists before listing, so a bad
// company id reports NotFound instead of an empty page.
func (s *RegistryService) ListPointsByCompany(ctx context.Context, companyID uint) ([]model.CollectionPoint, int64, error) {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}
	return s.points.List(ctx, model.PointFilter{CompanyID: &companyID})
}

type UpdatePointInput struct {
	Name         *string
	Address      *string
	OpeningHours *string
	Phone        *string
	Status       *model.PointStatus
}

func (s *RegistryService) UpdatePoint(ctx context.Context, id uint, input UpdatePointInput) (*model.CollectionPoint, error) {
	point, err := s.GetPoint(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		point.Name = *input.Name
	}
	if input.OpeningHours != nil {
		point.OpeningHours = *input.OpeningHours
	}
	if input.Phone != nil {
		point.Phone = *input.Phone
	}
	if input.Status != nil {
		point.Status = *input.Status
	}
	if input.Address != nil {
		point.Address = *input.Address
		if coords := s.geocoder.Resolve(ctx, *input.Address); coords != nil {
			point.Latitude = &coords.Latitude
			point.Longitude = &coords.Longitude
		}
	}

	if err := s.points.Update(ctx, point); err != nil {
		return nil, fmt.Errorf("update point %d: %w", id, err)
	}
	return point, nil
}

func (s *RegistryService) DeletePoint(ctx context.Context, id uint) error {
	if err := s.points.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("ponto de coleta", id)
		}
		return err
	}
	return nil
}

type CreateCollectorInput struct {
	Name       string
	CPF        string
	Phone      string
	Email      *string
	Status     model.CollectorStatus
	CompanyIDs []uint
}

// CreateCollector registers a collector, optionally linked to companies from
// the start. Every referenced company must exist.
func (s *RegistryService) CreateCollector(ctx context.Context, input CreateCollectorInput) (*model.Collector, error) {
	exists, err := s.collectors.CPFExists(ctx, input.CPF)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: cpf %s", ErrConflict, input.CPF)
	}

	for _, companyID := range input.CompanyIDs {
		if _, err := s.GetCompany(ctx, companyID); err != nil {
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = model.CollectorStatusActive
	}

	collector := &model.Collector{
		Name:   input.Name,
		CPF:    input.CPF,
		Phone:  input.Phone,
		Email:  input.Email,
		Status: status,
	}
	if err := s.collectors.CreateWithLinks(ctx, collector, input.CompanyIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: cpf %s", ErrConflict, input.CPF)
		}
		return nil, err
	}
	return collector, nil
}

func (s *RegistryService) GetCollector(ctx context.Context, id uint) (*model.Collector, error) {
	collector, err := s.collectors.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("catador", id)
		}
		return nil, err
	}
	return collector, nil
}

func (s *RegistryService) ListCollectors(ctx context.Context, filter model.CollectorFilter) ([]model.Collector, int64, error) {
	return s.collectors.List(ctx, filter)
}

type UpdateCollectorInput struct {
	Name   *string
	Phone  *string
	Email  *string
	Status *model.CollectorStatus
}

func (s *RegistryService) UpdateCollector(ctx context.Context, id uint, input UpdateCollectorInput) (*model.Collector, error) {
	collector, err := s.GetCollector(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		collector.Name = *input.Name
	}
	if input.Phone != nil {
		collector.Phone = *input.Phone
	}
	if input.Email != nil {
		collector.Email = input.Email
	}
	if input.Status != nil {
		collector.Status = *input.Status
	}

	if err := s.collectors.Update(ctx, collector); err != nil {
		return nil, fmt.Errorf("update collector %d: %w", id, err)
	}
	return collector, nil
}

func (s *RegistryService) DeleteCollector(ctx context.Context, id uint) error {
	if err := s.collectors.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("catador", id)
		}
		return err
	}
	return nil
}

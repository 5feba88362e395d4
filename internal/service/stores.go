package service

import (
	"context"

	"github.com/devsdeimpacto/coleta-service/internal/geocoding"
	"github.com/devsdeimpacto/coleta-service/internal/model"
)

// Store interfaces the services consume. The gorm repositories in
// internal/repository satisfy them; tests use in-memory fakes. Stores
// report missing rows as gorm.ErrRecordNotFound and duplicate unique keys
// as gorm.ErrDuplicatedKey; the services translate those into the
// client-facing error taxonomy.

type RequestStore interface {
	CreateWithOrder(ctx context.Context, request *model.CollectionRequest, year int) (*model.ServiceOrder, error)
	Get(ctx context.Context, id uint) (*model.CollectionRequest, error)
	GetOrderForRequest(ctx context.Context, requestID uint) (*model.ServiceOrder, error)
	Update(ctx context.Context, request *model.CollectionRequest) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter model.RequestFilter) ([]model.CollectionRequest, int64, error)
}

type OrderStore interface {
	Get(ctx context.Context, id uint) (*model.ServiceOrder, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.ServiceOrder, int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.ServiceOrder, error)
	AssignSlots(ctx context.Context, id uint, assignment model.OrderAssignment) (*model.ServiceOrder, error)
	Delete(ctx context.Context, id uint) error
	ListExportRows(ctx context.Context, filter model.OrderFilter) ([]model.OrderExportRow, error)
}

type CompanyStore interface {
	Create(ctx context.Context, company *model.Company) error
	Get(ctx context.Context, id uint) (*model.Company, error)
	List(ctx context.Context, filter model.CompanyFilter) ([]model.Company, int64, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id uint) error
	CNPJExists(ctx context.Context, cnpj string) (bool, error)
}

type PointStore interface {
	Create(ctx context.Context, point *model.CollectionPoint) error
	Get(ctx context.Context, id uint) (*model.CollectionPoint, error)
	List(ctx context.Context, filter model.PointFilter) ([]model.CollectionPoint, int64, error)
	Update(ctx context.Context, point *model.CollectionPoint) error
	Delete(ctx context.Context, id uint) error
}

type CollectorStore interface {
	CreateWithLinks(ctx context.Context, collector *model.Collector, companyIDs []uint) error
	Get(ctx context.Context, id uint) (*model.Collector, error)
	List(ctx context.Context, filter model.CollectorFilter) ([]model.Collector, int64, error)
	Update(ctx context.Context, collector *model.Collector) error
	Delete(ctx context.Context, id uint) error
	CPFExists(ctx context.Context, cpf string) (bool, error)
}

type MembershipStore interface {
	Link(ctx context.Context, collectorID, companyID uint) error
	Unlink(ctx context.Context, collectorID, companyID uint) error
	CompaniesForCollector(ctx context.Context, collectorID uint) ([]model.Company, error)
	CollectorsForCompany(ctx context.Context, companyID uint) ([]model.Collector, error)
}

// Geocoder resolves an address to coordinates, returning nil when it cannot.
// A nil result is a normal outcome, never an error.
type Geocoder interface {
	Resolve(ctx context.Context, address string) *geocoding.Coordinates
}

type ExcelGenerator interface {
	Generate(report model.OrderReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(doc model.OrderDocument) ([]byte, error)
}

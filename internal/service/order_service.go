package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

// OrderService owns the service-order lifecycle: atomic creation of a
// request with its numbered order, request updates, status transitions,
// resource assignment and the export documents.
type OrderService struct {
	requests   RequestStore
	orders     OrderStore
	companies  CompanyStore
	points     PointStore
	collectors CollectorStore
	geocoder   Geocoder
	excel      ExcelGenerator
	pdf        PDFGenerator
	now        func() time.Time
	log        zerolog.Logger
}

func NewOrderService(
	requests RequestStore,
	orders OrderStore,
	companies CompanyStore,
	points PointStore,
	collectors CollectorStore,
	geocoder Geocoder,
	excel ExcelGenerator,
	pdf PDFGenerator,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		requests:   requests,
		orders:     orders,
		companies:  companies,
		points:     points,
		collectors: collectors,
		geocoder:   geocoder,
		excel:      excel,
		pdf:        pdf,
		now:        time.Now,
		log:        log,
	}
}

type CreateRequestInput struct {
	RequesterName string
	PersonType    model.PersonType
	Document      string
	Email         string
	WhatsApp      string
	ItemCount     int
	MaterialType  string
	Address       string
	PhotoURL      *string
}

// CreateRequest persists a collection request together with its service
// order. Geocoding is best effort: when it fails the request is stored
// without coordinates.
func (s *OrderService) CreateRequest(ctx context.Context, input CreateRequestInput) (*model.CollectionRequest, *model.ServiceOrder, error) {
	request := &model.CollectionRequest{
		RequesterName: input.RequesterName,
		PersonType:    input.PersonType,
		Document:      input.Document,
		Email:         input.Email,
		WhatsApp:      input.WhatsApp,
		ItemCount:     input.ItemCount,
		MaterialType:  input.MaterialType,
		Address:       input.Address,
		PhotoURL:      input.PhotoURL,
	}

	if coords := s.geocoder.Resolve(ctx, input.Address); coords != nil {
		request.Latitude = &coords.Latitude
		request.Longitude = &coords.Longitude
	}

	order, err := s.requests.CreateWithOrder(ctx, request, s.now().Year())
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	s.log.Info().
		Uint("solicitacao_id", request.ID).
		Str("numero_os", order.Number).
		Msg("collection request created")
	return request, order, nil
}

func (s *OrderService) GetRequest(ctx context.Context, id uint) (*model.CollectionRequest, error) {
	request, err := s.requests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("solicitação", id)
		}
		return nil, err
	}
	return request, nil
}

// GetRequestOrder returns the service order owned by a request.
func (s *OrderService) GetRequestOrder(ctx context.Context, requestID uint) (*model.ServiceOrder, error) {
	order, err := s.requests.GetOrderForRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("solicitação", requestID)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListRequests(ctx context.Context, filter model.RequestFilter) ([]model.CollectionRequest, int64, error) {
	return s.requests.List(ctx, filter)
}

// UpdateRequestInput carries only the mutable request fields. Document and
// person type are immutable after creation. Nil fields are left untouched.
type UpdateRequestInput struct {
	RequesterName *string
	Email         *string
	WhatsApp      *string
	ItemCount     *int
	MaterialType  *string
	Address       *string
	PhotoURL      *string
}

// UpdateRequest applies the supplied fields. An address change re-runs
// geocoding; when geocoding fails the previous coordinates are kept rather
// than cleared.
func (s *OrderService) UpdateRequest(ctx context.Context, id uint, input UpdateRequestInput) (*model.CollectionRequest, error) {
	request, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RequesterName != nil {
		request.RequesterName = *input.RequesterName
	}
	if input.Email != nil {
		request.Email = *input.Email
	}
	if input.WhatsApp != nil {
		request.WhatsApp = *input.WhatsApp
	}
	if input.ItemCount != nil {
		request.ItemCount = *input.ItemCount
	}
	if input.MaterialType != nil {
		request.MaterialType = *input.MaterialType
	}
	if input.PhotoURL != nil {
		request.PhotoURL = input.PhotoURL
	}
	if input.Address != nil {
		request.Address = *input.Address
		if coords := s.geocoder.Resolve(ctx, *input.Address); coords != nil {
			request.Latitude = &coords.Latitude
			request.Longitude = &coords.Longitude
		}
	}

	if err := s.requests.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update request %d: %w", id, err)
	}
	return request, nil
}

// DeleteRequest removes the request; its service order goes with it. The
// registry entities referenced by the order are never touched.
func (s *OrderService) DeleteRequest(ctx context.Context, id uint) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("solicitação", id)
		}
		return err
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*model.ServiceOrder, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("ordem de serviço", id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.ServiceOrder, int64, error) {
	return s.orders.List(ctx, filter)
}

// TransitionStatus overwrites the order status unconditionally. Any status
// is reachable from any status, matching the upstream system; a directed
// transition graph is a documented hardening option, not current behavior.
func (s *OrderService) TransitionStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.ServiceOrder, error) {
	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("ordem de serviço", id)
		}
		return nil, err
	}
	return order, nil
}

// AssignResources binds the provided company/point/collector slots to an
// order. Every provided reference is validated before anything is written,
// so an invalid one leaves the order fully unchanged. Slots are
// independent: no point-belongs-to-company or membership check is made.
func (s *OrderService) AssignResources(ctx context.Context, id uint, assignment model.OrderAssignment) (*model.ServiceOrder, error) {
	if assignment.CompanyID == nil && assignment.PointID == nil && assignment.CollectorID == nil {
		return nil, fmt.Errorf("%w: no assignment slot provided", ErrInvalidInput)
	}

	if _, err := s.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	if assignment.CompanyID != nil {
		if _, err := s.companies.Get(ctx, *assignment.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("empresa", *assignment.CompanyID)
			}
			return nil, err
		}
	}
	if assignment.PointID != nil {
		if _, err := s.points.Get(ctx, *assignment.PointID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("ponto de coleta", *assignment.PointID)
			}
			return nil, err
		}
	}
	if assignment.CollectorID != nil {
		if _, err := s.collectors.Get(ctx, *assignment.CollectorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("catador", *assignment.CollectorID)
			}
			return nil, err
		}
	}

	order, err := s.orders.AssignSlots(ctx, id, assignment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("ordem de serviço", id)
		}
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes only the order. The owning request is kept, now
// orderless, matching the upstream behavior.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("ordem de serviço", id)
		}
		return err
	}
	return nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ExportOrders builds the xlsx listing for the given filter.
func (s *OrderService) ExportOrders(ctx context.Context, filter model.OrderFilter) (*ExportResult, error) {
	rows, err := s.orders.ListExportRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := model.OrderReport{
		GeneratedAt: s.now(),
		Status:      filter.Status,
		Year:        filter.Year,
		Total:       int64(len(rows)),
		Rows:        rows,
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("ordens-servico-%s.xlsx", report.GeneratedAt.Format("20060102-150405"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

// OrderDocument renders the printable PDF for one order. Assigned entities
// that have since disappeared are simply omitted from the document.
func (s *OrderService) OrderDocument(ctx context.Context, id uint) (*ExportResult, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	request, err := s.requests.Get(ctx, order.RequestID)
	if err != nil {
		return nil, err
	}

	doc := model.OrderDocument{Order: *order, Request: *request}
	if order.CompanyID != nil {
		if company, err := s.companies.Get(ctx, *order.CompanyID); err == nil {
			doc.Company = company
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if order.PointID != nil {
		if point, err := s.points.Get(ctx, *order.PointID); err == nil {
			doc.Point = point
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if order.CollectorID != nil {
		if collector, err := s.collectors.Get(ctx, *order.CollectorID); err == nil {
			doc.Collector = collector
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	content, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: order.Number + ".pdf", Content: content}, nil
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

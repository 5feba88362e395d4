package service_test

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/geocoding"
	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

// In-memory fakes for the store interfaces. They mimic the repository error
// contract: gorm.ErrRecordNotFound for missing rows, gorm.ErrDuplicatedKey
// for unique violations.

type fakeGeocoder struct {
	coords *geocoding.Coordinates
	calls  []string
}

func (g *fakeGeocoder) Resolve(_ context.Context, address string) *geocoding.Coordinates {
	g.calls = append(g.calls, address)
	return g.coords
}

type fakeRequestStore struct {
	requests map[uint]*model.CollectionRequest
	orders   *fakeOrderStore
	nextID   uint
	seq      map[int]int
}

func newFakeRequestStore(orders *fakeOrderStore) *fakeRequestStore {
	return &fakeRequestStore{
		requests: map[uint]*model.CollectionRequest{},
		orders:   orders,
		seq:      map[int]int{},
	}
}

func (f *fakeRequestStore) CreateWithOrder(_ context.Context, request *model.CollectionRequest, year int) (*model.ServiceOrder, error) {
	f.nextID++
	request.ID = f.nextID
	request.CreatedAt = time.Now()
	f.requests[request.ID] = request

	f.seq[year]++
	order := &model.ServiceOrder{
		ID:        f.orders.nextID(),
		RequestID: request.ID,
		Number:    model.FormatOrderNumber(year, f.seq[year]),
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now(),
	}
	f.orders.orders[order.ID] = order
	return order, nil
}

func (f *fakeRequestStore) Get(_ context.Context, id uint) (*model.CollectionRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (f *fakeRequestStore) GetOrderForRequest(_ context.Context, requestID uint) (*model.ServiceOrder, error) {
	for _, order := range f.orders.orders {
		if order.RequestID == requestID {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRequestStore) Update(_ context.Context, request *model.CollectionRequest) error {
	if _, ok := f.requests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.requests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.requests, id)
	for orderID, order := range f.orders.orders {
		if order.RequestID == id {
			delete(f.orders.orders, orderID)
		}
	}
	return nil
}

func (f *fakeRequestStore) List(_ context.Context, _ model.RequestFilter) ([]model.CollectionRequest, int64, error) {
	out := make([]model.CollectionRequest, 0, len(f.requests))
	for _, request := range f.requests {
		out = append(out, *request)
	}
	return out, int64(len(out)), nil
}

type fakeOrderStore struct {
	orders     map[uint]*model.ServiceOrder
	lastID     uint
	exportRows []model.OrderExportRow
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[uint]*model.ServiceOrder{}}
}

func (f *fakeOrderStore) nextID() uint {
	f.lastID++
	return f.lastID
}

func (f *fakeOrderStore) Get(_ context.Context, id uint) (*model.ServiceOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) List(_ context.Context, _ model.OrderFilter) ([]model.ServiceOrder, int64, error) {
	out := make([]model.ServiceOrder, 0, len(f.orders))
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id uint, status model.OrderStatus) (*model.ServiceOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	order.Status = status
	return order, nil
}

func (f *fakeOrderStore) AssignSlots(_ context.Context, id uint, assignment model.OrderAssignment) (*model.ServiceOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if assignment.CompanyID != nil {
		order.CompanyID = assignment.CompanyID
	}
	if assignment.PointID != nil {
		order.PointID = assignment.PointID
	}
	if assignment.CollectorID != nil {
		order.CollectorID = assignment.CollectorID
	}
	return order, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) ListExportRows(_ context.Context, _ model.OrderFilter) ([]model.OrderExportRow, error) {
	return f.exportRows, nil
}

type fakeCompanyStore struct {
	companies map[uint]*model.Company
	lastID    uint
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: map[uint]*model.Company{}}
}

func (f *fakeCompanyStore) add(company model.Company) *model.Company {
	f.lastID++
	company.ID = f.lastID
	f.companies[company.ID] = &company
	return &company
}

func (f *fakeCompanyStore) Create(_ context.Context, company *model.Company) error {
	for _, existing := range f.companies {
		if existing.CNPJ == company.CNPJ {
			return gorm.ErrDuplicatedKey
		}
	}
	f.lastID++
	company.ID = f.lastID
	company.CreatedAt = time.Now()
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyStore) Get(_ context.Context, id uint) (*model.Company, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return company, nil
}

func (f *fakeCompanyStore) List(_ context.Context, _ model.CompanyFilter) ([]model.Company, int64, error) {
	out := make([]model.Company, 0, len(f.companies))
	for _, company := range f.companies {
		out = append(out, *company)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCompanyStore) Update(_ context.Context, company *model.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.companies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyStore) CNPJExists(_ context.Context, cnpj string) (bool, error) {
	for _, company := range f.companies {
		if company.CNPJ == cnpj {
			return true, nil
		}
	}
	return false, nil
}

type fakePointStore struct {
	points map[uint]*model.CollectionPoint
	lastID uint
}

func newFakePointStore() *fakePointStore {
	return &fakePointStore{points: map[uint]*model.CollectionPoint{}}
}

func (f *fakePointStore) add(point model.CollectionPoint) *model.CollectionPoint {
	f.lastID++
	point.ID = f.lastID
	f.points[point.ID] = &point
	return &point
}

func (f *fakePointStore) Create(_ context.Context, point *model.CollectionPoint) error {
	f.lastID++
	point.ID = f.lastID
	point.CreatedAt = time.Now()
	f.points[point.ID] = point
	return nil
}

func (f *fakePointStore) Get(_ context.Context, id uint) (*model.CollectionPoint, error) {
	point, ok := f.points[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return point, nil
}

func (f *fakePointStore) List(_ context.Context, filter model.PointFilter) ([]model.CollectionPoint, int64, error) {
	out := make([]model.CollectionPoint, 0, len(f.points))
	for _, point := range f.points {
		if filter.CompanyID != nil && point.CompanyID != *filter.CompanyID {
			continue
		}
		out = append(out, *point)
	}
	return out, int64(len(out)), nil
}

func (f *fakePointStore) Update(_ context.Context, point *model.CollectionPoint) error {
	if _, ok := f.points[point.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.points[point.ID] = point
	return nil
}

func (f *fakePointStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.points[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.points, id)
	return nil
}

type fakeCollectorStore struct {
	collectors map[uint]*model.Collector
	links      map[uint][]uint
	lastID     uint
}

func newFakeCollectorStore() *fakeCollectorStore {
	return &fakeCollectorStore{
		collectors: map[uint]*model.Collector{},
		links:      map[uint][]uint{},
	}
}

func (f *fakeCollectorStore) add(collector model.Collector) *model.Collector {
	f.lastID++
	collector.ID = f.lastID
	f.collectors[collector.ID] = &collector
	return &collector
}

func (f *fakeCollectorStore) CreateWithLinks(_ context.Context, collector *model.Collector, companyIDs []uint) error {
	for _, existing := range f.collectors {
		if existing.CPF == collector.CPF {
			return gorm.ErrDuplicatedKey
		}
	}
	f.lastID++
	collector.ID = f.lastID
	collector.CreatedAt = time.Now()
	f.collectors[collector.ID] = collector
	f.links[collector.ID] = append([]uint(nil), companyIDs...)
	return nil
}

func (f *fakeCollectorStore) Get(_ context.Context, id uint) (*model.Collector, error) {
	collector, ok := f.collectors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return collector, nil
}

func (f *fakeCollectorStore) List(_ context.Context, _ model.CollectorFilter) ([]model.Collector, int64, error) {
	out := make([]model.Collector, 0, len(f.collectors))
	for _, collector := range f.collectors {
		out = append(out, *collector)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCollectorStore) Update(_ context.Context, collector *model.Collector) error {
	if _, ok := f.collectors[collector.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.collectors[collector.ID] = collector
	return nil
}

func (f *fakeCollectorStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.collectors[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.collectors, id)
	return nil
}

func (f *fakeCollectorStore) CPFExists(_ context.Context, cpf string) (bool, error) {
	for _, collector := range f.collectors {
		if collector.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

type pair struct{ collectorID, companyID uint }

type fakeMembershipStore struct {
	linked     map[pair]bool
	companies  *fakeCompanyStore
	collectors *fakeCollectorStore
}

func newFakeMembershipStore(companies *fakeCompanyStore, collectors *fakeCollectorStore) *fakeMembershipStore {
	return &fakeMembershipStore{
		linked:     map[pair]bool{},
		companies:  companies,
		collectors: collectors,
	}
}

func (f *fakeMembershipStore) Link(_ context.Context, collectorID, companyID uint) error {
	key := pair{collectorID, companyID}
	if f.linked[key] {
		return gorm.ErrDuplicatedKey
	}
	f.linked[key] = true
	return nil
}

func (f *fakeMembershipStore) Unlink(_ context.Context, collectorID, companyID uint) error {
	key := pair{collectorID, companyID}
	if !f.linked[key] {
		return gorm.ErrRecordNotFound
	}
	delete(f.linked, key)
	return nil
}

func (f *fakeMembershipStore) CompaniesForCollector(_ context.Context, collectorID uint) ([]model.Company, error) {
	var out []model.Company
	for key := range f.linked {
		if key.collectorID != collectorID {
			continue
		}
		if company, ok := f.companies.companies[key.companyID]; ok {
			out = append(out, *company)
		}
	}
	return out, nil
}

func (f *fakeMembershipStore) CollectorsForCompany(_ context.Context, companyID uint) ([]model.Collector, error) {
	var out []model.Collector
	for key := range f.linked {
		if key.companyID != companyID {
			continue
		}
		if collector, ok := f.collectors.collectors[key.collectorID]; ok {
			out = append(out, *collector)
		}
	}
	return out, nil
}

type fakeExcel struct {
	lastReport model.OrderReport
}

func (f *fakeExcel) Generate(report model.OrderReport) ([]byte, error) {
	f.lastReport = report
	return []byte("xlsx-content"), nil
}

type fakePDF struct {
	lastDoc model.OrderDocument
}

func (f *fakePDF) Generate(doc model.OrderDocument) ([]byte, error) {
	f.lastDoc = doc
	return []byte("pdf-content"), nil
}

// orderFixture wires an OrderService over the fakes.
type orderFixture struct {
	requests   *fakeRequestStore
	orders     *fakeOrderStore
	companies  *fakeCompanyStore
	points     *fakePointStore
	collectors *fakeCollectorStore
	geocoder   *fakeGeocoder
	excel      *fakeExcel
	pdf        *fakePDF
	svc        *service.OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:     newFakeOrderStore(),
		companies:  newFakeCompanyStore(),
		points:     newFakePointStore(),
		collectors: newFakeCollectorStore(),
		geocoder:   &fakeGeocoder{},
		excel:      &fakeExcel{},
		pdf:        &fakePDF{},
	}
	f.requests = newFakeRequestStore(f.orders)
	f.svc = service.NewOrderService(
		f.requests, f.orders, f.companies, f.points, f.collectors,
		f.geocoder, f.excel, f.pdf, zerolog.Nop(),
	)
	return f
}

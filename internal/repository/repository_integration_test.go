package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devsdeimpacto/coleta-service/internal/db"
	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/repository"
)

// RepositoryIntegrationTestSuite runs the repositories against a real
// PostgreSQL container: numbering under concurrency, cascades and the SET
// NULL behavior of the assignment slots are all database semantics that
// fakes cannot exercise.
type RepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	requests   *repository.RequestRepository
	orders     *repository.OrderRepository
	companies  *repository.CompanyRepository
	points     *repository.PointRepository
	collectors *repository.CollectorRepository
	members    *repository.MembershipRepository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("coleta_test"),
		postgres.WithUsername("coleta"),
		postgres.WithPassword("coleta"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	database, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.db = database

	s.Require().NoError(db.Migrate(database))

	s.requests = repository.NewRequestRepository(database)
	s.orders = repository.NewOrderRepository(database)
	s.companies = repository.NewCompanyRepository(database)
	s.points = repository.NewPointRepository(database)
	s.collectors = repository.NewCollectorRepository(database)
	s.members = repository.NewMembershipRepository(database)
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(`
		TRUNCATE TABLE catadores_empresas, ordens_servico, solicitacoes_coleta,
			pontos_coleta, catadores, empresas, os_counters
		RESTART IDENTITY CASCADE
	`).Error)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RepositoryIntegrationTestSuite) createRequest(name string) (*model.CollectionRequest, *model.ServiceOrder) {
	request := &model.CollectionRequest{
		RequesterName: name,
		PersonType:    model.PersonTypeIndividual,
		Document:      "12345678901",
		Email:         "maria@example.com",
		WhatsApp:      "+5511999990000",
		ItemCount:     3,
		MaterialType:  "eletrônicos",
		Address:       "Rua das Flores, 100, São Paulo",
	}
	order, err := s.requests.CreateWithOrder(context.Background(), request, time.Now().Year())
	s.Require().NoError(err)
	return request, order
}

func (s *RepositoryIntegrationTestSuite) createCompany(cnpj string) *model.Company {
	company := &model.Company{
		Name:    "EcoRecicla",
		CNPJ:    cnpj,
		Address: "Rua Verde, 10, Curitiba",
		Phone:   "+5541333330000",
		Email:   "contato@ecorecicla.com.br",
		Status:  model.CompanyStatusActive,
	}
	s.Require().NoError(s.companies.Create(context.Background(), company))
	return company
}

func (s *RepositoryIntegrationTestSuite) createCollector(cpf string) *model.Collector {
	collector := &model.Collector{
		Name:   "João Lima",
		CPF:    cpf,
		Phone:  "+5511988880000",
		Status: model.CollectorStatusActive,
	}
	s.Require().NoError(s.collectors.CreateWithLinks(context.Background(), collector, nil))
	return collector
}

func (s *RepositoryIntegrationTestSuite) TestCreateWithOrder_SequentialNumbers() {
	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		_, order := s.createRequest(fmt.Sprintf("Solicitante %d", i))
		s.Equal(model.FormatOrderNumber(year, i), order.Number)
		s.Equal(model.OrderStatusPending, order.Status)
	}
}

func (s *RepositoryIntegrationTestSuite) TestCreateWithOrder_ConcurrentNumbersUnique() {
	const workers = 10
	ctx := context.Background()
	year := time.Now().Year()

	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			request := &model.CollectionRequest{
				RequesterName: "Concorrente",
				PersonType:    model.PersonTypeIndividual,
				Document:      "12345678901",
				Email:         "c@example.com",
				WhatsApp:      "+5511999990000",
				ItemCount:     1,
				MaterialType:  "metais",
				Address:       "Rua A, 1",
			}
			order, err := s.requests.CreateWithOrder(ctx, request, year)
			if err == nil {
				numbers <- order.Number
			} else {
				numbers <- "error: " + err.Error()
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for number := range numbers {
		s.False(seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	s.Len(seen, workers)
	s.True(seen[model.FormatOrderNumber(year, workers)])
}

func (s *RepositoryIntegrationTestSuite) TestNumberNotReusedAfterOrderDelete() {
	ctx := context.Background()
	year := time.Now().Year()

	_, first := s.createRequest("Primeira")
	s.Equal(model.FormatOrderNumber(year, 1), first.Number)

	s.Require().NoError(s.orders.Delete(ctx, first.ID))

	_, second := s.createRequest("Segunda")
	s.Equal(model.FormatOrderNumber(year, 2), second.Number)
}

func (s *RepositoryIntegrationTestSuite) TestCounterSeededFromLegacyOrders() {
	year := time.Now().Year()

	// A database migrated before the counter table was introduced: orders
	// exist but os_counters is empty.
	s.Require().NoError(s.db.Exec(`
		INSERT INTO solicitacoes_coleta
			(nome_solicitante, tipo_pessoa, documento, email, whatsapp, quantidade_itens, tipo_material, endereco)
		VALUES ('Legado', 'PF', '12345678901', 'l@example.com', '+5511999990000', 1, 'papel', 'Rua B, 2')
	`).Error)
	s.Require().NoError(s.db.Exec(
		`INSERT INTO ordens_servico (solicitacao_id, numero_os, status) VALUES (1, ?, 'PENDENTE')`,
		model.FormatOrderNumber(year, 7),
	).Error)

	s.Require().NoError(db.Migrate(s.db))

	_, order := s.createRequest("Pós-migração")
	s.Equal(model.FormatOrderNumber(year, 8), order.Number)
}

func (s *RepositoryIntegrationTestSuite) TestDeleteRequest_CascadesOrder() {
	ctx := context.Background()
	request, order := s.createRequest("Maria Souza")

	s.Require().NoError(s.requests.Delete(ctx, request.ID))

	_, err := s.orders.Get(ctx, order.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestDeleteOrder_KeepsRequest() {
	ctx := context.Background()
	request, order := s.createRequest("Maria Souza")

	s.Require().NoError(s.orders.Delete(ctx, order.ID))

	_, err := s.requests.Get(ctx, request.ID)
	s.NoError(err)
	_, err = s.requests.GetOrderForRequest(ctx, request.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryIntegrationTestSuite) TestCompanyDelete_CascadesPointsAndClearsSlot() {
	ctx := context.Background()
	company := s.createCompany("11222333000144")

	point := &model.CollectionPoint{
		CompanyID:    company.ID,
		Name:         "Ponto Centro",
		Address:      "Praça Central, 1",
		OpeningHours: "08:00-18:00",
		Phone:        "+5541333331111",
		Status:       model.PointStatusOpen,
	}
	s.Require().NoError(s.points.Create(ctx, point))

	_, order := s.createRequest("Maria Souza")
	_, err := s.orders.AssignSlots(ctx, order.ID, model.OrderAssignment{
		CompanyID: &company.ID,
		PointID:   &point.ID,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.companies.Delete(ctx, company.ID))

	_, err = s.points.Get(ctx, point.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	current, err := s.orders.Get(ctx, order.ID)
	s.Require().NoError(err)
	s.Nil(current.CompanyID)
	s.Nil(current.PointID)
}

func (s *RepositoryIntegrationTestSuite) TestCollectorDelete_ClearsSlotAndLinks() {
	ctx := context.Background()
	company := s.createCompany("11222333000144")
	collector := s.createCollector("98765432100")
	s.Require().NoError(s.members.Link(ctx, collector.ID, company.ID))

	_, order := s.createRequest("Maria Souza")
	_, err := s.orders.AssignSlots(ctx, order.ID, model.OrderAssignment{CollectorID: &collector.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.collectors.Delete(ctx, collector.ID))

	current, err := s.orders.Get(ctx, order.ID)
	s.Require().NoError(err)
	s.Nil(current.CollectorID)

	collectors, err := s.members.CollectorsForCompany(ctx, company.ID)
	s.Require().NoError(err)
	s.Empty(collectors)
}

func (s *RepositoryIntegrationTestSuite) TestMembership_LinkUnlink() {
	ctx := context.Background()
	company := s.createCompany("11222333000144")
	collector := s.createCollector("98765432100")

	s.Require().NoError(s.members.Link(ctx, collector.ID, company.ID))
	s.ErrorIs(s.members.Link(ctx, collector.ID, company.ID), gorm.ErrDuplicatedKey)

	companies, err := s.members.CompaniesForCollector(ctx, collector.ID)
	s.Require().NoError(err)
	s.Len(companies, 1)

	s.Require().NoError(s.members.Unlink(ctx, collector.ID, company.ID))
	s.ErrorIs(s.members.Unlink(ctx, collector.ID, company.ID), gorm.ErrRecordNotFound)

	s.Require().NoError(s.members.Link(ctx, collector.ID, company.ID))
}

func (s *RepositoryIntegrationTestSuite) TestCompanyCNPJUnique() {
	ctx := context.Background()
	s.createCompany("11222333000144")

	duplicate := &model.Company{
		Name:    "Outra Empresa",
		CNPJ:    "11222333000144",
		Address: "Rua Azul, 20",
		Phone:   "+5541333332222",
		Email:   "outra@example.com",
		Status:  model.CompanyStatusActive,
	}
	s.ErrorIs(s.companies.Create(ctx, duplicate), gorm.ErrDuplicatedKey)
}

func (s *RepositoryIntegrationTestSuite) TestCollectorCPFUnique() {
	ctx := context.Background()
	s.createCollector("98765432100")

	duplicate := &model.Collector{
		Name:   "Outro João",
		CPF:    "98765432100",
		Phone:  "+5511988881111",
		Status: model.CollectorStatusActive,
	}
	s.ErrorIs(s.collectors.CreateWithLinks(ctx, duplicate, nil), gorm.ErrDuplicatedKey)
}

func (s *RepositoryIntegrationTestSuite) TestListOrders_StatusAndYearFilter() {
	ctx := context.Background()
	year := time.Now().Year()

	_, first := s.createRequest("Primeira")
	s.createRequest("Segunda")

	_, err := s.orders.UpdateStatus(ctx, first.ID, model.OrderStatusCompleted)
	s.Require().NoError(err)

	completed := model.OrderStatusCompleted
	orders, total, err := s.orders.List(ctx, model.OrderFilter{Status: &completed})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(orders, 1)
	s.Equal(first.Number, orders[0].Number)

	otherYear := year - 1
	_, total, err = s.orders.List(ctx, model.OrderFilter{Year: &otherYear})
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *RepositoryIntegrationTestSuite) TestListExportRows() {
	ctx := context.Background()
	company := s.createCompany("11222333000144")
	_, order := s.createRequest("Maria Souza")
	_, err := s.orders.AssignSlots(ctx, order.ID, model.OrderAssignment{CompanyID: &company.ID})
	s.Require().NoError(err)
	s.createRequest("João Lima")

	rows, err := s.orders.ListExportRows(ctx, model.OrderFilter{})
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal(order.Number, rows[0].Number)
	s.Equal("Maria Souza", rows[0].RequesterName)
	s.Require().NotNil(rows[0].CompanyName)
	s.Equal("EcoRecicla", *rows[0].CompanyName)
	s.Nil(rows[1].CompanyName)
}

func TestRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}

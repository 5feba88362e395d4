package service_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsdeimpacto/coleta-service/internal/model"
	"github.com/devsdeimpacto/coleta-service/internal/service"
)

type membershipFixture struct {
	members    *fakeMembershipStore
	companies  *fakeCompanyStore
	collectors *fakeCollectorStore
	svc        *service.MembershipService
}

func newMembershipFixture() *membershipFixture {
	f := &membershipFixture{
		companies:  newFakeCompanyStore(),
		collectors: newFakeCollectorStore(),
	}
	f.members = newFakeMembershipStore(f.companies, f.collectors)
	f.svc = service.NewMembershipService(f.members, f.collectors, f.companies, zerolog.Nop())
	return f
}

func (f *membershipFixture) seed() (*model.Collector, *model.Company) {
	collector := f.collectors.add(model.Collector{Name: "João Lima", CPF: "98765432100"})
	company := f.companies.add(model.Company{Name: "EcoRecicla", CNPJ: "11222333000144"})
	return collector, company
}

func TestLink(t *testing.T) {
	f := newMembershipFixture()
	collector, company := f.seed()

	require.NoError(t, f.svc.Link(t.Context(), collector.ID, company.ID))

	companies, err := f.svc.CompaniesForCollector(t.Context(), collector.ID)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "EcoRecicla", companies[0].Name)

	collectors, err := f.svc.CollectorsForCompany(t.Context(), company.ID)
	require.NoError(t, err)
	require.Len(t, collectors, 1)
	assert.Equal(t, "João Lima", collectors[0].Name)
}

func TestLink_AlreadyLinked(t *testing.T) {
	f := newMembershipFixture()
	collector, company := f.seed()

	require.NoError(t, f.svc.Link(t.Context(), collector.ID, company.ID))

	err := f.svc.Link(t.Context(), collector.ID, company.ID)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestLink_MissingCollector(t *testing.T) {
	f := newMembershipFixture()
	_, company := f.seed()

	err := f.svc.Link(t.Context(), 99, company.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Contains(t, err.Error(), "catador")
}

func TestLink_MissingCompany(t *testing.T) {
	f := newMembershipFixture()
	collector, _ := f.seed()

	err := f.svc.Link(t.Context(), collector.ID, 99)
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Contains(t, err.Error(), "empresa")
}

func TestUnlink(t *testing.T) {
	f := newMembershipFixture()
	collector, company := f.seed()
	require.NoError(t, f.svc.Link(t.Context(), collector.ID, company.ID))

	require.NoError(t, f.svc.Unlink(t.Context(), collector.ID, company.ID))

	companies, err := f.svc.CompaniesForCollector(t.Context(), collector.ID)
	require.NoError(t, err)
	assert.Empty(t, companies)
}

func TestUnlink_NotLinked(t *testing.T) {
	f := newMembershipFixture()
	collector, company := f.seed()

	err := f.svc.Unlink(t.Context(), collector.ID, company.ID)
	assert.ErrorIs(t, err, service.ErrLinkNotFound)
	assert.NotErrorIs(t, err, service.ErrNotFound)
}

func TestRelinkAfterUnlink(t *testing.T) {
	f := newMembershipFixture()
	collector, company := f.seed()

	require.NoError(t, f.svc.Link(t.Context(), collector.ID, company.ID))
	require.NoError(t, f.svc.Unlink(t.Context(), collector.ID, company.ID))
	require.NoError(t, f.svc.Link(t.Context(), collector.ID, company.ID))

	companies, err := f.svc.CompaniesForCollector(t.Context(), collector.ID)
	require.NoError(t, err)
	assert.Len(t, companies, 1)
}

func TestCompaniesForCollector_MissingCollector(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.svc.CompaniesForCollector(t.Context(), 99)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCollectorsForCompany_MissingCompany(t *testing.T) {
	f := newMembershipFixture()

	_, err := f.svc.CollectorsForCompany(t.Context(), 99)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLink_IndependentPairs(t *testing.T) {
	f := newMembershipFixture()
	collector, company := f.seed()
	other := f.companies.add(model.Company{Name: "Recicla Sul", CNPJ: "55444333000122"})

	require.NoError(t, f.svc.Link(t.Context(), collector.ID, company.ID))
	require.NoError(t, f.svc.Link(t.Context(), collector.ID, other.ID))

	companies, err := f.svc.CompaniesForCollector(t.Context(), collector.ID)
	require.NoError(t, err)
	assert.Len(t, companies, 2)

	require.NoError(t, f.svc.Unlink(t.Context(), collector.ID, company.ID))

	companies, err = f.svc.CompaniesForCollector(t.Context(), collector.ID)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Recicla Sul", companies[0].Name)
}

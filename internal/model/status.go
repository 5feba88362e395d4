package model

import "fmt"

// Persisted enum values follow the database contract and are never translated.

type PersonType string

const (
	PersonTypeIndividual   PersonType = "PF"
	PersonTypeOrganization PersonType = "PJ"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDENTE"
	OrderStatusInProgress OrderStatus = "EM_ANDAMENTO"
	OrderStatusCompleted  OrderStatus = "CONCLUIDA"
	OrderStatusCancelled  OrderStatus = "CANCELADA"
)

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ATIVA"
	CompanyStatusInactive CompanyStatus = "INATIVA"
)

type PointStatus string

const (
	PointStatusOpen   PointStatus = "ABERTO"
	PointStatusClosed PointStatus = "FECHADO"
)

type CollectorStatus string

const (
	CollectorStatusActive   CollectorStatus = "ATIVO"
	CollectorStatusInactive CollectorStatus = "INATIVO"
)

func ParsePersonType(raw string) (PersonType, error) {
	switch PersonType(raw) {
	case PersonTypeIndividual, PersonTypeOrganization:
		return PersonType(raw), nil
	default:
		return "", fmt.Errorf("unknown tipo_pessoa %q", raw)
	}
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown order status %q", raw)
	}
}

func ParseCompanyStatus(raw string) (CompanyStatus, error) {
	switch CompanyStatus(raw) {
	case CompanyStatusActive, CompanyStatusInactive:
		return CompanyStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown company status %q", raw)
	}
}

func ParsePointStatus(raw string) (PointStatus, error) {
	switch PointStatus(raw) {
	case PointStatusOpen, PointStatusClosed:
		return PointStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown collection point status %q", raw)
	}
}

func ParseCollectorStatus(raw string) (CollectorStatus, error) {
	switch CollectorStatus(raw) {
	case CollectorStatusActive, CollectorStatusInactive:
		return CollectorStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown collector status %q", raw)
	}
}

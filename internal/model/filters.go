package model

import "time"

// Listing filters. Nil fields are not applied. Limit falls back to a default
// page size in the repositories when zero.

type RequestFilter struct {
	PersonType   *PersonType
	MaterialType *string
	Limit        int
	Offset       int
}

type OrderFilter struct {
	Status *OrderStatus
	Year   *int
	Limit  int
	Offset int
}

type CompanyFilter struct {
	Status *CompanyStatus
	Limit  int
	Offset int
}

type PointFilter struct {
	Status    *PointStatus
	CompanyID *uint
	Limit     int
	Offset    int
}

type CollectorFilter struct {
	Status    *CollectorStatus
	CompanyID *uint
	Limit     int
	Offset    int
}

// OrderExportRow is one line of the xlsx export: the order joined with its
// request and the names of whatever is assigned.
type OrderExportRow struct {
	Number        string
	Status        OrderStatus
	RequesterName string
	MaterialType  string
	ItemCount     int
	Address       string
	CompanyName   *string
	PointName     *string
	CollectorName *string
	CreatedAt     time.Time
}

type OrderReport struct {
	GeneratedAt time.Time
	Status      *OrderStatus
	Year        *int
	Total       int64
	Rows        []OrderExportRow
}

// OrderDocument carries everything the printable service-order PDF needs.
type OrderDocument struct {
	Order     ServiceOrder
	Request   CollectionRequest
	Company   *Company
	Point     *CollectionPoint
	Collector *Collector
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePricing_FullPackage(t *testing.T) {
	stay := &Resource{Type: ResourceStay, UnitPrice: 100}
	transport := &Resource{Type: ResourceTransportation, UnitPrice: 40}
	sightseeings := []*Resource{
		{Type: ResourceSightseeing, UnitPrice: 25},
		{Type: ResourceSightseeing, UnitPrice: 15},
	}

	p := CalculatePricing(stay, transport, sightseeings, 3, 4)

	assert.Equal(t, 400.0, p.StayTotal)           // 100 * 4 ночи
	assert.Equal(t, 160.0, p.TransportationTotal) // 40 * 4 дня
	assert.Equal(t, 120.0, p.SightseeingTotal)    // (25 + 15) * 3 человека
	assert.Equal(t, 680.0, p.GrandTotal)
}

func TestCalculatePricing_StayOnly(t *testing.T) {
	stay := &Resource{Type: ResourceStay, UnitPrice: 80}

	p := CalculatePricing(stay, nil, nil, 2, 3)

	assert.Equal(t, 240.0, p.StayTotal)
	assert.Zero(t, p.TransportationTotal)
	assert.Zero(t, p.SightseeingTotal)
	assert.Equal(t, 240.0, p.GrandTotal)
}

func TestCalculatePricing_Deterministic(t *testing.T) {
	stay := &Resource{Type: ResourceStay, UnitPrice: 123.45}
	transport := &Resource{Type: ResourceTransportation, UnitPrice: 67.89}
	sightseeings := []*Resource{{Type: ResourceSightseeing, UnitPrice: 9.99}}

	first := CalculatePricing(stay, transport, sightseeings, 5, 7)
	second := CalculatePricing(stay, transport, sightseeings, 5, 7)

	assert.Equal(t, first, second)
}

func TestCalculatePricing_SkipsNilSightseeings(t *testing.T) {
	stay := &Resource{Type: ResourceStay, UnitPrice: 50}
	sightseeings := []*Resource{nil, {Type: ResourceSightseeing, UnitPrice: 10}}

	p := CalculatePricing(stay, nil, sightseeings, 2, 1)

	assert.Equal(t, 20.0, p.SightseeingTotal)
	assert.Equal(t, 70.0, p.GrandTotal)
}

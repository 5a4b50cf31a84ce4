package domain

// Pricing is the computed price breakdown snapshot stored on a booking
type Pricing struct {
	StayTotal           float64
	TransportationTotal float64
	SightseeingTotal    float64
	GrandTotal          float64
}

// CalculatePricing computes the price breakdown for a resource selection.
// Pure function: identical inputs always produce an identical breakdown.
// Пересчитывается на сервере при создании и любом изменении состава, дат или
// количества гостей; значения из клиентского запроса никогда не используются.
//
//   - stayTotal = stay.UnitPrice (за ночь) × numberOfDays
//   - transportationTotal = transportation.UnitPrice (за день) × numberOfDays, если транспорт выбран
//   - sightseeingTotal = Σ sight.UnitPrice (за человека) × numberOfPeople
//   - grandTotal = сумма трех составляющих
func CalculatePricing(stay *Resource, transportation *Resource, sightseeings []*Resource, numberOfPeople, numberOfDays int) Pricing {
	p := Pricing{}

	if stay != nil {
		p.StayTotal = stay.UnitPrice * float64(numberOfDays)
	}

	if transportation != nil {
		p.TransportationTotal = transportation.UnitPrice * float64(numberOfDays)
	}

	for _, sight := range sightseeings {
		if sight == nil {
			continue
		}
		p.SightseeingTotal += sight.UnitPrice * float64(numberOfPeople)
	}

	p.GrandTotal = p.StayTotal + p.TransportationTotal + p.SightseeingTotal

	return p
}

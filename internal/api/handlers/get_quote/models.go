package get_quote

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	getQuote "github.com/m04kA/TTA-BookingService/internal/usecase/get_quote"
	"github.com/m04kA/TTA-BookingService/pkg/types"
)

// PricingResponse разбивка стоимости пакета
type PricingResponse struct {
	StayTotal           float64 `json:"stayTotal"`
	TransportationTotal float64 `json:"transportationTotal"`
	SightseeingTotal    float64 `json:"sightseeingTotal"`
	GrandTotal          float64 `json:"grandTotal"`
}

// QuoteResponse HTTP response model
// Котировка справочная и ничего не резервирует
type QuoteResponse struct {
	Available    bool             `json:"available"`
	Reason       string           `json:"reason,omitempty"`
	NumberOfDays int              `json:"numberOfDays"`
	Pricing      *PricingResponse `json:"pricing,omitempty"`
}

// parseQuery разбирает query-параметры GET /quote в модель use case
func parseQuery(query url.Values) (*getQuote.Request, error) {
	stayID, err := strconv.ParseInt(query.Get("stayId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stayId")
	}

	req := &getQuote.Request{StayID: stayID}

	if raw := query.Get("transportationId"); raw != "" {
		transportationID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid transportationId")
		}
		req.TransportationID = &transportationID
	}

	if raw := query.Get("sightseeingIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid sightseeingIds")
			}
			req.SightseeingIDs = append(req.SightseeingIDs, id)
		}
	}

	checkIn, err := types.DateString(query.Get("checkIn")).Time()
	if err != nil {
		return nil, fmt.Errorf("invalid checkIn")
	}
	req.CheckIn = checkIn

	checkOut, err := types.DateString(query.Get("checkOut")).Time()
	if err != nil {
		return nil, fmt.Errorf("invalid checkOut")
	}
	req.CheckOut = checkOut

	people, err := strconv.Atoi(query.Get("numberOfPeople"))
	if err != nil {
		return nil, fmt.Errorf("invalid numberOfPeople")
	}
	req.NumberOfPeople = people

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	out := &QuoteResponse{
		Available:    resp.Available,
		Reason:       resp.Reason,
		NumberOfDays: resp.NumberOfDays,
	}

	if resp.Pricing != nil {
		out.Pricing = &PricingResponse{
			StayTotal:           resp.Pricing.StayTotal,
			TransportationTotal: resp.Pricing.TransportationTotal,
			SightseeingTotal:    resp.Pricing.SightseeingTotal,
			GrandTotal:          resp.Pricing.GrandTotal,
		}
	}

	return out
}

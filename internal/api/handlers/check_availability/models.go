package check_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	checkAvailability "github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
	"github.com/m04kA/TTA-BookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// parseQuery разбирает query-параметры GET /availability в модель use case
//
//	stayId=1&transportationId=2&sightseeingIds=3,4&checkIn=2026-07-01&checkOut=2026-07-05&numberOfPeople=2
func parseQuery(query url.Values) (*checkAvailability.Request, error) {
	stayID, err := strconv.ParseInt(query.Get("stayId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stayId")
	}

	req := &checkAvailability.Request{StayID: stayID}

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

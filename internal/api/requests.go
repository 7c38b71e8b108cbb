package api

import (
	"fmt"
	"time"

	"github.com/tailtown/pricingservice/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDate parses an ISO calendar date, returning a typed invalid-input
// error instead of letting a malformed value flow into the calculators.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewInvalidInputError(
			fmt.Sprintf("%s is not a valid date", field), value)
	}
	return t, nil
}

// todayUTC is the server's current calendar date at UTC midnight,
// matching the precision of the parsed request dates.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type depositQuoteRequest struct {
	TotalCost         float64 `json:"total_cost"`
	ServiceID         string  `json:"service_id,omitempty"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Today             string  `json:"today,omitempty"`
	FirstTimeCustomer bool    `json:"first_time_customer,omitempty"`
}

// bookingContext validates the request dates and assembles the matcher
// input. Today defaults to the server's current date.
func (req depositQuoteRequest) bookingContext() (domain.BookingContext, error) {
	if req.TotalCost < 0 {
		return domain.BookingContext{}, domain.NewInvalidInputError(
			"total_cost must not be negative", fmt.Sprintf("%v", req.TotalCost))
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return domain.BookingContext{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return domain.BookingContext{}, err
	}
	if end.Before(start) {
		return domain.BookingContext{}, domain.NewInvalidInputError(
			"end_date precedes start_date", fmt.Sprintf("%s..%s", req.StartDate, req.EndDate))
	}

	today := todayUTC()
	if req.Today != "" {
		if today, err = parseDate("today", req.Today); err != nil {
			return domain.BookingContext{}, err
		}
	}

	return domain.BookingContext{
		TotalCost:         req.TotalCost,
		ServiceID:         req.ServiceID,
		StartDate:         start,
		EndDate:           end,
		Today:             today,
		FirstTimeCustomer: req.FirstTimeCustomer,
	}, nil
}

type refundQuoteRequest struct {
	DepositAmount float64 `json:"deposit_amount"`
	StartDate     string  `json:"start_date"`
	CancelDate    string  `json:"cancel_date,omitempty"`
}

func (req refundQuoteRequest) dates() (start, cancel time.Time, err error) {
	if req.DepositAmount < 0 {
		return time.Time{}, time.Time{}, domain.NewInvalidInputError(
			"deposit_amount must not be negative", fmt.Sprintf("%v", req.DepositAmount))
	}
	start, err = parseDate("start_date", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	cancel = todayUTC()
	if req.CancelDate != "" {
		if cancel, err = parseDate("cancel_date", req.CancelDate); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, cancel, nil
}

type multiPetQuoteRequest struct {
	SuiteType    string `json:"suite_type"`
	NumberOfPets int    `json:"number_of_pets"`
}

func (req multiPetQuoteRequest) validate() error {
	if req.SuiteType == "" {
		return domain.NewInvalidInputError("suite_type is required", "")
	}
	return nil
}

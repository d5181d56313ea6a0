package models

// Totals суммарные показатели группы бронирований
type Totals struct {
	Bookings     int   `json:"bookings"`
	Passengers   int   `json:"passengers"` // взрослые + дети, без младенцев
	Adults       int   `json:"adults"`
	Children     int   `json:"children"`
	Infants      int   `json:"infants"`
	Wheelchairs  int   `json:"wheelchairs"`
	Seats        int   `json:"seats"`
	RevenueCents int64 `json:"revenueCents"`
}

// PeriodTotals показатели за месяц или день
type PeriodTotals struct {
	Period string `json:"period"` // "2026-07" или "2026-07-01"
	Totals
}

// SlotSeries показатели одного отправления (тип тура + время) за период.
// Occurrences число различных дат с бронированиями, средние считаются на одно отправление.
type SlotSeries struct {
	TourType             string  `json:"tourType"`
	Time                 string  `json:"time"`
	Occurrences          int     `json:"occurrences"`
	Bookings             int     `json:"bookings"`
	Passengers           int     `json:"passengers"`
	RevenueCents         int64   `json:"revenueCents"`
	AvgPassengers        float64 `json:"avgPassengers"`
	AvgRevenueCents      float64 `json:"avgRevenueCents"`
	AvgBookingSize       float64 `json:"avgBookingSize"`
	StaffedCapacity      int     `json:"staffedCapacity"`
	OccupancyRate        float64 `json:"occupancyRate"`
	OccupancyRatePercent float64 `json:"occupancyRatePercent"`
}

// StatisticsResponse отчет по подтвержденным бронированиям за период
type StatisticsResponse struct {
	From            string            `json:"from"`
	To              string            `json:"to"`
	Totals          Totals            `json:"totals"`
	ByTourType      map[string]Totals `json:"byTourType"`
	ByPaymentMethod map[string]Totals `json:"byPaymentMethod"`
	ByMonth         []PeriodTotals    `json:"byMonth"`
	ByDay           []PeriodTotals    `json:"byDay"`
	Slots           []SlotSeries      `json:"slots"`
}

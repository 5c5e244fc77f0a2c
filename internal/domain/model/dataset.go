package model

import "time"

// Metadata describes user registration state in the dataspace.
type Metadata struct {
	Identifier    string
	DataAvailable bool
}

// MeasurementPoint is a single EWH load sample.
type MeasurementPoint struct {
	Timestamp time.Time `json:"timestamp"`
	LoadW     float64   `json:"load_w"`
}

// MeasurementSeries is the EWH load diagram fetched from the dataspace.
type MeasurementSeries []MeasurementPoint

// TariffPoint is an electricity price sample.
type TariffPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	PricePerKWh float64   `json:"price_per_kwh"`
}

// TariffSchedule is the electricity pricing profile for the user.
type TariffSchedule []TariffPoint

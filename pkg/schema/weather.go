package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Weather is the payload of the current conditions tool
type Weather struct {
	City          string `json:"city"`
	Country       string `json:"country"`
	Region        string `json:"region"`
	Temperature   string `json:"temperature"`
	FeelsLike     string `json:"feels_like"`
	Description   string `json:"description"`
	Humidity      string `json:"humidity"`
	Pressure      string `json:"pressure"`
	WindSpeed     string `json:"wind_speed"`
	WindDirection string `json:"wind_direction"`
	Visibility    string `json:"visibility"`
	UVIndex       string `json:"uv_index"`
	LocalTime     string `json:"local_time"`
}

// Forecast is the payload of the forecast tool
type Forecast struct {
	City     string        `json:"city"`
	Country  string        `json:"country"`
	Forecast []ForecastDay `json:"forecast"`
}

// ForecastDay is a single day in a forecast
type ForecastDay struct {
	Date        string `json:"date"`
	MaxTemp     string `json:"max_temp"`
	MinTemp     string `json:"min_temp"`
	Description string `json:"description"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	UVIndex     string `json:"uv_index"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (w Weather) String() string {
	return types.Stringify(w)
}

func (f Forecast) String() string {
	return types.Stringify(f)
}

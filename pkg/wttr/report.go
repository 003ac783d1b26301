package wttr

import (
	"encoding/json"
	"fmt"

	// Packages
	schema "github.com/mutablelogic/go-assistant/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES - wttr.in j1 wire format
//
// All scalar values in the document are encoded as strings.

// Report is the j1 document returned for a location
type Report struct {
	CurrentCondition []Condition `json:"current_condition"`
	NearestArea      []Area      `json:"nearest_area"`
	Weather          []Day       `json:"weather"`
}

// Condition is an observation of current conditions
type Condition struct {
	TempC            text    `json:"temp_C"`
	TempF            text    `json:"temp_F"`
	FeelsLikeC       text    `json:"FeelsLikeC"`
	FeelsLikeF       text    `json:"FeelsLikeF"`
	WeatherDesc      []value `json:"weatherDesc"`
	Humidity         text    `json:"humidity"`
	Pressure         text    `json:"pressure"`
	WindspeedKmph    text    `json:"windspeedKmph"`
	Winddir16Point   text    `json:"winddir16Point"`
	Visibility       text    `json:"visibility"`
	UVIndex          text    `json:"uvIndex"`
	LocalObsDateTime text    `json:"localObsDateTime"`
}

// Area is the location nearest to the query
type Area struct {
	AreaName []value `json:"areaName"`
	Country  []value `json:"country"`
	Region   []value `json:"region"`
}

// Day is one day of forecast
type Day struct {
	Date      text        `json:"date"`
	MaxTempC  text        `json:"maxtempC"`
	MaxTempF  text        `json:"maxtempF"`
	MinTempC  text        `json:"mintempC"`
	MinTempF  text        `json:"mintempF"`
	UVIndex   text        `json:"uvIndex"`
	Astronomy []Astronomy `json:"astronomy"`
	Hourly    []Hour      `json:"hourly"`
}

// Astronomy holds sunrise and sunset times for a day
type Astronomy struct {
	Sunrise text `json:"sunrise"`
	Sunset  text `json:"sunset"`
}

// Hour is one three-hourly slot of a forecast day
type Hour struct {
	WeatherDesc []value `json:"weatherDesc"`
}

type value struct {
	Value text `json:"value"`
}

// text is a scalar which records whether it was present in the document
type text struct {
	Value string
	Set   bool
}

// parser records the first key missing from a document
type parser struct {
	missing string
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Current returns the current conditions for the nearest area
func (r *Report) Current() (schema.Weather, error) {
	var p parser
	current := index(&p, "current_condition", r.CurrentCondition, 0)
	area := index(&p, "nearest_area", r.NearestArea, 0)
	if p.missing != "" {
		return schema.Weather{}, p.err()
	}

	weather := schema.Weather{
		City:          p.first("areaName", area.AreaName),
		Country:       p.first("country", area.Country),
		Region:        p.first("region", area.Region),
		Temperature:   p.degrees("temp_C", current.TempC, "temp_F", current.TempF),
		FeelsLike:     p.degrees("FeelsLikeC", current.FeelsLikeC, "FeelsLikeF", current.FeelsLikeF),
		Description:   p.first("weatherDesc", current.WeatherDesc),
		Humidity:      p.get("humidity", current.Humidity) + "%",
		Pressure:      p.get("pressure", current.Pressure) + " mb",
		WindSpeed:     p.get("windspeedKmph", current.WindspeedKmph) + " km/h",
		WindDirection: p.get("winddir16Point", current.Winddir16Point),
		Visibility:    p.get("visibility", current.Visibility) + " km",
		UVIndex:       p.get("uvIndex", current.UVIndex),
		LocalTime:     p.get("localObsDateTime", current.LocalObsDateTime),
	}
	if p.missing != "" {
		return schema.Weather{}, p.err()
	}
	return weather, nil
}

// Forecast returns at most three days of forecast for the nearest area.
// A value of days less than one returns the default of three days.
func (r *Report) Forecast(days int) (schema.Forecast, error) {
	if days < 1 || days > MaxForecastDays {
		days = MaxForecastDays
	}

	var p parser
	if r.Weather == nil {
		p.missing = "weather"
	}
	area := index(&p, "nearest_area", r.NearestArea, 0)
	if p.missing != "" {
		return schema.Forecast{}, p.err()
	}

	forecast := schema.Forecast{
		City:     p.first("areaName", area.AreaName),
		Country:  p.first("country", area.Country),
		Forecast: make([]schema.ForecastDay, 0, days),
	}
	for _, day := range r.Weather[:min(days, len(r.Weather))] {
		astronomy := index(&p, "astronomy", day.Astronomy, 0)
		midday := index(&p, "hourly", day.Hourly, middayHour)
		if p.missing != "" {
			break
		}
		forecast.Forecast = append(forecast.Forecast, schema.ForecastDay{
			Date:        p.get("date", day.Date),
			MaxTemp:     p.degrees("maxtempC", day.MaxTempC, "maxtempF", day.MaxTempF),
			MinTemp:     p.degrees("mintempC", day.MinTempC, "mintempF", day.MinTempF),
			Description: p.first("weatherDesc", midday.WeatherDesc),
			Sunrise:     p.get("sunrise", astronomy.Sunrise),
			Sunset:      p.get("sunset", astronomy.Sunset),
			UVIndex:     p.get("uvIndex", day.UVIndex),
		})
	}
	if p.missing != "" {
		return schema.Forecast{}, p.err()
	}
	return forecast, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *text) UnmarshalJSON(data []byte) error {
	t.Set = true
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Value)
	}
	if string(data) == "null" {
		t.Set = false
		return nil
	}
	t.Value = string(data)
	return nil
}

func (p *parser) get(key string, t text) string {
	if !t.Set && p.missing == "" {
		p.missing = key
	}
	return t.Value
}

func (p *parser) first(key string, values []value) string {
	if len(values) == 0 {
		if p.missing == "" {
			p.missing = key
		}
		return ""
	}
	return p.get(key, values[0].Value)
}

func (p *parser) degrees(keyC string, c text, keyF string, f text) string {
	return fmt.Sprintf("%s°C (%s°F)", p.get(keyC, c), p.get(keyF, f))
}

func (p *parser) err() error {
	return fmt.Errorf("%w: missing key %q", ErrParse, p.missing)
}

func index[T any](p *parser, key string, values []T, i int) T {
	var zero T
	if i >= len(values) {
		if p.missing == "" {
			p.missing = fmt.Sprintf("%s[%d]", key, i)
		}
		return zero
	}
	return values[i]
}

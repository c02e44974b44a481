package entity

import "time"

// HumidityUnavailable is rendered whenever humidity is requested. The forecast
// provider does not expose humidity, so it is reported explicitly instead of
// being omitted or guessed.
const HumidityUnavailable = "not available"

// Location is a geocoding result for a pincode. When the geocoder returns
// multiple matches the first one wins; no ranking information is available.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// WeatherSnapshot is the single-reading view of the weather at a location:
// the instantaneous current conditions plus today's daily aggregates.
// It is built fresh per request and never persisted.
type WeatherSnapshot struct {
	LocationName       string
	Temperature        float64
	Windspeed          float64
	Condition          string
	TempMaxToday       float64
	TempMinToday       float64
	PrecipitationToday float64
	Humidity           string
}

// DailyForecast is one day of the multi-day daily series.
type DailyForecast struct {
	Date          time.Time
	TempMax       float64
	TempMin       float64
	Precipitation float64
	WeatherCode   int
	Condition     string
}

// WeatherForecast is the multi-day view of the weather at a location.
type WeatherForecast struct {
	LocationName string
	Days         []DailyForecast
}

// ConditionFromCode maps a provider weather code to a human-readable
// condition label. The rules are applied in order and the mapping is total:
// any integer outside the listed ranges is "Unknown".
func ConditionFromCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 2:
		return "Partly cloudy"
	case code >= 3 && code <= 4:
		return "Overcast"
	case code >= 50 && code <= 59:
		return "Drizzle"
	case code >= 60 && code <= 69:
		return "Rain"
	case code >= 70 && code <= 79:
		return "Snow"
	case code >= 80 && code <= 89:
		return "Rain showers"
	case code >= 90:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

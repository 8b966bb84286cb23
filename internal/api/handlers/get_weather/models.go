package get_weather

import "github.com/m04kA/BBQ-RentalService/internal/integrations/weather"

// WeatherResponse текущая погода на пляже
type WeatherResponse struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// FromCurrent конвертирует ответ OpenWeatherMap
func FromCurrent(location string, c *weather.Current) *WeatherResponse {
	resp := &WeatherResponse{
		Location:    location,
		Temperature: c.Main.Temp,
		FeelsLike:   c.Main.FeelsLike,
		Humidity:    c.Main.Humidity,
		WindSpeed:   c.Wind.Speed,
	}
	if len(c.Weather) > 0 {
		resp.Condition = c.Weather[0].Main
		resp.Description = c.Weather[0].Description
		resp.Icon = c.Weather[0].Icon
	}
	return resp
}

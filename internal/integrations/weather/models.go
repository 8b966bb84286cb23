package weather

// Current ответ OpenWeatherMap /weather (используемые поля)
type Current struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Condition описание погодных условий
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ErrorResponse модель ошибки OpenWeatherMap
type ErrorResponse struct {
	Cod     interface{} `json:"cod"`
	Message string      `json:"message"`
}

package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ChartPoint par etiqueta/valor para los gráficos de los dashboards.
type ChartPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

package list_service_names

// NamesResponse HTTP response model. При ошибке names пустой.
type NamesResponse struct {
	Names []string `json:"names"`
	Error string   `json:"error,omitempty"`
}

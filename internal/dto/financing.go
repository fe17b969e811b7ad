package dto

// PredictResponse is the answer of the scoring endpoint.
type PredictResponse struct {
	Probability    float64 `json:"probabilita_approvazione" yaml:"probabilita_approvazione"`
	PredictedClass string  `json:"classe_prevista" yaml:"classe_prevista"`
}

// ImportFailure describes a candidate record that could not be stored.
type ImportFailure struct {
	RequestID *int64 `json:"RichiestaFinanziamentoID,omitempty" yaml:"RichiestaFinanziamentoID,omitempty"`
	Index     int    `json:"indice" yaml:"indice"`
	Error     string `json:"errore" yaml:"errore"`
}

// ImportResponse summarizes one import run.
type ImportResponse struct {
	ImportID string          `json:"import_id" yaml:"import_id"`
	Imported int             `json:"importati" yaml:"importati"`
	Skipped  int             `json:"saltati" yaml:"saltati"`
	Failed   []ImportFailure `json:"errori" yaml:"errori"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

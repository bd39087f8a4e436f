package dto

import "time"

// ExplainVarianceRequest body de POST /api/ai/explain-variance: la ventana
// de análisis sobre la que se quiere la explicación.
type ExplainVarianceRequest struct {
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	DepartmentID string    `json:"department_id,omitempty"`
}

// AIExplanationDTO explicación en lenguaje natural de un reporte de
// varianza, generada por el LLM a partir del resultado del motor.
type AIExplanationDTO struct {
	Explanation string   `json:"explanation"`
	Highlights  []string `json:"highlights,omitempty"`
	Model       string   `json:"model"`
}

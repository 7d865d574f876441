package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vijayakumarsahana16-san/phishproof/internal/usecase"
)

// MaxBodyBytes caps the size of an /analyze request body
const MaxBodyBytes = 1 << 20

// AnalyzeHandler handles text classification requests
type AnalyzeHandler struct {
	detector usecase.DetectorUsecase
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(detector usecase.DetectorUsecase) *AnalyzeHandler {
	return &AnalyzeHandler{detector: detector}
}

// Analyze handles POST /analyze. The response body is the bare verdict.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var input usecase.AnalyzeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleRequestError(c, err)
		return
	}

	verdict := h.detector.Predict(c.Request.Context(), *input.Text)
	c.JSON(http.StatusOK, verdict)
}

// Model handles GET /model, reporting the startup training run
func (h *AnalyzeHandler) Model(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.detector.Status())
}

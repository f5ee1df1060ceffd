package experiment

import (
	"errors"
	"net/http"

	v1 "github.com/aevon-lab/experiment-tracker/internal/api/v1"
	httperr "github.com/aevon-lab/experiment-tracker/internal/core/errors"
	"github.com/aevon-lab/experiment-tracker/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidJSON       = "Invalid JSON body"
	msgInvalidParameters = "Invalid query parameters"
	msgSearchFailed      = "Search failed"
	msgDetailsFailed     = "Experiment details failed"
)

// RegisterRoutes registers all experiment API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/search", s.HandleSearch)
	api.GET("/experiments/:experiment_id", s.HandleExperimentDetails)
	api.GET("/connection-check", s.HandleConnectionCheck)
}

// HandleSearch handles POST /api/search
// Body: {"gcid": "...", "days": 30}
func (s *Service) HandleSearch(c *gin.Context) {
	var req v1.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   msgInvalidJSON,
			Details:   err.Error(),
		})
		return
	}
	if err := req.Normalize(s.opts.DefaultDays, s.opts.MaxDays); err != nil {
		writeInvalid(c, err)
		return
	}

	result, err := s.SearchParticipation(c.Request.Context(), req.GCID, req.Days)
	if err != nil {
		writeServiceError(c, err, msgSearchFailed)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleExperimentDetails handles GET /api/experiments/:experiment_id
// Query parameters: gcid, days
func (s *Service) HandleExperimentDetails(c *gin.Context) {
	var query struct {
		GCID string `form:"gcid"`
		Days int    `form:"days"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   msgInvalidParameters,
			Details:   err.Error(),
		})
		return
	}

	req := v1.SearchRequest{GCID: query.GCID, Days: query.Days}
	if err := req.Normalize(s.opts.DefaultDays, s.opts.MaxDays); err != nil {
		writeInvalid(c, err)
		return
	}

	detail, err := s.GetExperimentDetails(c.Request.Context(), req.GCID, c.Param("experiment_id"), req.Days)
	if err != nil {
		writeServiceError(c, err, msgDetailsFailed)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// HandleConnectionCheck handles GET /api/connection-check
// Always 200; the body carries the probe outcome.
func (s *Service) HandleConnectionCheck(c *gin.Context) {
	c.JSON(http.StatusOK, s.CheckConnection(c.Request.Context()))
}

func writeInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidRequestError,
		Message:   err.Error(),
	})
}

func writeServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		writeInvalid(c, err)
	case errors.Is(err, storage.ErrUpstreamQuery):
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpUpstreamQueryError,
			Message:   message,
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}

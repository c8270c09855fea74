package api

import (
	"errors"
	"io"
	"net/http"

	apperrors "scholar_assistant_go_backend/internal/errors"

	"github.com/gin-gonic/gin"
)

const storedStatus = "Paper stored successfully"

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Academic Research Paper Assistant API!"})
}

func storePaperHandler(papers PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaperRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		if err := papers.StorePaper(c.Request.Context(), req.ToPaper()); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, StorePaperResponse{Status: storedStatus})
	}
}

// bindFilter accepts an empty body as an empty filter.
func bindFilter(c *gin.Context) (PaperQueryRequest, bool) {
	var req PaperQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
		return req, false
	}
	return req, true
}

func queryPapersHandler(papers PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindFilter(c)
		if !ok {
			return
		}

		result, err := papers.QueryPapers(c.Request.Context(), req.Filter())
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, PapersResponse{Papers: result})
	}
}

func queryPapersByParamsHandler(papers PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaperQueryRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid query parameters: "+err.Error()))
			return
		}

		result, err := papers.QueryPapers(c.Request.Context(), req.Filter())
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, PapersResponse{Papers: result})
	}
}

func importBibtexHandler(bibtex BibtexService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BibtexImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		result, err := bibtex.Import(c.Request.Context(), req.Bibtex, req.Topic)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, BibtexImportResponse{Stored: result.Stored, Skipped: result.Skipped})
	}
}

func exportBibtexHandler(bibtex BibtexService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindFilter(c)
		if !ok {
			return
		}

		out, err := bibtex.Export(c.Request.Context(), req.Filter())
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="papers.bib"`)
		c.Data(http.StatusOK, "text/x-bibtex; charset=utf-8", []byte(out))
	}
}

func healthHandler(papers PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := papers.Healthy(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

package api

import (
	"net/http"

	apperrors "scholar_assistant_go_backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func summarizeHandler(summaries SummarizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		summary, err := summaries.Summarize(c.Request.Context(), *req.Content)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, SummarizeResponse{Summary: summary})
	}
}

func summarizePDFHandler(summaries SummarizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("file"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		defer file.Close()

		log.Info().Str("filename", fileHeader.Filename).Int64("size", fileHeader.Size).Msg("Summarizing uploaded PDF")
		summary, err := summaries.SummarizePDF(c.Request.Context(), file)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, SummarizeResponse{Summary: summary})
	}
}

func answerQuestionHandler(answers QuestionAnsweringService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnswerQuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		answer, err := answers.Answer(c.Request.Context(), req.Question, req.Context, req.PaperID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, AnswerResponse{Answer: answer})
	}
}

func arxivSearchHandler(arxiv ArxivSearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ArxivSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		papers, err := arxiv.Search(c.Request.Context(), req.Keyword, req.Limit())
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ArxivSearchResponse{Papers: papers})
	}
}

func futureWorksHandler(futureWork FutureWorkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FutureWorksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid request body: "+err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, FutureWorksResponse{Suggestions: futureWork.Suggest(*req.Content)})
	}
}

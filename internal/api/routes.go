package api

import (
	"net/http"
	"time"

	"scholar_assistant_go_backend/internal/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	Metrics        *observability.Metrics
	Gatherer       prometheus.Gatherer
}

// NewRouter builds the engine with middleware, metrics and every endpoint.
func NewRouter(opts RouterOptions, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), observability.RequestID(), observability.RequestLogger())
	if opts.Metrics != nil {
		r.Use(observability.Instrument(opts.Metrics))
	}
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	SetupRoutes(r, svc)
	return r
}

// corsConfig allows everything unless specific origins are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", observability.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", observability.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowHeaders = []string{"*"}
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func SetupRoutes(r *gin.Engine, svc Services) {
	r.GET("/", rootHandler)
	r.GET("/healthz", healthHandler(svc.Papers))

	r.POST("/store_paper/", storePaperHandler(svc.Papers))
	r.POST("/query_papers/", queryPapersHandler(svc.Papers))
	r.POST("/query_papers_by_topic_year/", queryPapersHandler(svc.Papers))
	r.GET("/query_papers/", queryPapersByParamsHandler(svc.Papers))

	r.POST("/summarize/", summarizeHandler(svc.Summaries))
	r.POST("/summarize_pdf/", summarizePDFHandler(svc.Summaries))

	r.POST("/answer_question/", answerQuestionHandler(svc.Answers))
	r.POST("/enhanced_answer_question/", answerQuestionHandler(svc.Answers))

	r.POST("/arxiv_search/", arxivSearchHandler(svc.Arxiv))
	r.POST("/generate_future_works/", futureWorksHandler(svc.FutureWork))

	r.POST("/import_bibtex/", importBibtexHandler(svc.Bibtex))
	r.POST("/export_bibtex/", exportBibtexHandler(svc.Bibtex))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

package review

import (
	"log"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/docstore"
	"InvoiceDesk/internal/serviceiface"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewReviewService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ReviewService{config: cfg, pool: pool}
}

func (s *ReviewService) Name() string {
	return "review"
}

func (s *ReviewService) Start() error {
	go StartReviewService(s.pool)
	return nil
}

func (s *ReviewService) Stop() error {
	return nil
}

func StartReviewService(pool *pgxpool.Pool) {
	docs := docstore.NewFromEnv()
	if docs == nil {
		api.LogInfo("review: document storage not configured, PDF uploads disabled")
	}

	r := mux.NewRouter()
	r.HandleFunc("/review/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Review Service is healthy"))
	}).Methods(http.MethodGet)

	sub := r.PathPrefix("/review").Subrouter()
	sub.Use(api.SessionMiddleware)
	sub.HandleFunc("/flagged", GetFlagged(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/approve", ApproveFlagged(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/reject", RejectFlagged(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/status-summary", GetStatusSummary(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/upload", UploadFlagged(pool, docs)).Methods(http.MethodPost)

	log.Printf("Review service listening on %s", constants.ReviewAddr)
	if err := http.ListenAndServe(constants.ReviewAddr, r); err != nil {
		log.Fatalf("Review service failed: %v", err)
	}
}

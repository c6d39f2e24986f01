package archive

import (
	"log"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/serviceiface"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArchiveService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewArchiveService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ArchiveService{config: cfg, pool: pool}
}

func (s *ArchiveService) Name() string {
	return "archive"
}

func (s *ArchiveService) Start() error {
	go StartArchiveService(s.pool)
	return nil
}

func (s *ArchiveService) Stop() error {
	return nil
}

func StartArchiveService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/invoices/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Archive Service is healthy"))
	}).Methods(http.MethodGet)

	sub := r.PathPrefix("/invoices").Subrouter()
	sub.Use(api.SessionMiddleware)
	sub.HandleFunc("/archive", GetInvoicesArchive(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/activity", GetDashboardActivity(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/activity/sync", SyncActivity(pool)).Methods(http.MethodPost)

	log.Println("Archive Service started on " + constants.ArchiveAddr)
	if err := http.ListenAndServe(constants.ArchiveAddr, r); err != nil {
		log.Fatalf("Archive Service failed: %v", err)
	}
}

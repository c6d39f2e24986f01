package payables

import (
	"log"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/serviceiface"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PayablesService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewPayablesService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &PayablesService{config: cfg, pool: pool}
}

func (s *PayablesService) Name() string {
	return "payables"
}

func (s *PayablesService) Start() error {
	go StartPayablesService(s.pool)
	return nil
}

func (s *PayablesService) Stop() error {
	return nil
}

func StartPayablesService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/payables/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Payables Service is healthy"))
	}).Methods(http.MethodGet)

	sub := r.PathPrefix("/payables").Subrouter()
	sub.Use(api.SessionMiddleware)
	sub.HandleFunc("/list", GetAccountsPayable(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/pay", PayNow(pool)).Methods(http.MethodPost)

	log.Printf("Payables service listening on %s", constants.PayablesAddr)
	if err := http.ListenAndServe(constants.PayablesAddr, r); err != nil {
		log.Fatalf("Payables service failed: %v", err)
	}
}

package orders

import (
	"log"
	"net/http"

	"InvoiceDesk/api"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/serviceiface"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrdersService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewOrdersService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &OrdersService{config: cfg, pool: pool}
}

func (s *OrdersService) Name() string {
	return "orders"
}

func (s *OrdersService) Start() error {
	go StartOrdersService(s.pool)
	return nil
}

func (s *OrdersService) Stop() error {
	return nil
}

func StartOrdersService(pool *pgxpool.Pool) {
	r := mux.NewRouter()
	r.HandleFunc("/orders/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Orders Service is healthy"))
	}).Methods(http.MethodGet)

	sub := r.PathPrefix("/orders").Subrouter()
	sub.Use(api.SessionMiddleware)
	sub.HandleFunc("/list", GetPurchaseOrders(pool)).Methods(http.MethodPost)
	sub.HandleFunc("/export", ExportOrders(pool)).Methods(http.MethodGet)

	log.Printf("Orders service listening on %s", constants.OrdersAddr)
	if err := http.ListenAndServe(constants.OrdersAddr, r); err != nil {
		log.Fatalf("Orders service failed: %v", err)
	}
}

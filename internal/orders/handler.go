package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/roasthouse/storefront/internal/catalog"
	"github.com/roasthouse/storefront/pkg/models"
)

// Publisher emits an order-created notification after a successful
// append. Implementations must not block the request path for long.
type Publisher interface {
	PublishOrderCreated(order *models.Order) error
}

// Hub pushes live updates to connected storefront dashboards.
type Hub interface {
	Broadcast(messageType string, data interface{}, source string)
}

type Handler struct {
	store     Store
	validator *Validator
	catalog   *catalog.Catalog
	logger    *logrus.Logger
	publisher Publisher
	hub       Hub
}

func NewHandler(store Store, cat *catalog.Catalog, logger *logrus.Logger) *Handler {
	return &Handler{
		store:     store,
		validator: NewValidator(),
		catalog:   cat,
		logger:    logger,
	}
}

// SetPublisher attaches an optional event publisher; without one,
// orders are still accepted but no events leave the process.
func (h *Handler) SetPublisher(p Publisher) {
	h.publisher = p
}

func (h *Handler) SetHub(hub Hub) {
	h.hub = hub
}

// Routes builds the storefront router.
func (h *Handler) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/orders", h.CreateOrder).Methods("POST")
	router.HandleFunc("/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	return router
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode checkout payload")
		h.respondWithError(w, http.StatusBadRequest, ErrMalformedRequest.Error())
		return
	}

	if err := h.validator.ValidateCheckout(&req); err != nil {
		ve, ok := AsValidationError(err)
		if !ok {
			h.logger.WithError(err).Error("Checkout validation failed unexpectedly")
			h.respondWithError(w, http.StatusInternalServerError, "failed to create order")
			return
		}
		h.logger.WithField("fields", ve.Error()).Info("Rejected invalid checkout payload")
		h.respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  ve.Error(),
			"fields": ve.Fields,
		})
		return
	}

	order := orderFromCheckout(&req)

	if err := h.store.Append(r.Context(), order); err != nil {
		h.logger.WithError(err).Error("Failed to append order to log")
		h.respondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"total_price": order.TotalPrice.Display(),
		"items_count": len(order.Items),
	}).Info("Order created")

	if h.publisher != nil {
		if err := h.publisher.PublishOrderCreated(order); err != nil {
			// Publishing is best effort: the order is already durable.
			h.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to publish order created event")
		}
	}

	if h.hub != nil {
		h.hub.Broadcast("order_created", order, "storefront")
	}

	h.respondWithJSON(w, http.StatusCreated, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		h.respondWithError(w, http.StatusInternalServerError, "failed to retrieve orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	h.logger.WithField("count", len(list)).Info("Retrieved order log")
	h.respondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := h.store.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.respondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.WithError(err).WithField("order_id", orderID).Error("Failed to get order")
		h.respondWithError(w, http.StatusInternalServerError, "failed to retrieve order")
		return
	}

	h.respondWithJSON(w, http.StatusOK, order)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "storefront",
	})
}

// orderFromCheckout freezes a validated checkout payload into the
// persisted order shape. The id scheme is collision free within and
// across process lifetimes.
func orderFromCheckout(req *models.CheckoutRequest) *models.Order {
	var total models.Money
	for _, item := range req.Items {
		total += item.Price.Mul(item.Quantity)
	}

	return &models.Order{
		ID:              "ORD-" + uuid.New().String(),
		CustomerID:      req.Email,
		Items:           req.Items,
		TotalPrice:      total,
		Status:          models.StatusPending,
		CreatedAt:       time.Now().UTC(),
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{
		"error": message,
	})
}

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/apm-api/internal/dto"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/models"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/services"
	"github.com/yukikurage/apm-api/internal/storage"
	"github.com/yukikurage/apm-api/internal/testutil"
)

// OrderHandlerTestSuite drives the order endpoints over an in-memory database
type OrderHandlerTestSuite struct {
	suite.Suite
	store  *repository.Store
	router *gin.Engine
}

func (s *OrderHandlerTestSuite) SetupTest() {
	s.store = repository.NewStore(testutil.NewDB(s.T()))
	blobs := storage.NewFsStore(afero.NewMemMapFs())
	handler := NewOrderHandler(services.NewOrderService(s.store, blobs), services.NewLifecycleService(s.store))

	id := middleware.RequireIDParam("id")
	s.router = gin.New()
	s.router.GET("/orders", handler.ListOrders)
	s.router.GET("/orders/:id", id, handler.GetOrder)
	s.router.GET("/orders/:id/tasks", id, handler.ListOrderTasks)
	s.router.POST("/orders/:id/start", id, handler.StartOrder)
	s.router.POST("/orders/:id/complete", id, handler.CompleteOrder)
	s.router.POST("/orders/:id/reject", id, handler.RejectOrder)
	s.router.POST("/admin/orders/api/create-order", handler.CreateOrder)
	s.router.PUT("/admin/orders/update-order/:id", id, handler.UpdateOrder)
	s.router.DELETE("/admin/orders/delete-order/:id", id, handler.DeleteOrder)
}

func (s *OrderHandlerTestSuite) createOrder(name string) models.Order {
	w := doJSON(s.router, http.MethodPost, "/admin/orders/api/create-order", gin.H{"name": name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Order](s.T(), w)
}

func (s *OrderHandlerTestSuite) TestCreateStartCompleteReject() {
	order := s.createOrder("Gearbox")
	s.Equal(models.StatusReadyToStart, order.Status)

	w := doJSON(s.router, http.MethodPost, "/orders/1/start", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	started := decode[dto.LifecycleResponse](s.T(), w)
	s.Equal("Order started", started.Message)
	s.Equal(models.StatusInProgress, started.Status)

	w = doJSON(s.router, http.MethodPost, "/orders/1/complete", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	completed := decode[dto.LifecycleResponse](s.T(), w)
	s.Equal(models.StatusDone, completed.Status)
	s.NotNil(completed.EndTime)

	w = doJSON(s.router, http.MethodPost, "/orders/1/reject", gin.H{"description": "defect"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	rejected := decode[dto.LifecycleResponse](s.T(), w)
	s.Equal("Order rejected", rejected.Message)
	s.Equal(models.StatusRejected, rejected.Status)
	s.Equal("defect", rejected.RejectReason)

	raw := decode[map[string]any](s.T(), w)
	s.Equal(float64(1), raw["order_id"])
	s.NotContains(raw, "id")
}

func (s *OrderHandlerTestSuite) TestCompleteFreshOrderIsInvalidTransition() {
	s.createOrder("Fresh")

	w := doJSON(s.router, http.MethodPost, "/orders/1/complete", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	body := decode[errorBody](s.T(), w)
	s.Equal("INVALID_TRANSITION", body.Code)
	s.Equal(string(models.StatusReadyToStart), body.Details["current_status"])
}

func (s *OrderHandlerTestSuite) TestStartTwice() {
	s.createOrder("Twice")

	s.Equal(http.StatusOK, doJSON(s.router, http.MethodPost, "/orders/1/start", nil).Code)

	w := doJSON(s.router, http.MethodPost, "/orders/1/start", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(string(models.StatusInProgress), decode[errorBody](s.T(), w).Details["current_status"])
}

func (s *OrderHandlerTestSuite) TestRejectWithoutReason() {
	s.createOrder("Keep")

	w := doJSON(s.router, http.MethodPost, "/orders/1/reject", gin.H{"description": "   "})
	s.Equal(http.StatusBadRequest, w.Code)

	ctx := context.Background()
	order, err := s.store.Orders.FindByID(ctx, 1)
	s.Require().NoError(err)
	s.Equal(models.StatusReadyToStart, order.Status)

	count, err := s.store.RejectReasons.Count(ctx)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *OrderHandlerTestSuite) TestMissingOrder() {
	s.Equal(http.StatusNotFound, doJSON(s.router, http.MethodGet, "/orders/42", nil).Code)
	s.Equal(http.StatusNotFound, doJSON(s.router, http.MethodPost, "/orders/42/start", nil).Code)
	s.Equal(http.StatusNotFound, doJSON(s.router, http.MethodPost, "/orders/42/reject", gin.H{"description": "x"}).Code)
}

func (s *OrderHandlerTestSuite) TestInvalidID() {
	w := doJSON(s.router, http.MethodGet, "/orders/abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid id", decode[errorBody](s.T(), w).Message)
}

func (s *OrderHandlerTestSuite) TestCreateRequiresName() {
	w := doJSON(s.router, http.MethodPost, "/admin/orders/api/create-order", gin.H{})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *OrderHandlerTestSuite) TestListAndUpdate() {
	w := doJSON(s.router, http.MethodGet, "/orders", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	s.createOrder("First")
	s.createOrder("Second")

	w = doJSON(s.router, http.MethodPut, "/admin/orders/update-order/2", gin.H{"name": "Renamed"})
	s.Equal(http.StatusNoContent, w.Code)

	w = doJSON(s.router, http.MethodGet, "/orders?page=1&limit=1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]models.Order](s.T(), w), 1)

	w = doJSON(s.router, http.MethodGet, "/orders/2", nil)
	s.Equal("Renamed", decode[models.Order](s.T(), w).Name)

	w = doJSON(s.router, http.MethodPut, "/admin/orders/update-order/2", gin.H{"status": "Shipped"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *OrderHandlerTestSuite) TestDelete() {
	s.createOrder("Gone")

	s.Equal(http.StatusNoContent, doJSON(s.router, http.MethodDelete, "/admin/orders/delete-order/1", nil).Code)
	s.Equal(http.StatusNotFound, doJSON(s.router, http.MethodGet, "/orders/1", nil).Code)
	s.Equal(http.StatusNotFound, doJSON(s.router, http.MethodDelete, "/admin/orders/delete-order/1", nil).Code)
}

func (s *OrderHandlerTestSuite) TestOrderTasks() {
	s.createOrder("With tasks")
	ctx := context.Background()
	ws := &models.Workstation{Name: "Press"}
	s.Require().NoError(s.store.Workstations.Create(ctx, ws))
	s.Require().NoError(s.store.Tasks.Create(ctx, &models.Task{Name: "Cut", OrderID: 1, WorkstationID: ws.ID, Status: models.StatusReadyToStart}))

	w := doJSON(s.router, http.MethodGet, "/orders/1/tasks", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	tasks := decode[[]models.Task](s.T(), w)
	s.Require().Len(tasks, 1)
	s.Equal("Cut", tasks[0].Name)
}

func TestOrderHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"storefront/internal/handler/api"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
	"storefront/tests/common/builder"
	"storefront/tests/common/httptest"
	"storefront/tests/common/testutil"
	commandsmock "storefront/tests/mock/commands"
	queriesmock "storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	userID       uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock middleware behavior: inject the authenticated user
	authed := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				c.Set("user_id", s.userID)
				c.Set("user_role", "customer")
			}
			handler(c)
		}
	}

	s.router.POST("/orders", authed(s.handler.CreateOrder))
	s.router.GET("/orders", authed(s.handler.ListOrders))
	s.router.GET("/orders/:id", authed(s.handler.GetOrder))
	s.router.POST("/orders/:id/cancel", authed(s.handler.CancelOrder))
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestCreateOrder() {
	url := "/orders"

	orderBuilder := builder.NewOrderBuilder().WithUserID(s.userID)
	reqBody := orderBuilder.BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the placed order", func() {
		returnView := orderBuilder.BuildView()
		s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, reqBody.ToParams()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("pending", response.Status)
		s.Equal(returnView.TotalCents, response.TotalCents)
	})

	s.Run("error: 500 when user context missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: shipping_address_id", mutate: testutil.Field("shipping_address_id", nil)},
			{name: "missing field: billing_address_id", mutate: testutil.Field("billing_address_id", nil)},
			{name: "missing field: payment_method", mutate: testutil.Field("payment_method", nil)},
			{name: "missing field: items", mutate: testutil.Field("items", nil)},
			{name: "malformed shipping_address_id", mutate: testutil.Field("shipping_address_id", "not-a-uuid")},
			{
				name: "zero quantity line",
				mutate: testutil.Field("items", []map[string]any{
					{"product_id": uuid.New().String(), "quantity": 0},
				}),
			},
			{
				name: "negative quantity line",
				mutate: testutil.Field("items", []map[string]any{
					{"product_id": uuid.New().String(), "quantity": -1},
				}),
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "empty cart",
				commandsError:  commands.ErrEmptyCart,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "at least one item",
			},
			{
				name:           "invalid address",
				commandsError:  commands.ErrInvalidAddress,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid address",
			},
			{
				name:           "product not found",
				commandsError:  commands.ErrProductNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Product not found",
			},
			{
				name:           "insufficient stock",
				commandsError:  commands.ErrInsufficientStock,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Insufficient stock",
			},
			{
				name:           "coupon not found",
				commandsError:  commands.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon not found",
			},
			{
				name:           "invalid coupon",
				commandsError:  commands.ErrInvalidCoupon,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid or expired coupon",
			},
			{
				name:           "coupon limit reached",
				commandsError:  commands.ErrCouponLimitReached,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Coupon usage limit reached",
			},
			{
				name:           "shipping method not found",
				commandsError:  commands.ErrShippingMethodNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Shipping method not found",
			},
			{
				name:           "shipping method inactive",
				commandsError:  commands.ErrShippingMethodInactive,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "not available",
			},
			{
				name:           "domain validation failure",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid order data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: insufficient stock carries the offending line detail", func() {
		stockErr := &commands.InsufficientStockError{
			ProductID: uuid.New(),
			Requested: 3,
			Available: 1,
		}
		wrapped := errors.Join(commands.ErrInsufficientStock, stockErr)
		s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, wrapped).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), stockErr.ProductID.String())
		s.Contains(rec.Body.String(), `"requested":3`)
		s.Contains(rec.Body.String(), `"available":1`)
	})
}

func (s *OrderHandlerTestSuite) TestCancelOrder() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/cancel"

	s.Run("success: returns 200 OK with the cancelled order", func() {
		returnView := builder.NewOrderBuilder().WithUserID(s.userID).AsCancelled().BuildView()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), orderID, s.userID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
		s.Equal("failed", response.PaymentStatus)
	})

	s.Run("error: 400 on malformed order ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/not-a-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "order owned by someone else",
				commandsError:  commands.ErrOrderForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "does not belong",
			},
			{
				name:           "order already shipped",
				commandsError:  commands.ErrOrderNotCancellable,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "no longer be cancelled",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), orderID, s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestGetOrder() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	s.Run("success: returns the order", func() {
		returnView := builder.NewOrderBuilder().WithUserID(s.userID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID, s.userID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
		s.Len(response.Items, len(returnView.Items))
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				queriesError:   queries.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "order owned by someone else",
				queriesError:   queries.ErrOrderAccess,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "does not belong",
			},
			{
				name:           "internal server error",
				queriesError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID, s.userID).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestListOrders() {
	url := "/orders"

	s.Run("success: returns the user's orders", func() {
		items := []*queries.OrderListItem{
			builder.NewOrderBuilder().BuildListItem(),
			builder.NewOrderBuilder().AsCancelled().BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 20).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: custom limit is forwarded", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 5).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 500 on store failure", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 20).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

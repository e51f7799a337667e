//go:build e2e

package order_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/tests/common/dbtest"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"
	e2ehelper "storefront/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	ordersURL          = "/api/orders"
	estimateURL        = "/api/checkout/estimate"
	validateCouponURL  = "/api/coupons/validate"
	shippingMethodsURL = "/api/shipping-methods"
)

type orderSuite struct {
	e2e.SharedSuite
	authHelper *e2ehelper.AuthTestHelper

	userID    uuid.UUID
	token     string
	addressID uuid.UUID
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(orderSuite))
}

func (s *orderSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.authHelper = e2ehelper.NewAuthTestHelper(s.DB, s.Config.JWT)
}

func (s *orderSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.userID, s.token = s.authHelper.CreateAndLogin(s.T(), s.Router, "buyer@example.com", "customer")
	// Plain domestic destination: no distance surcharge on the standard tier
	s.addressID = dbtest.CreateTestAddress(s.T(), s.DB, s.userID, "US", "NV", "89101")
}

func (s *orderSuite) placeOrder(req reqdto.CreateOrderRequest, token string) (*resdto.OrderResponse, int, string) {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, req, token)
	if rec.Code != http.StatusCreated {
		return nil, rec.Code, rec.Body.String()
	}
	var response resdto.OrderResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
	return &response, rec.Code, rec.Body.String()
}

func (s *orderSuite) orderRequest(productID uuid.UUID, quantity int32) reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		ShippingAddressID: s.addressID,
		BillingAddressID:  s.addressID,
		PaymentMethod:     "credit_card",
		Items: []reqdto.OrderLineRequest{
			{ProductID: productID, Quantity: quantity},
		},
	}
}

func (s *orderSuite) TestPlaceOrder() {
	s.Run("places an order and settles totals, stock and cart", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		dbtest.AddCartItem(s.T(), s.DB, s.userID, productID, 2)

		response, code, body := s.placeOrder(s.orderRequest(productID, 2), s.token)
		s.Require().Equal(http.StatusCreated, code, body)

		// 2000 subtotal + 1000 flat shipping + 10% tax on the subtotal
		s.Equal("pending", response.Status)
		s.Equal("pending", response.PaymentStatus)
		s.Equal(int64(2000), response.SubtotalCents)
		s.Equal(int64(1000), response.ShippingCents)
		s.Equal(int64(200), response.TaxCents)
		s.Equal(int64(3200), response.TotalCents)
		s.Len(response.Items, 1)
		s.Equal(int64(1000), response.Items[0].UnitPriceCents)

		s.Equal(int32(8), dbtest.GetProductStock(s.T(), s.DB, productID))
		s.Equal(0, dbtest.CountCartItems(s.T(), s.DB, s.userID))
	})

	s.Run("percentage coupon discounts the taxable base and burns a use", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		limit := int32(5)
		couponID := dbtest.CreateTestCoupon(s.T(), s.DB, "SAVE10", "percentage", "10", &limit)

		req := s.orderRequest(productID, 2)
		code := "SAVE10"
		req.CouponCode = &code

		response, status, body := s.placeOrder(req, s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		s.Equal(int64(200), response.DiscountCents)
		s.Equal(int64(180), response.TaxCents)
		s.Equal(int64(2980), response.TotalCents)
		s.Require().NotNil(response.CouponCode)
		s.Equal("SAVE10", *response.CouponCode)

		s.Equal(int32(1), dbtest.GetCouponUsedCount(s.T(), s.DB, couponID))
	})

	s.Run("exhausted coupon is rejected with a conflict", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		limit := int32(1)
		couponID := dbtest.CreateTestCoupon(s.T(), s.DB, "ONCE", "fixed", "500", &limit)
		_, err := s.DB.Exec(context.Background(), "UPDATE coupons SET used_count = 1 WHERE id = $1", couponID)
		s.Require().NoError(err)

		req := s.orderRequest(productID, 1)
		code := "ONCE"
		req.CouponCode = &code

		_, status, body := s.placeOrder(req, s.token)
		s.Equal(http.StatusConflict, status, body)
		s.Equal(int32(10), dbtest.GetProductStock(s.T(), s.DB, productID))
	})

	s.Run("expired coupon is rejected", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		dbtest.CreateExpiredCoupon(s.T(), s.DB, "OLDCODE", "fixed", "500")

		req := s.orderRequest(productID, 1)
		code := "OLDCODE"
		req.CouponCode = &code

		_, status, body := s.placeOrder(req, s.token)
		s.Equal(http.StatusBadRequest, status, body)
	})

	s.Run("failed decrement mid-transaction rolls back every prior write", func() {
		// Both lines for the second product pass per-line validation, but
		// the sequential conditional decrements inside the transaction
		// cannot both succeed. The first product's decrement has already
		// been applied at that point and must be undone with the rest.
		firstID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		secondID := dbtest.CreateTestProduct(s.T(), s.DB, "Scarce Widget", 1000, 3)

		req := s.orderRequest(firstID, 1)
		req.Items = append(req.Items,
			reqdto.OrderLineRequest{ProductID: secondID, Quantity: 2},
			reqdto.OrderLineRequest{ProductID: secondID, Quantity: 2},
		)

		_, status, body := s.placeOrder(req, s.token)
		s.Equal(http.StatusConflict, status, body)

		s.Equal(int32(10), dbtest.GetProductStock(s.T(), s.DB, firstID))
		s.Equal(int32(3), dbtest.GetProductStock(s.T(), s.DB, secondID))
		s.Equal(0, dbtest.CountOrders(s.T(), s.DB, s.userID))
	})

	s.Run("insufficient stock rejects the order without side effects", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Rare Widget", 1000, 1)

		_, status, body := s.placeOrder(s.orderRequest(productID, 3), s.token)
		s.Equal(http.StatusConflict, status, body)
		s.Contains(body, "available")
		s.Equal(int32(1), dbtest.GetProductStock(s.T(), s.DB, productID))
	})

	s.Run("another user's address is rejected", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		otherID := s.authHelper.CreateTestUser(s.T(), "other@example.com", "customer")
		otherAddress := dbtest.CreateTestAddress(s.T(), s.DB, otherID, "US", "NV", "89101")

		req := s.orderRequest(productID, 1)
		req.ShippingAddressID = otherAddress

		_, status, body := s.placeOrder(req, s.token)
		s.Equal(http.StatusBadRequest, status, body)
	})

	s.Run("selected shipping method resolves configured rates", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		methodID := dbtest.CreateTestShippingMethod(s.T(), s.DB, "Standard", "standard", 500, true)
		dbtest.CreateTestShippingRate(s.T(), s.DB, methodID, "US", nil, 400)

		req := s.orderRequest(productID, 2)
		req.ShippingMethodID = &methodID

		response, status, body := s.placeOrder(req, s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		s.Equal(int64(400), response.ShippingCents)
		s.Equal(int64(2600), response.TotalCents)
	})

	s.Run("inactive shipping method is rejected", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		methodID := dbtest.CreateTestShippingMethod(s.T(), s.DB, "Retired", "standard", 500, false)

		req := s.orderRequest(productID, 1)
		req.ShippingMethodID = &methodID

		_, status, body := s.placeOrder(req, s.token)
		s.Equal(http.StatusBadRequest, status, body)
	})

	s.Run("free shipping threshold is honored", func() {
		productID := dbtest.CreateTestProductWithThreshold(s.T(), s.DB, "Bulky Widget", 1000, 10, 1500)

		response, status, body := s.placeOrder(s.orderRequest(productID, 2), s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		s.Equal(int64(0), response.ShippingCents)
		s.Equal(int64(2200), response.TotalCents)
	})

	s.Run("unauthenticated request is rejected", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, s.orderRequest(productID, 1), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *orderSuite) TestConcurrentLastUnit() {
	s.Run("two buyers racing for the last unit", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Last Widget", 1000, 1)

		otherID, otherToken := s.authHelper.CreateAndLogin(s.T(), s.Router, "rival@example.com", "customer")
		otherAddress := dbtest.CreateTestAddress(s.T(), s.DB, otherID, "US", "NV", "89101")

		firstReq := s.orderRequest(productID, 1)
		secondReq := s.orderRequest(productID, 1)
		secondReq.ShippingAddressID = otherAddress
		secondReq.BillingAddressID = otherAddress

		codes := make([]int, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, firstReq, s.token)
			codes[0] = rec.Code
		}()
		go func() {
			defer wg.Done()
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, secondReq, otherToken)
			codes[1] = rec.Code
		}()
		wg.Wait()

		wins := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				wins++
			case http.StatusConflict:
			default:
				s.Failf("unexpected status", "got %d", code)
			}
		}
		s.Equal(1, wins, "exactly one order may claim the last unit")
		s.Equal(int32(0), dbtest.GetProductStock(s.T(), s.DB, productID))
	})
}

func (s *orderSuite) TestConcurrentCouponCap() {
	s.Run("two buyers racing for the last coupon use", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		limit := int32(1)
		couponID := dbtest.CreateTestCoupon(s.T(), s.DB, "LASTONE", "fixed", "500", &limit)

		otherID, otherToken := s.authHelper.CreateAndLogin(s.T(), s.Router, "rival@example.com", "customer")
		otherAddress := dbtest.CreateTestAddress(s.T(), s.DB, otherID, "US", "NV", "89101")

		code := "LASTONE"
		firstReq := s.orderRequest(productID, 1)
		firstReq.CouponCode = &code
		secondReq := s.orderRequest(productID, 1)
		secondReq.CouponCode = &code
		secondReq.ShippingAddressID = otherAddress
		secondReq.BillingAddressID = otherAddress

		codes := make([]int, 2)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, firstReq, s.token)
			codes[0] = rec.Code
		}()
		go func() {
			defer wg.Done()
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, secondReq, otherToken)
			codes[1] = rec.Code
		}()
		wg.Wait()

		wins := 0
		for _, status := range codes {
			switch status {
			case http.StatusCreated:
				wins++
			case http.StatusConflict:
			default:
				s.Failf("unexpected status", "got %d", status)
			}
		}
		s.Equal(1, wins, "exactly one order may burn the last coupon use")
		s.Equal(int32(1), dbtest.GetCouponUsedCount(s.T(), s.DB, couponID))
		// The loser's stock decrement must be rolled back with its order.
		s.Equal(int32(9), dbtest.GetProductStock(s.T(), s.DB, productID))
		s.Equal(1, dbtest.CountOrders(s.T(), s.DB, s.userID)+dbtest.CountOrders(s.T(), s.DB, otherID))
	})
}

func (s *orderSuite) TestCancelOrder() {
	s.Run("cancel restores stock and settles payment", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		placed, status, body := s.placeOrder(s.orderRequest(productID, 2), s.token)
		s.Require().Equal(http.StatusCreated, status, body)
		s.Equal(int32(8), dbtest.GetProductStock(s.T(), s.DB, productID))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			ordersURL+"/"+placed.ID.String()+"/cancel", nil, s.token)

		var cancelled resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal("cancelled", cancelled.Status)
		s.Equal("failed", cancelled.PaymentStatus)
		s.Equal(int32(10), dbtest.GetProductStock(s.T(), s.DB, productID))
	})

	s.Run("paid order refunds on cancellation", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		placed, status, body := s.placeOrder(s.orderRequest(productID, 1), s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		_, err := s.DB.Exec(context.Background(),
			"UPDATE orders SET status = 'confirmed', payment_status = 'paid' WHERE id = $1", placed.ID)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			ordersURL+"/"+placed.ID.String()+"/cancel", nil, s.token)

		var cancelled resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal("cancelled", cancelled.Status)
		s.Equal("refunded", cancelled.PaymentStatus)
	})

	s.Run("cancelling twice is rejected", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		placed, status, body := s.placeOrder(s.orderRequest(productID, 1), s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		url := ordersURL + "/" + placed.ID.String() + "/cancel"
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, s.token)
		s.Require().Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "no longer be cancelled")
		s.Equal(int32(10), dbtest.GetProductStock(s.T(), s.DB, productID))
	})

	s.Run("cannot cancel someone else's order", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		placed, status, body := s.placeOrder(s.orderRequest(productID, 1), s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		_, rivalToken := s.authHelper.CreateAndLogin(s.T(), s.Router, "rival@example.com", "customer")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			ordersURL+"/"+placed.ID.String()+"/cancel", nil, rivalToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

func (s *orderSuite) TestGetAndListOrders() {
	s.Run("owner can fetch and list orders", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		placed, status, body := s.placeOrder(s.orderRequest(productID, 2), s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			ordersURL+"/"+placed.ID.String(), nil, s.token)
		var fetched resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &fetched)
		s.Equal(placed.ID, fetched.ID)
		s.Equal(placed.TotalCents, fetched.TotalCents)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, ordersURL, nil, s.token)
		var list []*resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Require().Len(list, 1)
		s.Equal(placed.ID, list[0].ID)
		s.Equal(int32(2), list[0].ItemCount)
	})

	s.Run("another user cannot read the order", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)

		placed, status, body := s.placeOrder(s.orderRequest(productID, 1), s.token)
		s.Require().Equal(http.StatusCreated, status, body)

		_, rivalToken := s.authHelper.CreateAndLogin(s.T(), s.Router, "rival@example.com", "customer")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			ordersURL+"/"+placed.ID.String(), nil, rivalToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("unknown order yields 404", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			ordersURL+"/"+uuid.New().String(), nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *orderSuite) TestEstimate() {
	s.Run("estimates the cart without touching stock or coupons", func() {
		productID := dbtest.CreateTestProduct(s.T(), s.DB, "Widget", 1000, 10)
		dbtest.AddCartItem(s.T(), s.DB, s.userID, productID, 2)
		limit := int32(5)
		couponID := dbtest.CreateTestCoupon(s.T(), s.DB, "SAVE10", "percentage", "10", &limit)

		code := "SAVE10"
		req := reqdto.EstimateRequest{
			ShippingAddressID: s.addressID,
			CouponCode:        &code,
		}

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, estimateURL, req, s.token)

		var estimate resdto.EstimateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &estimate)
		s.Equal(int64(2000), estimate.SubtotalCents)
		s.Equal(int64(200), estimate.DiscountCents)
		s.Equal(int64(1000), estimate.ShippingCents)
		s.Equal(int64(180), estimate.TaxCents)
		s.Equal(int64(2980), estimate.TotalCents)

		// A quote must not consume anything
		s.Equal(int32(10), dbtest.GetProductStock(s.T(), s.DB, productID))
		s.Equal(int32(0), dbtest.GetCouponUsedCount(s.T(), s.DB, couponID))
		s.Equal(1, dbtest.CountCartItems(s.T(), s.DB, s.userID))
	})

	s.Run("empty cart cannot be estimated", func() {
		req := reqdto.EstimateRequest{ShippingAddressID: s.addressID}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, estimateURL, req, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Cart is empty")
	})
}

func (s *orderSuite) TestValidateCoupon() {
	s.Run("valid coupon reports its discount", func() {
		limit := int32(5)
		dbtest.CreateTestCoupon(s.T(), s.DB, "SAVE10", "percentage", "10", &limit)

		req := reqdto.ValidateCouponRequest{Code: "save10", SubtotalCents: 2000}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, validateCouponURL, req, s.token)

		var result resdto.CouponValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &result)
		s.True(result.Valid)
		s.Equal("SAVE10", result.Code)
		s.Equal(int64(200), result.DiscountCents)
	})

	s.Run("expired coupon is invalid with a reason", func() {
		dbtest.CreateExpiredCoupon(s.T(), s.DB, "OLDCODE", "fixed", "500")

		req := reqdto.ValidateCouponRequest{Code: "OLDCODE", SubtotalCents: 2000}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, validateCouponURL, req, s.token)

		var result resdto.CouponValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &result)
		s.False(result.Valid)
		s.Require().NotNil(result.Reason)
		s.Equal("expired", *result.Reason)
	})

	s.Run("unknown coupon is invalid", func() {
		req := reqdto.ValidateCouponRequest{Code: "NOPE123", SubtotalCents: 2000}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, validateCouponURL, req, s.token)

		var result resdto.CouponValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &result)
		s.False(result.Valid)
		s.Require().NotNil(result.Reason)
		s.Equal("not_found", *result.Reason)
	})
}

func (s *orderSuite) TestShippingMethods() {
	s.Run("lists only active methods", func() {
		dbtest.CreateTestShippingMethod(s.T(), s.DB, "Standard", "standard", 500, true)
		dbtest.CreateTestShippingMethod(s.T(), s.DB, "Express", "express", 1500, true)
		dbtest.CreateTestShippingMethod(s.T(), s.DB, "Retired", "standard", 500, false)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, shippingMethodsURL, nil, "")

		var methods []*resdto.ShippingMethodResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &methods)
		s.Require().Len(methods, 2)
		for _, m := range methods {
			s.NotEqual("Retired", m.Name)
		}
	})
}

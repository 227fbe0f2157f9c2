package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	"github.com/Thegd17/grocery-ledger-automation/customer"
	"github.com/Thegd17/grocery-ledger-automation/internal/middleware"
)

type customerResponse struct {
	Name         string `json:"name"`
	Balance      int64  `json:"balance"`
	LastActivity string `json:"lastActivity"`
}

func (a *API) listCustomers(c *gin.Context) {
	logger := middleware.GetLogger(c)

	customers, err := a.cr.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list customers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		resp = append(resp, customerResponse{
			Name:         cust.Name,
			Balance:      cust.Balance,
			LastActivity: cust.LastActivity,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) totalOutstanding(c *gin.Context) {
	logger := middleware.GetLogger(c)

	customers, err := a.cr.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list customers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var total int64
	var count int
	for _, cust := range customers {
		if cust.Balance > 0 {
			total += cust.Balance
			count++
		}
	}

	c.JSON(http.StatusOK, gin.H{"totalOutstanding": total, "customers": count})
}

// createPaymentLink opens a stripe checkout session for a customer's current
// outstanding balance and returns its hosted URL. No ledger write happens
// here; the balance only moves when the payment is reported back as a chat
// command.
func (a *API) createPaymentLink(c *gin.Context) {
	logger := middleware.GetLogger(c)
	if adminID, ok := middleware.GetAdminID(c); ok {
		logger = logger.With("admin", adminID)
	}

	cust, err := a.cr.GetCustomerByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "CUSTOMER_NOT_FOUND"})
			return
		}
		logger.Error("Failed to load customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if cust.Balance <= 0 {
		c.JSON(http.StatusConflict, gin.H{"code": "NOTHING_OUTSTANDING"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("inr"),
				UnitAmount: stripe.Int64(cust.Balance * 100),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Outstanding dues: " + cust.Name),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(a.checkoutSuccessURL),
	}
	params.AddMetadata("customer_id", cust.ID.String())
	sess, err := session.New(params)
	if err != nil {
		logger.Error("Failed to create checkout session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, struct {
		URL    string `json:"url"`
		Amount int64  `json:"amount"`
	}{
		URL:    sess.URL,
		Amount: cust.Balance,
	})
}

package api

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Thegd17/grocery-ledger-automation/command"
	"github.com/Thegd17/grocery-ledger-automation/customer"
	"github.com/Thegd17/grocery-ledger-automation/internal/gateway"
	"github.com/Thegd17/grocery-ledger-automation/internal/middleware"
	"github.com/Thegd17/grocery-ledger-automation/ledger"
)

// messageEvent is one inbound message as delivered by the chat gateway.
type messageEvent struct {
	From        string `json:"from"`
	Body        string `json:"body"`
	IsGroupChat bool   `json:"isGroupChat"`
}

// handleMessage runs the full pipeline for one message: filter, parse,
// snapshot, execute, apply the single mutation, reply. A store failure at
// any point aborts the message with no reply and no partial write.
func (a *API) handleMessage(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var event messageEvent
	if err := json.NewDecoder(c.Request.Body).Decode(&event); err != nil {
		c.JSON(400, gin.H{"code": "INVALID_EVENT", "message": err.Error()})
		return
	}

	if event.IsGroupChat {
		middleware.ObserveDrop()
		c.Status(204)
		return
	}

	text := strings.TrimSpace(event.Body)
	intent := command.Parse(text)

	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := c.Request.Context()

	// Help needs no snapshot and can never fail.
	var customers []customer.Customer
	if intent.Kind != command.Help {
		var err error
		customers, err = a.cr.ListCustomers(ctx)
		if err != nil {
			logger.Error("Failed to load ledger snapshot", "error", err)
			middleware.ObserveDrop()
			c.Status(204)
			return
		}
	}

	decision := ledger.Execute(intent, customers, time.Now())

	if decision.Mutation != nil {
		if err := a.apply(ctx, decision.Mutation); err != nil {
			logger.Error("Failed to apply mutation", "error", err, "intent", string(intent.Kind))
			middleware.ObserveDrop()
			c.Status(204)
			return
		}
	}

	middleware.ObserveMessage(string(intent.Kind), decision.Mutation != nil)

	// Best effort: a lost reply is logged, never retried or fatal.
	if err := a.sender.Send(ctx, gateway.Reply{To: event.From, Body: decision.Reply}); err != nil {
		logger.Error("Failed to send reply", "error", err)
	}

	c.JSON(200, gin.H{"reply": decision.Reply})
}

func (a *API) apply(ctx context.Context, m *ledger.Mutation) error {
	switch m.Kind {
	case ledger.MutationCreate:
		_, err := a.cr.CreateCustomer(ctx, m.Name, m.Balance, m.LastActivity)
		return err
	case ledger.MutationUpdate:
		return a.cr.UpdateCustomer(ctx, m.ID, m.Balance, m.LastActivity)
	case ledger.MutationDelete:
		return a.cr.DeleteCustomer(ctx, m.ID)
	}
	return nil
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"rms_backend/internal/models"
	"rms_backend/internal/services"
	"rms_backend/internal/state"
	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultSplitWays = 2

// OrderHandler serves the order screen: the active order's lines, the
// customer on it, settlement and the bill.
type OrderHandler struct {
	dispatcher  services.DispatcherService
	billService services.BillService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(d services.DispatcherService, bs services.BillService) *OrderHandler {
	return &OrderHandler{dispatcher: d, billService: bs}
}

type addItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type orderResponse struct {
	models.Order
	Ledger models.Ledger `json:"ledger"`
}

// GetOrders lists the orders of one ledger (open by default).
func (h *OrderHandler) GetOrders(c *gin.Context) {
	ledger := models.Ledger(c.DefaultQuery("ledger", string(models.LedgerOpen)))
	orders, ok := h.dispatcher.Snapshot().OrdersIn(ledger)
	if !ok {
		utils.RespondValidationFailed(c, "ledger must be one of open, completed, credit")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID finds an order in any ledger.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	order, ledger, ok := h.dispatcher.Snapshot().LocateOrder(id)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found", id))
		return
	}
	c.JSON(http.StatusOK, orderResponse{Order: order, Ledger: ledger})
}

// GetActiveOrder returns the order currently being edited.
func (h *OrderHandler) GetActiveOrder(c *gin.Context) {
	h.respondActive(c, h.dispatcher.Snapshot())
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, state.AddItemToOrder{ItemID: req.ItemID}, "Failed to add item")
	if !ok {
		return
	}
	h.respondActive(c, next)
}

// UpdateItemQuantity sets a line's quantity; zero or less removes the line.
func (h *OrderHandler) UpdateItemQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadPayload(c, err)
		return
	}
	cmd := state.UpdateItemQuantity{ItemID: c.Param("itemId"), Quantity: *req.Quantity}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to update quantity")
	if !ok {
		return
	}
	h.respondActive(c, next)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	next, ok := dispatch(c, h.dispatcher, state.RemoveItemFromOrder{ItemID: c.Param("itemId")}, "Failed to remove item")
	if !ok {
		return
	}
	h.respondActive(c, next)
}

// UpdateCustomer attaches the guest's name and phone to the active order.
func (h *OrderHandler) UpdateCustomer(c *gin.Context) {
	var cmd state.UpdateCustomerDetails
	if err := c.ShouldBindJSON(&cmd); err != nil {
		respondBadPayload(c, err)
		return
	}
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to update customer details")
	if !ok {
		return
	}
	h.respondActive(c, next)
}

// FinalizeBill settles an open order as paid.
func (h *OrderHandler) FinalizeBill(c *gin.Context) {
	h.settle(c, state.FinalizeBill{OrderID: c.Param("id")}, models.LedgerCompleted)
}

// MoveToCredit settles an open order on the customer's tab.
func (h *OrderHandler) MoveToCredit(c *gin.Context) {
	h.settle(c, state.MoveToCredit{OrderID: c.Param("id")}, models.LedgerCredit)
}

func (h *OrderHandler) settle(c *gin.Context, cmd state.Command, ledger models.Ledger) {
	id := c.Param("id")
	next, ok := dispatch(c, h.dispatcher, cmd, "Failed to settle order")
	if !ok {
		return
	}
	order, _, _ := next.LocateOrder(id)
	c.JSON(http.StatusOK, orderResponse{Order: order, Ledger: ledger})
}

// GetBill previews the bill with the tax breakdown.
func (h *OrderHandler) GetBill(c *gin.Context) {
	preview, err := h.billService.Preview(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build bill")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// SplitBill divides the total evenly, ?ways=N (default 2).
func (h *OrderHandler) SplitBill(c *gin.Context) {
	ways := defaultSplitWays
	if raw := c.Query("ways"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondValidationFailed(c, "ways must be an integer")
			return
		}
		ways = n
	}
	split, err := h.billService.Split(c.Param("id"), ways)
	if err != nil {
		respondError(c, err, "Failed to split bill")
		return
	}
	c.JSON(http.StatusOK, split)
}

// GetPaymentQR returns the UPI payment link of an open order.
func (h *OrderHandler) GetPaymentQR(c *gin.Context) {
	link, err := h.billService.PaymentLink(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build payment link")
		return
	}
	c.JSON(http.StatusOK, link)
}

// DownloadInvoice streams the PDF invoice of an order.
func (h *OrderHandler) DownloadInvoice(c *gin.Context) {
	id := c.Param("id")
	var buf bytes.Buffer
	if err := h.billService.RenderInvoice(&buf, id); err != nil {
		respondError(c, err, "Failed to render invoice")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *OrderHandler) respondActive(c *gin.Context, s state.State) {
	order, ok := s.ActiveOrder().Get()
	if !ok {
		respondError(c, state.ErrNoActiveOrder, "No active order")
		return
	}
	c.JSON(http.StatusOK, order)
}
